package repository

import (
	"context"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/store"
)

type TableRepository struct {
	coll collection[models.PoolTable]
}

func NewTableRepository(s store.Store) *TableRepository {
	return &TableRepository{coll: collection[models.PoolTable]{store: s, name: store.CollectionTables}}
}

func (r *TableRepository) Create(ctx context.Context, t *models.PoolTable) (string, error) {
	return r.coll.create(ctx, t)
}

func (r *TableRepository) GetByID(ctx context.Context, id string) (*models.PoolTable, error) {
	return r.coll.get(ctx, id)
}

// List returns tables in store order; an empty status lists all of them.
func (r *TableRepository) List(ctx context.Context, status models.TableStatus) ([]models.PoolTable, error) {
	if status == "" {
		return r.coll.list(ctx)
	}
	return r.coll.list(ctx, store.Eq("status", string(status)))
}

func (r *TableRepository) Update(ctx context.Context, id string, patch store.Document) error {
	return r.coll.update(ctx, id, patch)
}

func (r *TableRepository) Delete(ctx context.Context, id string) error {
	return r.coll.delete(ctx, id)
}

// UpdateSortOrders writes every sortOrder in one atomic batch.
func (r *TableRepository) UpdateSortOrders(ctx context.Context, orders map[string]int) error {
	patches := make(map[string]store.Document, len(orders))
	for id, order := range orders {
		patches[id] = store.Document{"sortOrder": order}
	}
	return r.coll.store.UpdateMany(ctx, r.coll.name, patches)
}
