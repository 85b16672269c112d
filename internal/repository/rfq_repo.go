package repository

import (
	"context"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/store"
)

type RFQRepository struct {
	coll collection[models.RFQ]
}

func NewRFQRepository(s store.Store) *RFQRepository {
	return &RFQRepository{coll: collection[models.RFQ]{store: s, name: store.CollectionRFQs}}
}

func (r *RFQRepository) Create(ctx context.Context, q *models.RFQ) (string, error) {
	return r.coll.create(ctx, q)
}

func (r *RFQRepository) GetByID(ctx context.Context, id string) (*models.RFQ, error) {
	return r.coll.get(ctx, id)
}

func (r *RFQRepository) List(ctx context.Context, status models.RFQStatus) ([]models.RFQ, error) {
	if status == "" {
		return r.coll.list(ctx)
	}
	return r.coll.list(ctx, store.Eq("status", string(status)))
}

func (r *RFQRepository) Update(ctx context.Context, id string, patch store.Document) error {
	return r.coll.update(ctx, id, patch)
}

func (r *RFQRepository) Delete(ctx context.Context, id string) error {
	return r.coll.delete(ctx, id)
}
