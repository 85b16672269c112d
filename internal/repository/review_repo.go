package repository

import (
	"context"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/store"
)

type ReviewRepository struct {
	coll collection[models.Review]
}

func NewReviewRepository(s store.Store) *ReviewRepository {
	return &ReviewRepository{coll: collection[models.Review]{store: s, name: store.CollectionReviews}}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *models.Review) (string, error) {
	return r.coll.create(ctx, rv)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	return r.coll.get(ctx, id)
}

func (r *ReviewRepository) List(ctx context.Context, status models.ReviewStatus) ([]models.Review, error) {
	if status == "" {
		return r.coll.list(ctx)
	}
	return r.coll.list(ctx, store.Eq("status", string(status)))
}

func (r *ReviewRepository) Update(ctx context.Context, id string, patch store.Document) error {
	return r.coll.update(ctx, id, patch)
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return r.coll.delete(ctx, id)
}
