package repository

import (
	"context"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/store"
)

type BlogRepository struct {
	coll collection[models.BlogPost]
}

func NewBlogRepository(s store.Store) *BlogRepository {
	return &BlogRepository{coll: collection[models.BlogPost]{store: s, name: store.CollectionBlogPosts}}
}

func (r *BlogRepository) Create(ctx context.Context, p *models.BlogPost) (string, error) {
	return r.coll.create(ctx, p)
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	return r.coll.get(ctx, id)
}

// List filters by status and slug when they are non-empty.
func (r *BlogRepository) List(ctx context.Context, status models.BlogStatus, slug string) ([]models.BlogPost, error) {
	var filters []store.Filter
	if status != "" {
		filters = append(filters, store.Eq("status", string(status)))
	}
	if slug != "" {
		filters = append(filters, store.Eq("slug", slug))
	}
	return r.coll.list(ctx, filters...)
}

// GetBySlug returns the first post with the given slug or store.ErrNotFound.
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	posts, err := r.coll.list(ctx, store.Eq("slug", slug))
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, store.ErrNotFound
	}
	return &posts[0], nil
}

func (r *BlogRepository) Update(ctx context.Context, id string, patch store.Document) error {
	return r.coll.update(ctx, id, patch)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	return r.coll.delete(ctx, id)
}
