package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/store"
)

func TestTableRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTableRepository(store.NewMemory())

	sold := 1500.0
	id, err := repo.Create(ctx, &models.PoolTable{
		Name:         "Gold Crown",
		Brand:        "Brunswick",
		Size:         models.Size9,
		Condition:    models.ConditionGood,
		Price:        2500,
		Images:       []string{"a.jpg", "b.jpg"},
		Status:       models.TableSold,
		SoldPrice:    &sold,
		CustomerInfo: &models.CustomerInfo{Name: "J. Smith", Location: "Warren, MI"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ID != id || got.Size != models.Size9 || got.Images[1] != "b.jpg" {
		t.Errorf("unexpected table: %+v", got)
	}
	if got.SoldPrice == nil || *got.SoldPrice != 1500 {
		t.Errorf("SoldPrice = %v", got.SoldPrice)
	}
	if got.CustomerInfo == nil || got.CustomerInfo.Location != "Warren, MI" {
		t.Errorf("CustomerInfo = %+v", got.CustomerInfo)
	}
	if got.CreatedAt == "" {
		t.Error("CreatedAt not populated")
	}

	avail, _ := repo.List(ctx, models.TableAvailable)
	if len(avail) != 0 {
		t.Errorf("available = %d, want 0", len(avail))
	}
}

func TestListSkipsMalformedDocuments(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	s.Create(ctx, store.CollectionReviews, store.Document{"rating": "five"})
	s.Create(ctx, store.CollectionReviews, store.Document{"rating": 4, "status": "approved"})

	reviews, err := NewReviewRepository(s).List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 4 {
		t.Errorf("reviews = %+v, want only the well-formed one", reviews)
	}
}

func TestAdminUserRepositoryKeepsHash(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminUserRepository(store.NewMemory())

	_, err := repo.Create(ctx, &models.AdminUser{Email: "Matt@Example.com", PasswordHash: "hash", Role: models.RoleAdmin, IsActive: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	u, err := repo.GetByEmail(ctx, "MATT@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if u.Email != "matt@example.com" || u.PasswordHash != "hash" {
		t.Errorf("unexpected user: %+v", u)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByEmail(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestBlogRepositoryGetBySlug(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(store.NewMemory())
	repo.Create(ctx, &models.BlogPost{Title: "A", Slug: "a", Status: models.BlogDraft})

	p, err := repo.GetBySlug(ctx, "a")
	if err != nil || p.Title != "A" {
		t.Fatalf("GetBySlug() = %+v, %v", p, err)
	}
	if _, err := repo.GetBySlug(ctx, "b"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetBySlug(missing) error = %v", err)
	}
}
