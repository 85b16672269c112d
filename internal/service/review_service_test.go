package service

import (
	"context"
	"errors"
	"testing"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/repository"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

func newReviewService() (*ReviewService, *recordingNotifier) {
	n := &recordingNotifier{}
	svc := NewReviewService(repository.NewReviewRepository(store.NewMemory()), n)
	svc.now = tickingClock()
	return svc, n
}

func validReview(rating int) *CreateReviewRequest {
	return &CreateReviewRequest{
		CustomerName: "Dana K.",
		Email:        "Dana@Example.com",
		Rating:       ptr(rating),
		Comment:      "Leveled perfectly, great crew.",
		Service:      "Pool Table Installation",
	}
}

func TestReviewCreateIsPending(t *testing.T) {
	svc, n := newReviewService()
	r, err := svc.Create(context.Background(), validReview(5))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if r.Status != models.ReviewPending {
		t.Errorf("status = %s, want pending", r.Status)
	}
	if r.Email != "dana@example.com" {
		t.Errorf("email = %s", r.Email)
	}
	if len(n.reviews) != 1 || n.reviews[0].ID != r.ID {
		t.Errorf("notifier got %d reviews", len(n.reviews))
	}
}

func TestReviewCreateRejectsRating(t *testing.T) {
	for _, rating := range []int{0, 6, -1} {
		svc, n := newReviewService()
		_, err := svc.Create(context.Background(), validReview(rating))
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "rating" {
			t.Errorf("rating %d: err = %v, want rating ValidationError", rating, err)
		}
		all, _ := svc.List(context.Background(), "", true)
		if len(all) != 0 {
			t.Errorf("rating %d: %d reviews stored", rating, len(all))
		}
		if len(n.reviews) != 0 {
			t.Errorf("rating %d: notifier called", rating)
		}
	}

	svc, _ := newReviewService()
	req := validReview(4)
	req.Rating = nil
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Error("missing rating accepted")
	}
	req = validReview(4)
	req.Email = "not-an-email"
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Error("bad email accepted")
	}
}

func TestReviewPublicListing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newReviewService()
	first, _ := svc.Create(ctx, validReview(5))
	second, _ := svc.Create(ctx, validReview(3))
	svc.Create(ctx, validReview(4))

	for _, id := range []string{first.ID, second.ID} {
		if _, err := svc.Update(ctx, id, &UpdateReviewRequest{Status: ptr("approved")}); err != nil {
			t.Fatal(err)
		}
	}

	public, err := svc.List(ctx, "pending", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 2 {
		t.Fatalf("public reviews = %d, want 2", len(public))
	}
	if public[0].ID != second.ID {
		t.Errorf("first review = %s, want newest %s", public[0].ID, second.ID)
	}
	for _, r := range public {
		if r.Status != models.ReviewApproved || r.Email != "" {
			t.Errorf("leaked review: status=%s email=%q", r.Status, r.Email)
		}
	}

	pending, _ := svc.List(ctx, "pending", true)
	if len(pending) != 1 || pending[0].Email == "" {
		t.Errorf("admin pending = %+v", pending)
	}
}

func TestReviewAdminResponse(t *testing.T) {
	ctx := context.Background()
	svc, _ := newReviewService()
	r, _ := svc.Create(ctx, validReview(5))

	updated, err := svc.Update(ctx, r.ID, &UpdateReviewRequest{AdminResponse: ptr(" Thanks Dana! ")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.AdminResponse != "Thanks Dana!" || updated.AdminResponseAt == "" {
		t.Errorf("adminResponse = %q at %q", updated.AdminResponse, updated.AdminResponseAt)
	}

	if _, err := svc.Update(ctx, r.ID, &UpdateReviewRequest{Status: ptr("hidden")}); err == nil {
		t.Error("invalid status accepted")
	}
	if _, err := svc.Update(ctx, r.ID, &UpdateReviewRequest{Rating: ptr(0)}); err == nil {
		t.Error("rating 0 accepted on update")
	}
	if _, err := svc.Update(ctx, "missing", &UpdateReviewRequest{Status: ptr("approved")}); !errors.Is(err, utils.ErrReviewNotFound) {
		t.Errorf("missing review: err = %v", err)
	}
}
