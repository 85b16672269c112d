package service

import (
	"context"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/repository"
	"github.com/affordablebilliards/billiards_api/internal/sse"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// ReviewService handles customer reviews and their moderation.
type ReviewService struct {
	repo     *repository.ReviewRepository
	notifier sse.Notifier
	now      func() time.Time
}

func NewReviewService(repo *repository.ReviewRepository, notifier sse.Notifier) *ReviewService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &ReviewService{repo: repo, notifier: notifier, now: time.Now}
}

// CreateReviewRequest is a public review submission. Any status sent by the
// client is ignored.
type CreateReviewRequest struct {
	CustomerName string   `json:"customerName" form:"customerName"`
	Email        string   `json:"email" form:"email"`
	Rating       *int     `json:"rating" form:"rating"`
	Comment      string   `json:"comment" form:"comment"`
	Service      string   `json:"service" form:"service"`
	Images       []string `json:"images" form:"-"`
}

// UpdateReviewRequest is the admin moderation payload.
type UpdateReviewRequest struct {
	Status        *string   `json:"status"`
	Rating        *int      `json:"rating"`
	CustomerName  *string   `json:"customerName"`
	Comment       *string   `json:"comment"`
	Service       *string   `json:"service"`
	Images        *[]string `json:"images"`
	AdminResponse *string   `json:"adminResponse"`
}

var (
	ratingMin = validation.Min(1).Error("must be between 1 and 5")
	ratingMax = validation.Max(5).Error("must be between 1 and 5")
)

// List returns reviews newest first. Anonymous callers only ever see approved
// reviews, without the reviewer's email.
func (s *ReviewService) List(ctx context.Context, status string, isAdmin bool) ([]models.Review, error) {
	filter := models.ReviewApproved
	if isAdmin {
		if status != "" && !models.ReviewStatus(status).Valid() {
			return nil, invalid("status", "status must be one of pending, approved, rejected")
		}
		filter = models.ReviewStatus(status)
	}

	reviews, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeErr(err, utils.ErrReviewNotFound)
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].DateSubmitted > reviews[j].DateSubmitted
	})
	if !isAdmin {
		for i := range reviews {
			reviews[i] = reviews[i].Public()
		}
	}
	return reviews, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, utils.ErrReviewNotFound)
	}
	return r, nil
}

// Create stores a new review as pending and notifies connected admins.
func (s *ReviewService) Create(ctx context.Context, req *CreateReviewRequest) (*models.Review, error) {
	err := validateFields(
		field("customerName", strings.TrimSpace(req.CustomerName), required),
		field("email", strings.TrimSpace(req.Email), required, is.EmailFormat.Error("must be a valid email address")),
		field("rating", req.Rating, validation.NotNil.Error("is required"), ratingMin, ratingMax),
		field("comment", strings.TrimSpace(req.Comment), required),
		field("service", strings.TrimSpace(req.Service), required),
	)
	if err != nil {
		return nil, err
	}
	// Min skips zero values, so 0 is rejected here.
	if *req.Rating < 1 {
		return nil, invalid("rating", "rating must be between 1 and 5")
	}

	review := &models.Review{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Rating:        *req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
		Service:       strings.TrimSpace(req.Service),
		Images:        nonNil(req.Images),
		Status:        models.ReviewPending,
		DateSubmitted: utils.FormatISO(s.now()),
	}

	id, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, storeErr(err, utils.ErrReviewNotFound)
	}
	review.ID = id
	log.Info().Str("review_id", id).Int("rating", review.Rating).Msg("Review submitted")

	s.notifier.NotifyReviewSubmitted(review)
	return review, nil
}

// Update applies moderation changes. Any status may move to any other.
func (s *ReviewService) Update(ctx context.Context, id string, req *UpdateReviewRequest) (*models.Review, error) {
	checks := []fieldCheck{}
	if req.Status != nil {
		checks = append(checks, field("status", models.ReviewStatus(*req.Status), required, in(models.ReviewStatuses, "must be one of pending, approved, rejected")))
	}
	if req.Rating != nil {
		if *req.Rating < 1 {
			return nil, invalid("rating", "rating must be between 1 and 5")
		}
		checks = append(checks, field("rating", req.Rating, ratingMin, ratingMax))
	}
	if req.CustomerName != nil {
		checks = append(checks, field("customerName", strings.TrimSpace(*req.CustomerName), required))
	}
	if err := validateFields(checks...); err != nil {
		return nil, err
	}

	patch := store.Document{}
	setString(patch, "status", req.Status)
	setString(patch, "customerName", trimPtr(req.CustomerName))
	setString(patch, "comment", req.Comment)
	setString(patch, "service", req.Service)
	if req.Rating != nil {
		patch["rating"] = *req.Rating
	}
	if req.Images != nil {
		patch["images"] = nonNil(*req.Images)
	}
	if req.AdminResponse != nil {
		resp := strings.TrimSpace(*req.AdminResponse)
		patch["adminResponse"] = resp
		if resp != "" {
			patch["adminResponseAt"] = utils.FormatISO(s.now())
		} else {
			patch["adminResponseAt"] = ""
		}
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, storeErr(err, utils.ErrReviewNotFound)
	}
	log.Info().Str("review_id", id).Msg("Review updated")
	return s.Get(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr(err, utils.ErrReviewNotFound)
	}
	log.Info().Str("review_id", id).Msg("Review deleted")
	return nil
}
