package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/repository"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

//go:embed seed/blog_posts.json
var seedPostsJSON []byte

// BlogService manages blog posts.
type BlogService struct {
	repo *repository.BlogRepository
	now  func() time.Time
}

func NewBlogService(repo *repository.BlogRepository) *BlogService {
	return &BlogService{repo: repo, now: time.Now}
}

// CreateBlogRequest is the body of POST /api/blogs.
type CreateBlogRequest struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Image    string   `json:"image"`
	Status   string   `json:"status"`
}

// UpdateBlogRequest is the body of PUT /api/blogs/:id.
type UpdateBlogRequest struct {
	Title    *string   `json:"title"`
	Slug     *string   `json:"slug"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Author   *string   `json:"author"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	Image    *string   `json:"image"`
	Status   *string   `json:"status"`
}

// SeedItem is the outcome for one starter post.
type SeedItem struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SeedResult summarises a seeding run.
type SeedResult struct {
	Results []SeedItem `json:"results"`
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  int        `json:"errors"`
}

// List returns posts newest first by publishedAt, falling back to updatedAt.
// Anonymous callers only see published posts whatever status they ask for.
func (s *BlogService) List(ctx context.Context, status, slug string, isAdmin bool) ([]models.BlogPost, error) {
	filter := models.BlogPublished
	if isAdmin {
		if status != "" && !models.BlogStatus(status).Valid() {
			return nil, invalid("status", "status must be one of draft, published")
		}
		filter = models.BlogStatus(status)
	}

	posts, err := s.repo.List(ctx, filter, strings.TrimSpace(slug))
	if err != nil {
		return nil, storeErr(err, utils.ErrBlogNotFound)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].SortDate() > posts[j].SortDate()
	})
	return posts, nil
}

// Get returns a post by id. Drafts are only visible to admins.
func (s *BlogService) Get(ctx context.Context, id string, isAdmin bool) (*models.BlogPost, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, utils.ErrBlogNotFound)
	}
	if !isAdmin && p.Status != models.BlogPublished {
		return nil, utils.ErrBlogNotFound
	}
	return p, nil
}

// GetPublishedBySlug backs the public /blog/:slug page.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, storeErr(err, utils.ErrBlogNotFound)
	}
	if p.Status != models.BlogPublished {
		return nil, utils.ErrBlogNotFound
	}
	return p, nil
}

// Create stores a new post. author falls back to the signed-in admin's name.
func (s *BlogService) Create(ctx context.Context, req *CreateBlogRequest, sessionName string) (*models.BlogPost, error) {
	status := models.BlogStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = models.BlogDraft
	}
	err := validateFields(
		field("title", strings.TrimSpace(req.Title), required),
		field("content", strings.TrimSpace(req.Content), required),
		field("excerpt", strings.TrimSpace(req.Excerpt), required),
		field("category", strings.TrimSpace(req.Category), required, in(models.BlogCategories, "must be one of "+strings.Join(models.BlogCategories, ", "))),
		field("status", status, in([]models.BlogStatus{models.BlogDraft, models.BlogPublished}, "must be one of draft, published")),
	)
	if err != nil {
		return nil, err
	}

	slug := utils.Slugify(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	if slug == "" {
		return nil, invalid("slug", "slug is required")
	}
	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return nil, err
	}

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = sessionName
	}
	if author == "" {
		author = "Admin"
	}

	post := &models.BlogPost{
		Title:    strings.TrimSpace(req.Title),
		Slug:     slug,
		Excerpt:  strings.TrimSpace(req.Excerpt),
		Content:  req.Content,
		Author:   author,
		Category: strings.TrimSpace(req.Category),
		Tags:     nonNil(req.Tags),
		Image:    strings.TrimSpace(req.Image),
		Status:   status,
	}
	if status == models.BlogPublished {
		post.PublishedAt = utils.FormatISO(s.now())
	}

	id, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, storeErr(err, utils.ErrBlogNotFound)
	}
	log.Info().Str("blog_id", id).Str("slug", slug).Str("status", string(status)).Msg("Blog post created")
	return s.Get(ctx, id, true)
}

// Update edits a post. A new title without an explicit slug regenerates the
// slug, and publishedAt is stamped the first time the post is published.
func (s *BlogService) Update(ctx context.Context, id string, req *UpdateBlogRequest) (*models.BlogPost, error) {
	checks := []fieldCheck{}
	if req.Title != nil {
		checks = append(checks, field("title", strings.TrimSpace(*req.Title), required))
	}
	if req.Content != nil {
		checks = append(checks, field("content", strings.TrimSpace(*req.Content), required))
	}
	if req.Excerpt != nil {
		checks = append(checks, field("excerpt", strings.TrimSpace(*req.Excerpt), required))
	}
	if req.Category != nil {
		checks = append(checks, field("category", strings.TrimSpace(*req.Category), required, in(models.BlogCategories, "must be one of "+strings.Join(models.BlogCategories, ", "))))
	}
	if req.Status != nil {
		checks = append(checks, field("status", models.BlogStatus(*req.Status), required, in([]models.BlogStatus{models.BlogDraft, models.BlogPublished}, "must be one of draft, published")))
	}
	if err := validateFields(checks...); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}

	patch := store.Document{}
	setString(patch, "title", trimPtr(req.Title))
	setString(patch, "excerpt", trimPtr(req.Excerpt))
	setString(patch, "content", req.Content)
	setString(patch, "author", trimPtr(req.Author))
	setString(patch, "category", trimPtr(req.Category))
	setString(patch, "image", trimPtr(req.Image))
	setString(patch, "status", req.Status)
	if req.Tags != nil {
		patch["tags"] = nonNil(*req.Tags)
	}

	var slug string
	switch {
	case req.Slug != nil && strings.TrimSpace(*req.Slug) != "":
		slug = utils.Slugify(*req.Slug)
	case req.Title != nil:
		slug = utils.Slugify(*req.Title)
	}
	if (req.Slug != nil || req.Title != nil) && slug == "" {
		return nil, invalid("slug", "slug is required")
	}
	if slug != "" && slug != current.Slug {
		if err := s.ensureSlugFree(ctx, slug, id); err != nil {
			return nil, err
		}
		patch["slug"] = slug
	}

	if req.Status != nil && models.BlogStatus(*req.Status) == models.BlogPublished && current.PublishedAt == "" {
		patch["publishedAt"] = utils.FormatISO(s.now())
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, storeErr(err, utils.ErrBlogNotFound)
	}
	log.Info().Str("blog_id", id).Msg("Blog post updated")
	return s.Get(ctx, id, true)
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr(err, utils.ErrBlogNotFound)
	}
	log.Info().Str("blog_id", id).Msg("Blog post deleted")
	return nil
}

// Seed inserts the starter posts, skipping any whose slug already exists, so
// running it twice creates nothing the second time.
func (s *BlogService) Seed(ctx context.Context) (*SeedResult, error) {
	var posts []models.BlogPost
	if err := json.Unmarshal(seedPostsJSON, &posts); err != nil {
		return nil, fmt.Errorf("decode seed posts: %w", err)
	}

	res := &SeedResult{Results: make([]SeedItem, 0, len(posts))}
	for i := range posts {
		post := posts[i]
		item := SeedItem{Title: post.Title, Slug: post.Slug}

		_, err := s.repo.GetBySlug(ctx, post.Slug)
		switch {
		case err == nil:
			item.Status = "skipped"
			res.Skipped++
			res.Results = append(res.Results, item)
			continue
		case errors.Is(err, store.ErrUnavailable):
			return nil, storeErr(err, utils.ErrBlogNotFound)
		case !errors.Is(err, store.ErrNotFound):
			item.Status = "error"
			item.Error = err.Error()
			res.Errors++
			res.Results = append(res.Results, item)
			continue
		}

		post.PublishedAt = utils.FormatISO(s.now())
		id, err := s.repo.Create(ctx, &post)
		if err != nil {
			log.Error().Err(err).Str("slug", post.Slug).Msg("Failed to seed blog post")
			item.Status = "error"
			item.Error = err.Error()
			res.Errors++
		} else {
			item.ID = id
			item.Status = "created"
			res.Created++
		}
		res.Results = append(res.Results, item)
	}

	log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Int("errors", res.Errors).Msg("Blog seeding completed")
	return res, nil
}

func (s *BlogService) ensureSlugFree(ctx context.Context, slug, selfID string) error {
	existing, err := s.repo.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return storeErr(err, utils.ErrBlogNotFound)
	case existing.ID != selfID:
		return utils.ErrSlugExists
	}
	return nil
}
