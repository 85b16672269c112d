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

func newBlogService() *BlogService {
	svc := NewBlogService(repository.NewBlogRepository(store.NewMemory()))
	svc.now = tickingClock()
	return svc
}

func draftPost(title string) *CreateBlogRequest {
	return &CreateBlogRequest{
		Title:    title,
		Excerpt:  "Short summary.",
		Content:  "Body text.",
		Category: "Maintenance",
	}
}

func TestBlogCreateDerivesSlug(t *testing.T) {
	svc := newBlogService()
	post, err := svc.Create(context.Background(), draftPost("How to Re-Felt Your Table!"), "Matt")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if post.Slug != "how-to-re-felt-your-table" {
		t.Errorf("slug = %q", post.Slug)
	}
	if post.Status != models.BlogDraft || post.PublishedAt != "" {
		t.Errorf("status = %s, publishedAt = %q", post.Status, post.PublishedAt)
	}
	if post.Author != "Matt" {
		t.Errorf("author = %q, want session name", post.Author)
	}
}

func TestBlogCreateValidation(t *testing.T) {
	svc := newBlogService()
	req := draftPost("Title")
	req.Category = "Gossip"
	var verr *ValidationError
	if _, err := svc.Create(context.Background(), req, ""); !errors.As(err, &verr) || verr.Field != "category" {
		t.Errorf("bad category: err = %v", err)
	}
	req = draftPost("!!!")
	if _, err := svc.Create(context.Background(), req, ""); !errors.As(err, &verr) || verr.Field != "slug" {
		t.Errorf("empty slug: err = %v", err)
	}
}

func TestBlogSlugConflict(t *testing.T) {
	ctx := context.Background()
	svc := newBlogService()
	first, err := svc.Create(ctx, draftPost("Chalk Talk"), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, draftPost("Chalk  Talk"), ""); !errors.Is(err, utils.ErrSlugExists) {
		t.Fatalf("duplicate slug: err = %v", err)
	}

	other, _ := svc.Create(ctx, draftPost("Cue Care"), "")
	if _, err := svc.Update(ctx, other.ID, &UpdateBlogRequest{Title: ptr("Chalk Talk")}); !errors.Is(err, utils.ErrSlugExists) {
		t.Errorf("rename onto taken slug: err = %v", err)
	}
	if _, err := svc.Update(ctx, first.ID, &UpdateBlogRequest{Title: ptr("Chalk Talk")}); err != nil {
		t.Errorf("retitle to own slug: err = %v", err)
	}
}

func TestBlogPublishStampsOnce(t *testing.T) {
	ctx := context.Background()
	svc := newBlogService()
	post, _ := svc.Create(ctx, draftPost("Leveling 101"), "")

	published, err := svc.Update(ctx, post.ID, &UpdateBlogRequest{Status: ptr("published")})
	if err != nil {
		t.Fatal(err)
	}
	if published.PublishedAt == "" {
		t.Fatal("publishedAt not set on publish")
	}

	svc.Update(ctx, post.ID, &UpdateBlogRequest{Status: ptr("draft")})
	again, _ := svc.Update(ctx, post.ID, &UpdateBlogRequest{Status: ptr("published")})
	if again.PublishedAt != published.PublishedAt {
		t.Errorf("publishedAt changed: %s -> %s", published.PublishedAt, again.PublishedAt)
	}

	renamed, _ := svc.Update(ctx, post.ID, &UpdateBlogRequest{Title: ptr("Leveling 201")})
	if renamed.Slug != "leveling-201" {
		t.Errorf("slug = %q after retitle", renamed.Slug)
	}
}

func TestBlogDraftsHiddenFromPublic(t *testing.T) {
	ctx := context.Background()
	svc := newBlogService()
	draft, _ := svc.Create(ctx, draftPost("Secret"), "")
	pub := draftPost("Open")
	pub.Status = "published"
	open, _ := svc.Create(ctx, pub, "")

	if _, err := svc.Get(ctx, draft.ID, false); !errors.Is(err, utils.ErrBlogNotFound) {
		t.Errorf("draft visible anonymously: err = %v", err)
	}
	if _, err := svc.Get(ctx, draft.ID, true); err != nil {
		t.Errorf("admin cannot see draft: %v", err)
	}

	posts, _ := svc.List(ctx, "draft", "", false)
	if len(posts) != 1 || posts[0].ID != open.ID {
		t.Errorf("public list = %+v", posts)
	}
	if _, err := svc.GetPublishedBySlug(ctx, "secret"); !errors.Is(err, utils.ErrBlogNotFound) {
		t.Errorf("draft slug served: err = %v", err)
	}
	got, err := svc.GetPublishedBySlug(ctx, "open")
	if err != nil || got.ID != open.ID {
		t.Errorf("GetPublishedBySlug() = %v, %v", got, err)
	}
}

func TestBlogSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newBlogService()

	first, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if first.Created != 3 || first.Skipped != 0 || first.Errors != 0 {
		t.Errorf("first run = %+v", first)
	}

	second, err := svc.Seed(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if second.Created != 0 || second.Skipped != 3 {
		t.Errorf("second run = %+v", second)
	}

	posts, _ := svc.List(ctx, "", "", false)
	if len(posts) != 3 {
		t.Errorf("published posts = %d, want 3", len(posts))
	}
	for _, p := range posts {
		if p.PublishedAt == "" {
			t.Errorf("seeded post %s has no publishedAt", p.Slug)
		}
	}
}
