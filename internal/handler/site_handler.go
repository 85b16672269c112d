package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/markup"
	"github.com/affordablebilliards/billiards_api/internal/models"
	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
	"github.com/affordablebilliards/billiards_api/internal/web"
)

const (
	featuredCount = 3
	relatedPosts  = 3
)

// SiteHandler serves the server-rendered public pages and their forms.
type SiteHandler struct {
	pages   *web.Renderer
	tables  *service.TableService
	reviews *service.ReviewService
	rfqs    *service.RFQService
	blogs   *service.BlogService
	uploads *service.UploadService
}

// NewSiteHandler constructs a SiteHandler.
func NewSiteHandler(pages *web.Renderer, tables *service.TableService, reviews *service.ReviewService,
	rfqs *service.RFQService, blogs *service.BlogService, uploads *service.UploadService) *SiteHandler {
	return &SiteHandler{pages: pages, tables: tables, reviews: reviews, rfqs: rfqs, blogs: blogs, uploads: uploads}
}

type homePage struct {
	Tables  []models.PoolTable
	Reviews []models.Review
	Posts   []models.BlogPost
}

type tablesPage struct {
	Tables []models.PoolTable
}

type tablePage struct {
	Table          *models.PoolTable
	AdditionalInfo template.HTML
}

type soldPage struct {
	Tables []models.PoolTable
	Count  int
	Total  float64
}

type rfqPage struct {
	Table        *models.PoolTable
	ServiceTypes []models.ServiceType
	Form         service.CreateRFQRequest
	Error        string
	Submitted    bool
}

type reviewForm struct {
	CustomerName string
	Email        string
	Rating       int
	Comment      string
	Service      string
}

type reviewsPage struct {
	Reviews   []models.Review
	Services  []string
	Ratings   []int
	Form      reviewForm
	Error     string
	Submitted bool
}

type blogPage struct {
	Posts []models.BlogPost
}

type postPage struct {
	Post   *models.BlogPost
	Body   template.HTML
	Others []models.BlogPost
}

// Home handles GET /
func (h *SiteHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	tables, err := h.tables.List(ctx, string(models.TableAvailable))
	degrade(c, err)
	reviews, err := h.reviews.List(ctx, "", false)
	degrade(c, err)
	posts, err := h.blogs.List(ctx, "", "", false)
	degrade(c, err)

	h.render(c, http.StatusOK, web.PageHome, "", homePage{
		Tables:  first(tables, featuredCount),
		Reviews: first(reviews, featuredCount),
		Posts:   first(posts, featuredCount),
	})
}

// Inventory handles GET /inventory
func (h *SiteHandler) Inventory(c *gin.Context) {
	tables, err := h.tables.List(c.Request.Context(), string(models.TableAvailable))
	degrade(c, err)
	h.render(c, http.StatusOK, web.PageInventory, "Inventory", tablesPage{Tables: tables})
}

// Table handles GET /inventory/:id
func (h *SiteHandler) Table(c *gin.Context) {
	table, err := h.tables.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.notFound(c, err)
		return
	}
	h.render(c, http.StatusOK, web.PageTable, table.Name, tablePage{
		Table:          table,
		AdditionalInfo: markup.Sanitize(table.AdditionalInfo),
	})
}

// Sold handles GET /sold
func (h *SiteHandler) Sold(c *gin.Context) {
	tables, err := h.tables.List(c.Request.Context(), string(models.TableSold))
	degrade(c, err)

	page := soldPage{Tables: tables, Count: len(tables)}
	for _, t := range tables {
		page.Total += t.FinalPrice()
	}
	h.render(c, http.StatusOK, web.PageSold, "Sold Tables", page)
}

// Blog handles GET /blog
func (h *SiteHandler) Blog(c *gin.Context) {
	posts, err := h.blogs.List(c.Request.Context(), "", "", false)
	degrade(c, err)
	h.render(c, http.StatusOK, web.PageBlog, "Blog", blogPage{Posts: posts})
}

// Post handles GET /blog/:slug
func (h *SiteHandler) Post(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := h.blogs.GetPublishedBySlug(ctx, c.Param("slug"))
	if err != nil {
		h.notFound(c, err)
		return
	}

	body, err := markup.RenderPost(post.Content)
	if err != nil {
		log.Error().Err(err).Str("slug", post.Slug).Msg("Failed to render blog post")
		body = template.HTML(template.HTMLEscapeString(post.Content))
	}

	all, err := h.blogs.List(ctx, "", "", false)
	degrade(c, err)
	others := make([]models.BlogPost, 0, relatedPosts)
	for _, p := range all {
		if p.ID != post.ID && len(others) < relatedPosts {
			others = append(others, p)
		}
	}

	h.render(c, http.StatusOK, web.PagePost, post.Title, postPage{Post: post, Body: body, Others: others})
}

// Services handles GET /services
func (h *SiteHandler) Services(c *gin.Context) {
	h.render(c, http.StatusOK, web.PageServices, "Services", nil)
}

// About handles GET /about
func (h *SiteHandler) About(c *gin.Context) {
	h.render(c, http.StatusOK, web.PageAbout, "About Us", nil)
}

// NotFound renders the 404 page for unknown routes outside /api.
func (h *SiteHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		utils.Error(c, 404, "NOT_FOUND", "Route not found")
		return
	}
	h.render(c, http.StatusNotFound, web.PageNotFound, "Not Found", nil)
}

// RFQForm handles GET /rfq
// ?table= preselects a table, ?service= preselects a service type.
func (h *SiteHandler) RFQForm(c *gin.Context) {
	page := rfqPage{
		ServiceTypes: models.ServiceTypes,
		Form: service.CreateRFQRequest{
			ServiceType:        c.Query("service"),
			PreferredContact:   string(models.ContactPhone),
			InstallationNeeded: true,
		},
	}
	if id := c.Query("table"); id != "" {
		if t, err := h.tables.Get(c.Request.Context(), id); err == nil && t.Status == models.TableAvailable {
			page.Table = t
		}
	}
	h.render(c, http.StatusOK, web.PageRFQ, "Request a Quote", page)
}

// SubmitRFQ handles POST /rfq
// Table name and price are looked up server-side from tableId.
func (h *SiteHandler) SubmitRFQ(c *gin.Context) {
	page := rfqPage{ServiceTypes: models.ServiceTypes}
	if err := c.ShouldBind(&page.Form); err != nil {
		page.Error = "Please check the form and try again."
		h.render(c, http.StatusBadRequest, web.PageRFQ, "Request a Quote", page)
		return
	}
	page.Form.Source = "website"

	if id := strings.TrimSpace(page.Form.TableID); id != "" {
		t, err := h.tables.Get(c.Request.Context(), id)
		if err != nil {
			page.Error = "The selected table could not be found."
			h.render(c, formStatus(err), web.PageRFQ, "Request a Quote", page)
			return
		}
		page.Table = t
		page.Form.TableName = t.Name
		price := t.Price
		page.Form.TablePrice = &price
	}

	if _, err := h.rfqs.Create(c.Request.Context(), &page.Form); err != nil {
		page.Error = formError(err, "There was an error submitting your request. Please try again.")
		h.render(c, formStatus(err), web.PageRFQ, "Request a Quote", page)
		return
	}

	if page.Form.PreferredContact == "" {
		page.Form.PreferredContact = string(models.ContactPhone)
	}
	page.Submitted = true
	h.render(c, http.StatusOK, web.PageRFQ, "Request Submitted", page)
}

// Reviews handles GET /reviews
func (h *SiteHandler) Reviews(c *gin.Context) {
	page := h.reviewsPage(c)
	page.Form.Rating = 5
	h.render(c, http.StatusOK, web.PageReviews, "Reviews", page)
}

// SubmitReview handles POST /reviews (multipart)
// Attached photos are uploaded before the review is stored. A failed review
// leaves already uploaded photos in place.
func (h *SiteHandler) SubmitReview(c *gin.Context) {
	page := h.reviewsPage(c)

	var req service.CreateReviewRequest
	bindErr := c.ShouldBind(&req)
	page.Form = reviewForm{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Comment:      req.Comment,
		Service:      req.Service,
	}
	if req.Rating != nil {
		page.Form.Rating = *req.Rating
	}
	if bindErr != nil {
		page.Error = "Please check the form and try again."
		h.render(c, http.StatusBadRequest, web.PageReviews, "Reviews", page)
		return
	}

	images, err := h.uploadReviewImages(c)
	if err != nil {
		page.Error = formError(err, "We could not upload your photos. Please try again.")
		h.render(c, formStatus(err), web.PageReviews, "Reviews", page)
		return
	}
	req.Images = images

	if _, err := h.reviews.Create(c.Request.Context(), &req); err != nil {
		page.Error = formError(err, "There was an error submitting your review. Please try again.")
		h.render(c, formStatus(err), web.PageReviews, "Reviews", page)
		return
	}

	page.Submitted = true
	h.render(c, http.StatusOK, web.PageReviews, "Thank You", page)
}

func (h *SiteHandler) reviewsPage(c *gin.Context) reviewsPage {
	reviews, err := h.reviews.List(c.Request.Context(), "", false)
	degrade(c, err)
	return reviewsPage{
		Reviews:  reviews,
		Services: models.ReviewServices,
		Ratings:  []int{5, 4, 3, 2, 1},
	}
}

func (h *SiteHandler) uploadReviewImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}
	var urls []string
	for _, fh := range form.File["images"] {
		data, err := readFile(fh, service.MaxReviewImageSize)
		if err != nil {
			return urls, err
		}
		file, err := h.uploads.Upload(c.Request.Context(), service.FolderReviews, fh.Filename, contentType(fh, data), data)
		if err != nil {
			return urls, err
		}
		urls = append(urls, file.URL)
	}
	return urls, nil
}

func (h *SiteHandler) render(c *gin.Context, status int, page, title string, data interface{}) {
	var buf bytes.Buffer
	if err := h.pages.Render(&buf, page, title, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("Failed to render page")
		c.String(http.StatusInternalServerError, "Something went wrong. Please call us instead.")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (h *SiteHandler) notFound(c *gin.Context, err error) {
	if !isNotFound(err) {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Failed to load page")
	}
	h.render(c, http.StatusNotFound, web.PageNotFound, "Not Found", nil)
}

// degrade logs a failed list so the page can render with no items.
func degrade(c *gin.Context, err error) {
	if err != nil {
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Rendering page without items")
	}
}

func first[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func isNotFound(err error) bool {
	for _, nf := range notFoundCodes {
		if errors.Is(err, nf.err) {
			return true
		}
	}
	return false
}

func formError(err error, fallback string) string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if errors.Is(err, utils.ErrServiceUnavailable) {
		return "Our system is temporarily unavailable."
	}
	log.Error().Err(err).Msg(fallback)
	return fallback
}

func formStatus(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case isNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
