// Package store is a small document-store abstraction. Documents are JSON-like
// maps grouped in named collections and keyed by a generated id.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a document id does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrUnavailable is returned by every call when no backend is configured.
	ErrUnavailable = errors.New("document store unavailable")
)

// Document is a single stored record. Values are JSON-compatible types;
// timestamps read back from any backend are ISO-8601 strings.
type Document map[string]interface{}

// Filter is an equality condition: Field == Value.
type Filter struct {
	Field string
	Value interface{}
}

// Eq builds an equality filter.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Value: value}
}

// Store is implemented by every document backend.
type Store interface {
	// Create inserts data under a new id, stamping id, createdAt and updatedAt.
	Create(ctx context.Context, collection string, data Document) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	// Update merges patch into the document and stamps updatedAt.
	Update(ctx context.Context, collection, id string, patch Document) error
	Delete(ctx context.Context, collection, id string) error
	List(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
	// UpdateMany applies every patch or none of them. A missing id fails the
	// whole batch with ErrNotFound.
	UpdateMany(ctx context.Context, collection string, patches map[string]Document) error
	Ping(ctx context.Context) error
	Name() string
	Close() error
}

// Collection names.
const (
	CollectionTables     = "tables"
	CollectionReviews    = "reviews"
	CollectionRFQs       = "rfqs"
	CollectionBlogPosts  = "blog_posts"
	CollectionAdminUsers = "admin_users"
)

// Reserved document keys.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)
