// Package storage uploads public image objects to a cloud bucket.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrObjectNotFound is returned when deleting a key that does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrNotConfigured is returned by the Disabled backend.
	ErrNotConfigured = errors.New("object storage not configured")
)

// PublicCacheControl is attached to every uploaded object.
const PublicCacheControl = "public, max-age=31536000"

// ObjectStorage stores publicly readable objects.
type ObjectStorage interface {
	// Upload writes data under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	Name() string
}

// Disabled is used when no storage backend is configured.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Delete(ctx context.Context, key string) error { return ErrNotConfigured }

func (Disabled) Name() string { return "none" }
