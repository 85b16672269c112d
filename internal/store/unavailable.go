package store

import (
	"context"
	"fmt"
)

// Unavailable is the Store used when the configured backend could not be
// initialised. Every operation fails with ErrUnavailable.
type Unavailable struct {
	reason error
}

// NewUnavailable wraps the initialisation error that caused the fallback.
func NewUnavailable(reason error) *Unavailable {
	return &Unavailable{reason: reason}
}

func (u *Unavailable) err() error {
	if u.reason == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, u.reason)
}

func (u *Unavailable) Name() string { return "unavailable" }

func (u *Unavailable) Ping(ctx context.Context) error { return u.err() }

func (u *Unavailable) Close() error { return nil }

func (u *Unavailable) Create(ctx context.Context, collection string, data Document) (string, error) {
	return "", u.err()
}

func (u *Unavailable) Get(ctx context.Context, collection, id string) (Document, error) {
	return nil, u.err()
}

func (u *Unavailable) Update(ctx context.Context, collection, id string, patch Document) error {
	return u.err()
}

func (u *Unavailable) Delete(ctx context.Context, collection, id string) error {
	return u.err()
}

func (u *Unavailable) List(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	return nil, u.err()
}

func (u *Unavailable) UpdateMany(ctx context.Context, collection string, patches map[string]Document) error {
	return u.err()
}
