package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/store"
)

// collection maps between typed models and store documents through their
// JSON representation, so struct tags define the stored field names.
type collection[T any] struct {
	store store.Store
	name  string
}

func (c collection[T]) create(ctx context.Context, v *T) (string, error) {
	doc, err := encode(v)
	if err != nil {
		return "", err
	}
	return c.store.Create(ctx, c.name, doc)
}

func (c collection[T]) get(ctx context.Context, id string) (*T, error) {
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return nil, err
	}
	var v T
	if err := decode(doc, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
	}
	return &v, nil
}

// list never returns a nil slice on success. Documents that cannot be decoded
// are logged and skipped.
func (c collection[T]) list(ctx context.Context, filters ...store.Filter) ([]T, error) {
	docs, err := c.store.List(ctx, c.name, filters...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := decode(doc, &v); err != nil {
			log.Warn().Err(err).Str("collection", c.name).Interface("id", doc[store.FieldID]).Msg("Skipping malformed document")
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (c collection[T]) update(ctx context.Context, id string, patch store.Document) error {
	return c.store.Update(ctx, c.name, id, patch)
}

func (c collection[T]) delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

func encode(v interface{}) (store.Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc store.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(doc, store.FieldID)
	delete(doc, store.FieldCreatedAt)
	delete(doc, store.FieldUpdatedAt)
	return doc, nil
}

func decode(doc store.Document, out interface{}) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
