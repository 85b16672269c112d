package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore stores documents in Cloud Firestore collections.
type Firestore struct {
	client *firestore.Client
}

// NewFirestore wraps an initialised Firestore client.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) Name() string { return "firestore" }

func (f *Firestore) Ping(ctx context.Context) error {
	_, err := f.client.Collection(CollectionAdminUsers).Limit(1).Documents(ctx).GetAll()
	return err
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) Create(ctx context.Context, collection string, data Document) (string, error) {
	ref := f.client.Collection(collection).NewDoc()
	now := time.Now().UTC()

	doc := make(map[string]interface{}, len(data)+3)
	for k, v := range data {
		doc[k] = v
	}
	doc[FieldID] = ref.ID
	doc[FieldCreatedAt] = now
	doc[FieldUpdatedAt] = now

	if _, err := ref.Create(ctx, doc); err != nil {
		return "", fmt.Errorf("firestore create %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (f *Firestore) Get(ctx context.Context, collection, id string) (Document, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	snap, err := f.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	return snapshotDocument(snap), nil
}

func (f *Firestore) Update(ctx context.Context, collection, id string, patch Document) error {
	if id == "" {
		return ErrNotFound
	}
	_, err := f.client.Collection(collection).Doc(id).Update(ctx, toUpdates(patch))
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("firestore update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, collection, id string) error {
	if id == "" {
		return ErrNotFound
	}
	_, err := f.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("firestore delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// List runs an equality query. Ordering is left to callers so that no
// composite index is needed.
func (f *Firestore) List(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	q := f.client.Collection(collection).Query
	for _, flt := range filters {
		q = q.Where(flt.Field, "==", flt.Value)
	}
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore list %s: %w", collection, err)
	}
	out := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, snapshotDocument(snap))
	}
	return out, nil
}

func (f *Firestore) UpdateMany(ctx context.Context, collection string, patches map[string]Document) error {
	if len(patches) == 0 {
		return nil
	}
	coll := f.client.Collection(collection)
	refs := make([]*firestore.DocumentRef, 0, len(patches))
	for id := range patches {
		if id == "" {
			return ErrNotFound
		}
		refs = append(refs, coll.Doc(id))
	}

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.GetAll(refs)
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			if !snap.Exists() {
				return ErrNotFound
			}
		}
		for _, ref := range refs {
			if err := tx.Update(ref, toUpdates(patches[ref.ID])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || isNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("firestore batch update %s: %w", collection, err)
	}
	return nil
}

func toUpdates(patch Document) []firestore.Update {
	updates := make([]firestore.Update, 0, len(patch)+1)
	for k, v := range patch {
		if k == FieldID || k == FieldCreatedAt || k == FieldUpdatedAt {
			continue
		}
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	return append(updates, firestore.Update{FieldPath: firestore.FieldPath{FieldUpdatedAt}, Value: time.Now().UTC()})
}

func snapshotDocument(snap *firestore.DocumentSnapshot) Document {
	doc := Normalize(snap.Data())
	if doc == nil {
		doc = Document{}
	}
	doc[FieldID] = snap.Ref.ID
	return doc
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
