package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
)

// Firebase writes objects to the Firebase Storage (GCS) bucket.
type Firebase struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewFirebase wraps a bucket handle, typically obtained from
// firebase.App.Storage(ctx).DefaultBucket().
func NewFirebase(bucket *gcs.BucketHandle, bucketName string) *Firebase {
	return &Firebase{bucket: bucket, bucketName: bucketName}
}

func (f *Firebase) Name() string { return "firebase" }

func (f *Firebase) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	obj := f.bucket.Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = PublicCacheControl

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", key, err)
	}

	// Buckets with uniform access reject object ACLs; they are made public at
	// the bucket level instead.
	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to set public ACL on object")
	}

	log.Info().Str("key", key).Int("size", len(data)).Msg("Uploaded object to Firebase Storage")
	return f.GetObjectURL(key), nil
}

func (f *Firebase) Delete(ctx context.Context, key string) error {
	if err := f.bucket.Object(key).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// GetObjectURL returns the public URL of key.
func (f *Firebase) GetObjectURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", f.bucketName, (&url.URL{Path: key}).EscapedPath())
}
