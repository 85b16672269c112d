package storage

import (
	"context"
	"errors"
	"testing"
)

func TestDisabled(t *testing.T) {
	var s ObjectStorage = Disabled{}
	if _, err := s.Upload(context.Background(), "tables/a.png", "image/png", []byte{1}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Upload() error = %v, want ErrNotConfigured", err)
	}
	if err := s.Delete(context.Background(), "tables/a.png"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Delete() error = %v, want ErrNotConfigured", err)
	}
}

func TestObjectURLs(t *testing.T) {
	f := &Firebase{bucketName: "billiards.appspot.com"}
	if got := f.GetObjectURL("tables/abc.jpg"); got != "https://storage.googleapis.com/billiards.appspot.com/tables/abc.jpg" {
		t.Errorf("Firebase URL = %s", got)
	}

	s := &S3{bucket: "media", region: "us-east-2"}
	if got := s.GetObjectURL("blog/x.webp"); got != "https://media.s3.us-east-2.amazonaws.com/blog/x.webp" {
		t.Errorf("S3 URL = %s", got)
	}

	s.endpoint = "http://localhost:9000"
	if got := s.GetObjectURL("blog/x.webp"); got != "http://localhost:9000/media/blog/x.webp" {
		t.Errorf("S3 endpoint URL = %s", got)
	}
}
