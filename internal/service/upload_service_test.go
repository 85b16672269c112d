package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/affordablebilliards/billiards_api/internal/storage"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

type fakeObjects struct {
	objects map[string][]byte
}

func (f *fakeObjects) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	f.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (f *fakeObjects) Delete(ctx context.Context, key string) error {
	if _, ok := f.objects[key]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeObjects) Name() string { return "fake" }

var (
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01")
	webpData = []byte("RIFF\x24\x00\x00\x00WEBPVP8 \x18\x00\x00\x00")
)

func newUploadService() (*UploadService, *fakeObjects) {
	objects := &fakeObjects{objects: map[string][]byte{}}
	svc := NewUploadService(objects)
	svc.newID = func() string { return "abc123" }
	return svc, objects
}

func TestUploadStoresUnderFolder(t *testing.T) {
	svc, objects := newUploadService()
	file, err := svc.Upload(context.Background(), "", "Table Photo.JPG", "image/jpeg", jpegData)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if file.FileName != "tables/abc123.jpg" || file.URL != "https://cdn.test/tables/abc123.jpg" {
		t.Errorf("file = %+v", file)
	}
	if _, ok := objects.objects["tables/abc123.jpg"]; !ok {
		t.Error("object not stored")
	}

	file, _ = svc.Upload(context.Background(), FolderBlog, "noext", "image/webp", webpData)
	if file.FileName != "blog/abc123.webp" {
		t.Errorf("fileName = %s", file.FileName)
	}
}

func TestUploadChecksContentAgainstDeclaredType(t *testing.T) {
	svc, _ := newUploadService()
	ctx := context.Background()
	if _, err := svc.Upload(ctx, FolderTables, "a.jpg", "image/jpg", jpegData); err != nil {
		t.Errorf("image/jpg with JPEG bytes rejected: %v", err)
	}
	if _, err := svc.Upload(ctx, FolderTables, "a.png", "IMAGE/PNG", pngData); err != nil {
		t.Errorf("upper-case type rejected: %v", err)
	}
	_, err := svc.Upload(ctx, FolderTables, "a.webp", "image/webp", pngData)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != "File content does not match its declared type." {
		t.Errorf("PNG bytes labelled webp: err = %v", err)
	}
}

func TestUploadValidation(t *testing.T) {
	svc, objects := newUploadService()
	big := append(append([]byte{}, pngData...), bytes.Repeat([]byte{1}, MaxImageSize)...)

	tests := []struct {
		name        string
		folder      string
		contentType string
		data        []byte
	}{
		{"empty", "tables", "image/png", nil},
		{"gif", "tables", "image/gif", []byte("GIF89a")},
		{"text labelled png", "tables", "image/png", []byte("<?php echo 1; ?>")},
		{"jpeg labelled png", "tables", "image/png", jpegData},
		{"too large", "tables", "image/png", big},
		{"bad folder", "secrets", "image/png", pngData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), tt.folder, "a.png", tt.contentType, tt.data)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
	if len(objects.objects) != 0 {
		t.Errorf("%d objects stored", len(objects.objects))
	}

	if _, err := svc.Upload(context.Background(), FolderReviews, "a.png", "image/png", big); err != nil {
		t.Errorf("review image within 10MB rejected: %v", err)
	}
}

func TestUploadDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUploadService()
	file, _ := svc.Upload(ctx, FolderTables, "a.png", "image/png", pngData)

	if err := svc.Delete(ctx, file.FileName); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, file.FileName); !errors.Is(err, utils.ErrFileNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
	for _, name := range []string{"", "../etc/passwd", "tables/../blog/x.png", "other/x.png", "x.png"} {
		var verr *ValidationError
		if err := svc.Delete(ctx, name); !errors.As(err, &verr) {
			t.Errorf("Delete(%q) err = %v, want ValidationError", name, err)
		}
	}
}

func TestUploadWithoutStorage(t *testing.T) {
	svc := NewUploadService(nil)
	_, err := svc.Upload(context.Background(), FolderTables, "a.png", "image/png", pngData)
	if !errors.Is(err, utils.ErrServiceUnavailable) {
		t.Errorf("err = %v, want ErrServiceUnavailable", err)
	}
	if svc.StorageName() != "none" {
		t.Errorf("StorageName() = %s", svc.StorageName())
	}
}
