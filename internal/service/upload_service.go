package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/storage"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// Upload folders.
const (
	FolderTables  = "tables"
	FolderBlog    = "blog"
	FolderReviews = "reviews"
)

const (
	MaxImageSize       = 5 << 20
	MaxReviewImageSize = 10 << 20
)

var (
	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	extPattern = regexp.MustCompile(`^[a-z0-9]{1,5}$`)
)

// UploadedFile describes a stored image.
type UploadedFile struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// UploadService validates images and writes them to object storage.
type UploadService struct {
	storage storage.ObjectStorage
	newID   func() string
}

func NewUploadService(objects storage.ObjectStorage) *UploadService {
	if objects == nil {
		objects = storage.Disabled{}
	}
	return &UploadService{storage: objects, newID: func() string { return uuid.New().String() }}
}

// MaxSize returns the size limit for a folder.
func MaxSize(folder string) int64 {
	if folder == FolderReviews {
		return MaxReviewImageSize
	}
	return MaxImageSize
}

// Upload stores data as {folder}/{uuid}.{ext}. An empty folder means tables.
func (s *UploadService) Upload(ctx context.Context, folder, fileName, contentType string, data []byte) (*UploadedFile, error) {
	if folder == "" {
		folder = FolderTables
	}
	if folder != FolderTables && folder != FolderBlog && folder != FolderReviews {
		return nil, invalid("folder", "folder must be one of tables, blog, reviews")
	}
	if len(data) == 0 {
		return nil, invalid("file", "No file provided")
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !allowedImageTypes[contentType] {
		return nil, invalid("file", "Invalid file type. Only JPEG, PNG, and WebP are allowed.")
	}
	if limit := MaxSize(folder); int64(len(data)) > limit {
		return nil, invalid("file", fmt.Sprintf("File too large. Maximum size is %dMB.", limit>>20))
	}
	if !contentMatches(data, contentType) {
		return nil, invalid("file", "File content does not match its declared type.")
	}

	key := fmt.Sprintf("%s/%s.%s", folder, s.newID(), extension(fileName, contentType))
	url, err := s.storage.Upload(ctx, key, contentType, data)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: %v", utils.ErrServiceUnavailable, err)
		}
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	log.Info().Str("key", key).Int("size", len(data)).Msg("Image uploaded")
	return &UploadedFile{URL: url, FileName: key}, nil
}

// Delete removes an uploaded image by the fileName returned from Upload.
func (s *UploadService) Delete(ctx context.Context, fileName string) error {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return invalid("fileName", "No fileName provided")
	}
	clean := path.Clean(fileName)
	folder, _, ok := strings.Cut(clean, "/")
	if !ok || clean != fileName || strings.Contains(clean, "..") ||
		(folder != FolderTables && folder != FolderBlog && folder != FolderReviews) {
		return invalid("fileName", "fileName must be an uploaded image path")
	}

	if err := s.storage.Delete(ctx, clean); err != nil {
		switch {
		case errors.Is(err, storage.ErrObjectNotFound):
			return utils.ErrFileNotFound
		case errors.Is(err, storage.ErrNotConfigured):
			return fmt.Errorf("%w: %v", utils.ErrServiceUnavailable, err)
		}
		return fmt.Errorf("delete %s: %w", clean, err)
	}
	log.Info().Str("key", clean).Msg("Image deleted")
	return nil
}

// StorageName reports the configured backend for health checks.
func (s *UploadService) StorageName() string {
	return s.storage.Name()
}

func extension(fileName, contentType string) string {
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		if ext := strings.ToLower(fileName[i+1:]); extPattern.MatchString(ext) {
			return ext
		}
	}
	_, sub, _ := strings.Cut(contentType, "/")
	return sub
}

// contentMatches sniffs data and reports whether it is the declared image type.
func contentMatches(data []byte, contentType string) bool {
	if contentType == "image/jpg" {
		contentType = "image/jpeg"
	}
	return mimetype.Detect(data).Is(contentType)
}
