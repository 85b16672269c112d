package handler

import (
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

// UploadHandler handles admin image uploads.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Upload handles POST /api/upload (multipart: file, folder)
func (h *UploadHandler) Upload(c *gin.Context) {
	folder := c.PostForm("folder")
	storeUpload(c, h.uploads, folder)
}

// Delete handles DELETE /api/upload?fileName=
func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.uploads.Delete(c.Request.Context(), c.Query("fileName")); err != nil {
		respondError(c, err, "Failed to delete file")
		return
	}
	utils.Success(c, 200, "File deleted successfully", nil)
}

// storeUpload reads the multipart "file" field and stores it under folder.
func storeUpload(c *gin.Context, uploads *service.UploadService, folder string) {
	if folder == "" {
		folder = service.FolderTables
	}
	fh, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "No file provided")
		return
	}
	data, err := readFile(fh, service.MaxSize(folder))
	if err != nil {
		respondError(c, err, "Failed to read file")
		return
	}

	file, err := uploads.Upload(c.Request.Context(), folder, fh.Filename, contentType(fh, data), data)
	if err != nil {
		respondError(c, err, "Failed to upload file")
		return
	}
	utils.Success(c, 200, "File uploaded successfully", file)
}

// readFile reads at most limit+1 bytes so oversize files are detected without
// buffering them whole.
func readFile(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit+1))
}

// contentType is the declared part type, or the sniffed type when the client
// sent none. The upload service checks the declared type against the bytes.
func contentType(fh *multipart.FileHeader, data []byte) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return mimetype.Detect(data).String()
}
