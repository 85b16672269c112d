package handler

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/utils"
)

var notFoundCodes = []struct {
	err     error
	code    string
	message string
}{
	{utils.ErrTableNotFound, "TABLE_NOT_FOUND", "Table not found"},
	{utils.ErrReviewNotFound, "REVIEW_NOT_FOUND", "Review not found"},
	{utils.ErrRFQNotFound, "RFQ_NOT_FOUND", "RFQ not found"},
	{utils.ErrBlogNotFound, "BLOG_NOT_FOUND", "Blog post not found"},
	{utils.ErrFileNotFound, "FILE_NOT_FOUND", "File not found"},
}

// respondError maps service errors to the API envelope. Unknown errors are
// logged and reported as a generic 500 with fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		utils.Error(c, 400, "INVALID_REQUEST", verr.Message)
		return
	}

	var locked *service.LockedOutError
	if errors.As(err, &locked) {
		seconds := int(math.Ceil(locked.RetryAfter.Seconds()))
		c.Header("Retry-After", fmt.Sprintf("%d", seconds))
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", locked.Error())
		return
	}

	for _, nf := range notFoundCodes {
		if errors.Is(err, nf.err) {
			utils.Error(c, 404, nf.code, nf.message)
			return
		}
	}

	switch {
	case errors.Is(err, utils.ErrSlugExists):
		utils.Error(c, 409, "SLUG_EXISTS", "A blog post with this slug already exists")
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, utils.ErrAccountInactive):
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Account is inactive")
	case errors.Is(err, utils.ErrServiceUnavailable):
		log.Warn().Err(err).Str("path", c.FullPath()).Msg("Dependency unavailable")
		utils.Error(c, 503, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		_ = c.Error(err)
		utils.Error(c, 500, "INTERNAL_ERROR", fallback)
	}
}

// respondList writes items as a list. When the store fails and failOpen is
// set, the failure is logged and an empty list is returned instead.
// Validation errors always surface.
func respondList[T any](c *gin.Context, failOpen bool, message string, items []T, err error) {
	if err != nil {
		var verr *service.ValidationError
		if !failOpen || errors.As(err, &verr) {
			respondError(c, err, "Failed to retrieve "+message)
			return
		}
		log.Error().Err(err).Str("path", c.FullPath()).Msg("List failed, returning empty result")
		items = nil
	}
	utils.SuccessList(c, capitalize(message)+" retrieved", items)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
