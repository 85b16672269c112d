package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive    = errors.New("ACCOUNT_INACTIVE")
	ErrTableNotFound      = errors.New("TABLE_NOT_FOUND")
	ErrReviewNotFound     = errors.New("REVIEW_NOT_FOUND")
	ErrRFQNotFound        = errors.New("RFQ_NOT_FOUND")
	ErrBlogNotFound       = errors.New("BLOG_NOT_FOUND")
	ErrFileNotFound       = errors.New("FILE_NOT_FOUND")
	ErrSlugExists         = errors.New("SLUG_EXISTS")
	ErrServiceUnavailable = errors.New("SERVICE_UNAVAILABLE")
)
