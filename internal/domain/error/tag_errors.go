// Package error defines domain-specific errors for the fin-mate application.
package error

import "errors"

// Tag domain errors.
var (
	// ErrTagNotFound is returned when a tag is not found in the system.
	ErrTagNotFound = errors.New("tag not found")

	// ErrNotAuthorizedToModifyTag is returned when user is not authorized to modify a tag.
	ErrNotAuthorizedToModifyTag = errors.New("not authorized to modify tag")

	// ErrTagNameExists is returned when a tag with the same name already exists for the user.
	ErrTagNameExists = errors.New("tag name already exists")

	// ErrInvalidTagColor is returned when the tag color is not part of the palette.
	ErrInvalidTagColor = errors.New("invalid tag color")
)

// TagErrorCode defines error codes for tag errors.
// Format: TAG-XXYYYY where XX is category and YYYY is specific error.
type TagErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTagNotFound      TagErrorCode = "TAG-010001"
	ErrCodeNotAuthorizedTag TagErrorCode = "TAG-010002"
	ErrCodeTagNameExists    TagErrorCode = "TAG-010003"
	ErrCodeInvalidTagColor  TagErrorCode = "TAG-010004"
)

// TagError represents a tag error with code and message.
type TagError struct {
	Code    TagErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TagError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TagError) Unwrap() error {
	return e.Err
}

// NewTagError creates a new TagError with the given code and message.
func NewTagError(code TagErrorCode, message string, err error) *TagError {
	return &TagError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
