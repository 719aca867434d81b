package domain

import "errors"

var ErrFilenameRequired = errors.New("filename is required")

// ValidationError is returned for malformed or out-of-policy input, always before any I/O.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "file upload failed: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

type DeletionError struct {
	Err error
}

func (e *DeletionError) Error() string {
	return "file deletion failed: " + e.Err.Error()
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

type PresignError struct {
	Err error
}

func (e *PresignError) Error() string {
	return "url generation failed: " + e.Err.Error()
}

func (e *PresignError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
