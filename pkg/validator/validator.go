// Package validator checks upload candidates and storage keys before any I/O happens.
package validator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"

	"filegate/internal/domain"
)

const (
	keyRules     = "required"
	keyListRules = "required,min=1,dive,required"
)

var (
	inst *validator.Validate
	once sync.Once
)

func engine() *validator.Validate {
	once.Do(func() {
		inst = validator.New(validator.WithRequiredStructEnabled())
	})
	return inst
}

// ValidateUploadCandidate reports the first rule the file breaks as a *domain.ValidationError.
func ValidateUploadCandidate(file domain.IncomingFile) error {
	err := engine().Struct(file)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("file", err.Error())
	}

	fe := fieldErrs[0]
	switch fe.StructField() {
	case "OriginalFilename":
		return domain.NewValidationError("originalFilename", "filename is required")
	case "Mimetype":
		return domain.NewValidationError("mimetype", "only PDF files are allowed")
	case "Size":
		if fe.Tag() == "max" {
			return domain.NewValidationError("size", SizeLimitMessage())
		}
		return domain.NewValidationError("size", "file size is invalid")
	default:
		return domain.NewValidationError(fe.Field(), fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// SizeLimitMessage is also used by the transport layer when the request body itself is too large.
func SizeLimitMessage() string {
	return fmt.Sprintf("file size must not exceed %s", humanize.IBytes(uint64(domain.MaxFileSize)))
}

func ValidateKey(key string) error {
	if err := engine().Var(key, keyRules); err != nil {
		return domain.NewValidationError("filename", "filename is required")
	}
	return nil
}

func ValidateKeyList(keys []string) error {
	if err := engine().Var(keys, keyListRules); err == nil {
		return nil
	}

	if len(keys) == 0 {
		return domain.NewValidationError("filenames", "filenames must be a non-empty list")
	}

	for i, key := range keys {
		if key == "" {
			return domain.NewValidationError("filenames", fmt.Sprintf("filenames[%d] is required", i))
		}
	}

	return domain.NewValidationError("filenames", "filenames is invalid")
}
