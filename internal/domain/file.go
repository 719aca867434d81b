package domain

import "time"

const (
	// PDFContentType is the only content type the gateway accepts.
	PDFContentType = "application/pdf"
	// PDFExtension is appended to every generated storage key.
	PDFExtension = ".pdf"

	MaxFileSize int64 = 5 * 1024 * 1024

	PresignExpiry = 7 * 24 * time.Hour
)

const (
	UploadSuccessMessage = "Successfully uploaded file to S3"
)

// IncomingFile describes one uploaded file for the duration of a single request.
type IncomingFile struct {
	OriginalFilename string `validate:"required"`
	Mimetype         string `validate:"required,eq=application/pdf"`
	Size             int64  `validate:"gte=0,max=5242880"`
	Content          []byte `validate:"-"`
}

type UploadResult struct {
	Message string `json:"message" example:"Successfully uploaded file to S3"`
	URL     string `json:"url"`
	FileRef string `json:"fileRef" example:"0b6a5c9e-8f0e-4f55-9c36-2f1e0d5b7c11.pdf"`
}

type DeletionResult struct {
	Message string `json:"message"`
}

type DeleteManyRequest struct {
	Filenames []string `json:"filenames"`
}
