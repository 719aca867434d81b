package rest

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"filegate/internal/domain"
	"filegate/pkg/validator"
)

const (
	uploadFormField = "file"
	// room for multipart boundaries and part headers on top of the file itself
	maxUploadBodySize = domain.MaxFileSize + 1<<20
)

// @Summary Upload a PDF
// @Description Stores the file under a generated key and returns a presigned URL valid for 7 days
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "PDF file, at most 5 MiB"
// @Success 200 {object} domain.UploadResult
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {object} errorResponseBody "Object store error"
// @Router /upload [post]
func (h *Handler) uploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBodySize)

	header, err := c.FormFile(uploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(c, domain.NewValidationError("size", validator.SizeLimitMessage()))
			return
		}
		h.respondError(c, domain.NewValidationError(uploadFormField, "file is required"))
		return
	}

	file, err := readIncomingFile(header)
	if err != nil {
		h.respondError(c, domain.NewValidationError(uploadFormField, err.Error()))
		return
	}

	result, err := h.services.File.Upload(c.Request.Context(), file)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Delete one file
// @Tags Files
// @Produce json
// @Security ApiKeyAuth
// @Param filename query string true "Storage key returned as fileRef"
// @Success 200 {object} domain.DeletionResult
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {object} errorResponseBody "Object store error"
// @Router /delete [delete]
func (h *Handler) deleteFile(c *gin.Context) {
	result, err := h.services.File.DeleteOne(c.Request.Context(), c.Query("filename"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Delete several files
// @Description All deletions run concurrently; if any fails the whole request fails
// @Tags Files
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body domain.DeleteManyRequest true "Storage keys"
// @Success 200 {object} domain.DeletionResult
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {object} errorResponseBody "Object store error"
// @Router /delete-multiple [delete]
func (h *Handler) deleteMultipleFiles(c *gin.Context) {
	var input domain.DeleteManyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondError(c, domain.NewValidationError("filenames", "filenames must be an array of strings"))
		return
	}

	result, err := h.services.File.DeleteMany(c.Request.Context(), input.Filenames)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// readIncomingFile buffers the part in memory, reading at most one byte past the size ceiling.
func readIncomingFile(header *multipart.FileHeader) (domain.IncomingFile, error) {
	src, err := header.Open()
	if err != nil {
		return domain.IncomingFile{}, errors.New("file could not be read")
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, domain.MaxFileSize+1))
	if err != nil {
		return domain.IncomingFile{}, errors.New("file could not be read")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mimetype.Detect(content).String()
	}

	return domain.IncomingFile{
		OriginalFilename: header.Filename,
		Mimetype:         contentType,
		Size:             header.Size,
		Content:          content,
	}, nil
}
