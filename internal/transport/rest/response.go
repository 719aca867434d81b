package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filegate/internal/domain"
)

type errorResponseBody struct {
	Error string `json:"error" example:"only PDF files are allowed"`
}

type healthResponse struct {
	Status string `json:"status" example:"ok"`
}

// statusFromError is the single place that maps service errors to HTTP statuses.
func statusFromError(err error) int {
	if domain.IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	} else {
		h.logger.Warn("request rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}

	errorResponse(c, status, err.Error())
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{Error: message})
}

func unauthorizedResponse(c *gin.Context) {
	c.String(http.StatusUnauthorized, "Unauthorized")
	c.Abort()
}
