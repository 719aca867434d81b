package rest

import (
	"crypto/subtle"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filegate/pkg/metrics"
)

const apiKeyHeader = "x-api-key"

// requestRoute is the matched route template, so /api/delete?filename=x logs as /api/delete.
func requestRoute(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()

		logger := h.logger.With(
			zap.String("route", requestRoute(c)),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int64("bytes_in", c.Request.ContentLength),
			zap.Int("bytes_out", c.Writer.Size()),
			zap.String("ip", c.ClientIP()),
		)

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed")
		case status == http.StatusUnauthorized:
			logger.Warn("request unauthorized")
		case status >= http.StatusBadRequest:
			logger.Warn("request invalid")
		default:
			logger.Info("request served")
		}
	}
}

func (h *Handler) errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		h.logger.Error("request errors",
			zap.String("route", requestRoute(c)),
			zap.Strings("errors", c.Errors.Errors()),
		)
	}
}

func (h *Handler) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := requestRoute(c)
		metrics.RequestCounter.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept", apiKeyHeader}
	cfg.MaxAge = 24 * time.Hour

	origins := h.config.HTTP.AllowedOrigins
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

// apiKeyMiddleware rejects requests whose x-api-key header does not match the configured secret.
func (h *Handler) apiKeyMiddleware() gin.HandlerFunc {
	expected := []byte(h.config.Auth.APIKey)

	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
			unauthorizedResponse(c)
			return
		}

		c.Next()
	}
}
