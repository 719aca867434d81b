package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filegate/config"
	"filegate/internal/service"
	"filegate/pkg/metrics"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.MaxMultipartMemory = maxUploadBodySize

	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.metricsMiddleware())

	router.Use(h.corsMiddleware())

	router.GET("/health", h.health)

	if h.config.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api", h.apiKeyMiddleware())
	{
		api.POST("/upload", h.uploadFile)
		api.DELETE("/delete", h.deleteFile)
		api.DELETE("/delete-multiple", h.deleteMultipleFiles)
	}
}

// health sits outside /api and is left out of the swagger document.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
