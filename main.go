package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"filegate/config"
	_ "filegate/docs"
	"filegate/internal/service"
	"filegate/internal/storage"
	"filegate/internal/transport/rest"
	"filegate/pkg/logger"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Filegate API
// @version 1.0
// @description PDF upload gateway backed by S3 with presigned download URLs

// @BasePath /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
func main() {
	bootLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		bootLogger.Fatal("failed to read .env file", zap.Error(err))
	}

	cfg, err := config.NewConfig()
	if err != nil {
		bootLogger.Fatal("failed to load configuration", zap.Error(err))
	}
	_ = bootLogger.Sync()

	log := logger.NewLogger(cfg.Environment, cfg.Log)
	defer log.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s3Storage, err := storage.NewS3Storage(cfg.S3, log)
	if err != nil {
		log.Fatal("failed to initialise s3 storage", zap.Error(err))
	}

	checkCtx, cancelCheck := context.WithTimeout(context.Background(), 10*time.Second)
	if err := s3Storage.CheckBucket(checkCtx); err != nil {
		cancelCheck()
		log.Fatal("s3 bucket is not accessible", zap.Error(err))
	}
	cancelCheck()

	services := service.NewServices(service.Deps{
		Logger: log,
		Config: cfg,
		Store:  s3Storage,
	})

	handler := rest.NewHandler(services, log, cfg)

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr), zap.String("bucket", cfg.S3.Bucket))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
