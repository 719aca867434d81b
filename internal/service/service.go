package service

import (
	"context"

	"go.uber.org/zap"

	"filegate/config"
	"filegate/internal/domain"
	"filegate/internal/storage"
	"filegate/pkg/keygen"
)

type Deps struct {
	Logger *zap.Logger
	Config *config.Config
	Store  storage.ObjectStore
	KeyGen keygen.Func
}

type Services struct {
	File FileService
}

func NewServices(deps Deps) *Services {
	keyGen := deps.KeyGen
	if keyGen == nil {
		keyGen = keygen.New
	}

	return &Services{
		File: NewFileService(deps.Store, keyGen, deps.Config.S3.PresignStorageKey, deps.Logger),
	}
}

type FileService interface {
	Upload(ctx context.Context, file domain.IncomingFile) (*domain.UploadResult, error)
	DeleteOne(ctx context.Context, key string) (*domain.DeletionResult, error)
	DeleteMany(ctx context.Context, keys []string) (*domain.DeletionResult, error)
	Presign(ctx context.Context, displayKey string) (string, error)
}
