package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filegate/internal/domain"
	"filegate/internal/storage"
	"filegate/pkg/keygen"
	"filegate/pkg/metrics"
	"filegate/pkg/validator"
)

type FileServiceImpl struct {
	store             storage.ObjectStore
	newKey            keygen.Func
	presignStorageKey bool
	logger            *zap.Logger
}

func NewFileService(
	store storage.ObjectStore,
	newKey keygen.Func,
	presignStorageKey bool,
	logger *zap.Logger,
) *FileServiceImpl {
	return &FileServiceImpl{
		store:             store,
		newKey:            newKey,
		presignStorageKey: presignStorageKey,
		logger:            logger,
	}
}

// Upload stores the file under a freshly generated key and returns a presigned URL for it.
// Store calls are detached from ctx cancellation: once started they run to completion.
func (s *FileServiceImpl) Upload(ctx context.Context, file domain.IncomingFile) (*domain.UploadResult, error) {
	if err := validator.ValidateUploadCandidate(file); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	key := s.newKey()

	s.logger.Info("uploading file",
		zap.String("filename", file.OriginalFilename),
		zap.String("size", humanize.IBytes(uint64(file.Size))),
	)

	err := s.store.PutObject(ctx, key, file.Content, file.Mimetype)
	metrics.ObserveStoreOperation(metrics.OpPut, err)
	if err != nil {
		s.logger.Error("file upload failed", zap.String("filename", file.OriginalFilename), zap.Error(err))
		return nil, &domain.UploadError{Err: err}
	}

	// The original filename is presigned unless PresignStorageKey is set.
	target := file.OriginalFilename
	if s.presignStorageKey {
		target = key
	}

	url, err := s.Presign(ctx, target)
	if err != nil {
		s.logger.Error("file upload failed", zap.String("filename", file.OriginalFilename), zap.Error(err))
		return nil, &domain.UploadError{Err: err}
	}

	s.logger.Info("file uploaded", zap.String("filename", file.OriginalFilename), zap.String("key", key))

	return &domain.UploadResult{
		Message: domain.UploadSuccessMessage,
		URL:     url,
		FileRef: key,
	}, nil
}

func (s *FileServiceImpl) DeleteOne(ctx context.Context, key string) (*domain.DeletionResult, error) {
	if err := validator.ValidateKey(key); err != nil {
		return nil, err
	}

	s.logger.Info("deleting file", zap.String("key", key))

	err := s.store.DeleteObject(context.WithoutCancel(ctx), key)
	metrics.ObserveStoreOperation(metrics.OpDelete, err)
	if err != nil {
		s.logger.Error("file deletion failed", zap.String("key", key), zap.Error(err))
		return nil, &domain.DeletionError{Err: err}
	}

	s.logger.Info("file deleted", zap.String("key", key))

	return &domain.DeletionResult{
		Message: fmt.Sprintf("File %s was successfully deleted", key),
	}, nil
}

// DeleteMany removes every key concurrently and waits for all of them. Any failure fails the
// whole call without saying which key failed; objects deleted before the failure stay deleted.
func (s *FileServiceImpl) DeleteMany(ctx context.Context, keys []string) (*domain.DeletionResult, error) {
	if err := validator.ValidateKeyList(keys); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	s.logger.Info("deleting multiple files", zap.Strings("keys", keys))

	var g errgroup.Group
	for _, key := range keys {
		key := key
		g.Go(func() error {
			err := s.store.DeleteObject(ctx, key)
			metrics.ObserveStoreOperation(metrics.OpDelete, err)
			if err != nil {
				s.logger.Error("object deletion failed", zap.String("key", key), zap.Error(err))
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("file deletion failed", zap.Strings("keys", keys), zap.Error(err))
		return nil, &domain.DeletionError{Err: err}
	}

	joined := strings.Join(keys, ", ")
	s.logger.Info("files deleted", zap.Strings("keys", keys))

	return &domain.DeletionResult{
		Message: fmt.Sprintf("Files %s were successfully deleted", joined),
	}, nil
}

// Presign returns a GET URL for displayKey valid for domain.PresignExpiry.
func (s *FileServiceImpl) Presign(ctx context.Context, displayKey string) (string, error) {
	s.logger.Info("generating presigned url", zap.String("filename", displayKey))

	if displayKey == "" {
		s.logger.Error("url generation failed", zap.Error(domain.ErrFilenameRequired))
		return "", &domain.PresignError{Err: domain.ErrFilenameRequired}
	}

	url, err := s.store.PresignGetObject(ctx, displayKey, domain.PresignExpiry)
	metrics.ObserveStoreOperation(metrics.OpPresign, err)
	if err != nil {
		s.logger.Error("url generation failed", zap.String("filename", displayKey), zap.Error(err))
		return "", &domain.PresignError{Err: err}
	}

	s.logger.Info("presigned url generated", zap.String("filename", displayKey))

	return url, nil
}
