package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"empdir/inner/common"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Service хранилище картинок профиля поверх MinIO
type Service struct {
	client    *minio.Client
	logger    *common.Logger
	bucket    string
	publicUrl string
}

// ConnectMinio подключается к MinIO и готовит бакет для картинок
func ConnectMinio(cfg common.Config, logger *common.Logger) (*Service, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: false,
	})
	if err != nil {
		logger.Error("Failed to initialize MinIO client", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	logger.Info("MinIO client initialized", zap.String("endpoint", cfg.MinioEndpoint))

	if err := initBucket(client, cfg.MinioBucket, logger); err != nil {
		logger.Error("Failed to create/access bucket", zap.String("bucket", cfg.MinioBucket), zap.Error(err))
		return nil, err
	}

	return &Service{
		client:    client,
		logger:    logger,
		bucket:    cfg.MinioBucket,
		publicUrl: cfg.MinioPublicUrl,
	}, nil
}

func initBucket(client *minio.Client, bucketName string, logger *common.Logger) error {
	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking if bucket exists: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("error creating bucket: %w", err)
		}
		logger.Info("Bucket created", zap.String("bucket", bucketName))
	} else {
		logger.Debug("Bucket already exists", zap.String("bucket", bucketName))
	}

	return nil
}

// StorePicture кладёт картинку в бакет под случайным именем с исходным
// расширением и возвращает публичный URL для записи сотрудника
func (s *Service) StorePicture(ctx context.Context, fileName, contentType string, size int64, file io.Reader) (string, error) {
	objectName := uuid.New().String() + filepath.Ext(fileName)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("Failed to upload profile picture",
			zap.String("object", objectName),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload profile picture: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s/%s", s.publicUrl, s.bucket, objectName)
	s.logger.Info("Profile picture uploaded",
		zap.String("object", objectName),
		zap.String("url", publicURL))

	return publicURL, nil
}
