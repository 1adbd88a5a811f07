// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/exportbridge/exportbridge-backend/internal/config"
)

// StoredFile describes a persisted upload independent of backend.
type StoredFile struct {
	FileName    string
	StoragePath string
	URL         string
}

// Storage persists upload payloads. The local-disk backend is the default;
// the S3 backend activates when AWS credentials are configured.
type Storage interface {
	Save(fileName, mimeType string, r io.Reader) (*StoredFile, error)
	Delete(storagePath string) error
}

// GenerateFileName builds the server-assigned name:
// <fieldname>-<timestamp>-<random>.<ext>.
func GenerateFileName(fieldName, originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%s-%d-%09d%s", fieldName, time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
}

type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (l *LocalStorage) Save(fileName, mimeType string, r io.Reader) (*StoredFile, error) {
	path := filepath.Join(l.dir, fileName)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredFile{
		FileName:    fileName,
		StoragePath: path,
		URL:         "/uploads/" + fileName,
	}, nil
}

func (l *LocalStorage) Delete(storagePath string) error {
	if err := os.Remove(storagePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

type S3Storage struct {
	client *s3.S3
	bucket string
	region string
}

func NewS3Storage(cfg config.AWSConfig) (*S3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Storage{
		client: s3.New(sess),
		bucket: cfg.S3Bucket,
		region: cfg.Region,
	}, nil
}

func (s *S3Storage) Save(fileName, mimeType string, r io.Reader) (*StoredFile, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	key := "uploads/" + fileName
	_, err = s.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &StoredFile{
		FileName:    fileName,
		StoragePath: key,
		URL:         fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
	}, nil
}

func (s *S3Storage) Delete(storagePath string) error {
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storagePath),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// NewStorage picks the backend from configuration.
func NewStorage(cfg *config.Config) (Storage, error) {
	if cfg.AWS.AccessKeyID != "" && cfg.AWS.SecretAccessKey != "" {
		store, err := NewS3Storage(cfg.AWS)
		if err != nil {
			return nil, err
		}
		logrus.WithField("bucket", cfg.AWS.S3Bucket).Info("Using S3 upload storage")
		return store, nil
	}
	logrus.WithField("dir", cfg.Upload.Dir).Info("Using local upload storage")
	return NewLocalStorage(cfg.Upload.Dir)
}
