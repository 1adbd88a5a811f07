// internal/services/upload_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/config"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type UploadService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage Storage
}

func NewUploadService(db *gorm.DB, cfg *config.Config, storage Storage) *UploadService {
	return &UploadService{db: db, cfg: cfg, storage: storage}
}

// SaveFile validates, stores, and records a multipart upload. A file that
// fails validation never reaches the storage backend; if the metadata
// write fails after the file is stored, the stored file is removed.
func (s *UploadService) SaveFile(userID uuid.UUID, fieldName, purpose string, header *multipart.FileHeader) (*models.FileUpload, error) {
	if header == nil {
		return nil, apperrors.NewValidationError("file", "no file was provided")
	}

	mimeType := header.Header.Get("Content-Type")
	if !s.mimeAllowed(mimeType) {
		return nil, apperrors.NewValidationError("file", fmt.Sprintf("file type %q is not allowed", mimeType))
	}

	maxBytes := int64(s.cfg.Upload.MaxSizeMB) << 20
	if mimeType == "text/csv" {
		maxBytes = int64(s.cfg.Upload.MaxCSVSizeMB) << 20
	}
	if header.Size > maxBytes {
		return nil, apperrors.NewValidationError("file", fmt.Sprintf("file exceeds the %dMB limit", maxBytes>>20))
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	fileName := GenerateFileName(fieldName, header.Filename)
	stored, err := s.storage.Save(fileName, mimeType, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	upload := &models.FileUpload{
		UserID:       userID,
		FileName:     stored.FileName,
		OriginalName: header.Filename,
		StoragePath:  stored.StoragePath,
		URL:          stored.URL,
		MimeType:     mimeType,
		SizeBytes:    header.Size,
		Purpose:      purpose,
	}

	if err := s.db.Create(upload).Error; err != nil {
		if rmErr := s.storage.Delete(stored.StoragePath); rmErr != nil {
			logrus.WithError(rmErr).WithField("path", stored.StoragePath).
				Warn("Failed to clean up stored file after metadata failure")
		}
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return upload, nil
}

func (s *UploadService) GetUploads(userID uuid.UUID, params utils.PaginationParams) ([]models.FileUpload, int64, error) {
	query := s.db.Model(&models.FileUpload{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count uploads: %w", err)
	}

	allowedSortFields := []string{"created_at", "size_bytes"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var uploads []models.FileUpload
	if err := query.Find(&uploads).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch uploads: %w", err)
	}

	return uploads, total, nil
}

// DeleteFile removes the metadata row, then the stored file best-effort.
// A file that cannot be removed is logged, not surfaced.
func (s *UploadService) DeleteFile(uploadID, userID uuid.UUID) error {
	var upload models.FileUpload
	if err := s.db.Where("id = ? AND user_id = ?", uploadID, userID).First(&upload).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&upload).Error; err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	if err := s.storage.Delete(upload.StoragePath); err != nil {
		logrus.WithError(err).WithField("path", upload.StoragePath).
			Warn("Failed to remove stored file")
	}

	return nil
}

func (s *UploadService) mimeAllowed(mimeType string) bool {
	for _, allowed := range s.cfg.Upload.AllowedMimeTypes {
		if allowed == mimeType {
			return true
		}
	}
	return false
}
