// internal/models/upload.go
package models

import (
	"github.com/google/uuid"
)

// FileUpload is the metadata row paired with a stored file. Deleting the
// row also deletes the underlying file, best-effort.
type FileUpload struct {
	BaseModel
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	FileName     string    `json:"file_name" gorm:"size:255;not null"`
	OriginalName string    `json:"original_name" gorm:"size:255"`
	StoragePath  string    `json:"-" gorm:"size:500;not null"`
	URL          string    `json:"url" gorm:"size:500"`
	MimeType     string    `json:"mime_type" gorm:"size:100"`
	SizeBytes    int64     `json:"size_bytes"`
	Purpose      string    `json:"purpose" gorm:"size:50;index"`
}
