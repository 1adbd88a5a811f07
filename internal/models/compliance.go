// internal/models/compliance.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultComplianceRequirements is the fixed requirement set provisioned
// for every checklist. CompletionPercentage is always derived from it.
var DefaultComplianceRequirements = []string{
	"Import Export Code (IEC)",
	"GST Registration",
	"RCMC Certificate",
	"HACCP Certification",
	"Health Certificate",
	"Certificate of Origin",
	"Phytosanitary Certificate",
	"Marine Insurance Policy",
}

// ComplianceChecklist is one per user.
type ComplianceChecklist struct {
	BaseModel
	UserID               uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	CompletionPercentage float64   `json:"completion_percentage" gorm:"default:0"`

	// Relationships
	Requirements []ComplianceRequirement `json:"requirements,omitempty" gorm:"foreignKey:ChecklistID"`
}

type ComplianceRequirement struct {
	BaseModel
	ChecklistID uuid.UUID  `json:"checklist_id" gorm:"type:uuid;not null;uniqueIndex:idx_requirements_pair"`
	Name        string     `json:"name" gorm:"size:100;not null;uniqueIndex:idx_requirements_pair"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	UploadedAt  *time.Time `json:"uploaded_at"`
	FileURL     string     `json:"file_url" gorm:"size:500"`
}
