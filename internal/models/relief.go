// internal/models/relief.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ReliefScheme is read-mostly reference data, seeded externally.
type ReliefScheme struct {
	BaseModel
	Name                string     `json:"name" gorm:"size:255;not null"`
	Agency              string     `json:"agency" gorm:"size:255"`
	Description         string     `json:"description" gorm:"type:text"`
	EligibilityCriteria StringList `json:"eligibility_criteria" gorm:"type:text"`
	BenefitSummary      string     `json:"benefit_summary" gorm:"type:text"`
	Deadline            *time.Time `json:"deadline"`
	ApplicationURL      string     `json:"application_url" gorm:"size:500"`
	IsActive            bool       `json:"-" gorm:"default:true;index"`
}

// UserReliefApplication is created at most once per (user, scheme); the
// unique pair index backs the duplicate-application conflict.
type UserReliefApplication struct {
	BaseModel
	UserID   uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_relief_applications_pair"`
	SchemeID uuid.UUID         `json:"scheme_id" gorm:"type:uuid;not null;uniqueIndex:idx_relief_applications_pair"`
	Status   ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'submitted'"`
	Notes    string            `json:"notes" gorm:"type:text"`

	// Relationships
	Scheme *ReliefScheme `json:"scheme,omitempty" gorm:"foreignKey:SchemeID"`
}
