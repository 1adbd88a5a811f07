// internal/models/impact.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// ImpactLog is an append-only event stream per user; rows are never
// updated or deleted.
type ImpactLog struct {
	BaseModel
	UserID        uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	EventType     ImpactEventType `json:"event_type" gorm:"type:varchar(30);not null;index"`
	RevenueAmount float64         `json:"revenue_amount" gorm:"default:0"`
	TargetCountry string          `json:"target_country" gorm:"size:100"`
	EventDate     time.Time       `json:"event_date" gorm:"not null;index"`
	Notes         string          `json:"notes" gorm:"type:text"`
}
