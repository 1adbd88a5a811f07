// internal/models/audit.go
package models

import (
	"github.com/google/uuid"
)

// AuditLog records mutating requests, primarily the admin trade-data
// import/clear trail. UserID is nil for admin-token requests.
type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	AdminID      string     `json:"admin_id,omitempty" gorm:"size:100;index"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	Details      JSONB      `json:"details" gorm:"type:text"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`
}
