// internal/models/buyer.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Buyer is a read-mostly directory entry, seeded externally rather than
// created through the API.
type Buyer struct {
	BaseModel
	Name                   string     `json:"name" gorm:"size:255;not null;index"`
	Country                string     `json:"country" gorm:"size:100;not null;index"`
	ProductCategories      StringList `json:"product_categories" gorm:"type:text"`
	CertificationsRequired StringList `json:"certifications_required" gorm:"type:text"`
	ImportVolume           string     `json:"import_volume" gorm:"size:100"`
	ContactEmail           string     `json:"contact_email" gorm:"size:255"`
	ContactPhone           string     `json:"contact_phone" gorm:"size:50"`
	IsActive               bool       `json:"-" gorm:"default:true;index"`
}

// UserBuyerInteraction tracks one user's outreach to one buyer. At most one
// row per (user, buyer) pair; writes go through an upsert.
type UserBuyerInteraction struct {
	BaseModel
	UserID        uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_interactions_pair"`
	BuyerID       uuid.UUID         `json:"buyer_id" gorm:"type:uuid;not null;uniqueIndex:idx_interactions_pair"`
	Status        InteractionStatus `json:"status" gorm:"type:varchar(20);default:'Not Contacted'"`
	Notes         string            `json:"notes" gorm:"type:text"`
	DealValue     float64           `json:"deal_value" gorm:"default:0"`
	LastContactAt *time.Time        `json:"last_contact_at"`

	// Relationships
	Buyer *Buyer `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
}
