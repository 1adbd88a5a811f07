// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. IDs are generated application-side so the
// same models run against postgres and sqlite.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB stores an arbitrary object as a JSON column.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// StringList stores a []string as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

func (l StringList) Contains(s string) bool {
	for _, item := range l {
		if item == s {
			return true
		}
	}
	return false
}

// Enums
type UserRole string

const (
	UserRoleBuyer  UserRole = "Buyer"
	UserRoleSeller UserRole = "Seller"
)

type Sector string

const (
	SectorSeafood      Sector = "Seafood"
	SectorTextile      Sector = "Textile"
	SectorBoth         Sector = "Both"
	SectorNotSpecified Sector = "Not specified"
)

type PostCategory string

const (
	PostCategoryMarketAccess PostCategory = "Market Access"
	PostCategoryCompliance   PostCategory = "Compliance"
	PostCategoryLogistics    PostCategory = "Logistics"
	PostCategoryFinance      PostCategory = "Finance"
	PostCategoryGeneral      PostCategory = "General"
)

func (c PostCategory) Valid() bool {
	switch c {
	case PostCategoryMarketAccess, PostCategoryCompliance,
		PostCategoryLogistics, PostCategoryFinance, PostCategoryGeneral:
		return true
	}
	return false
}

type InteractionStatus string

const (
	InteractionStatusNotContacted InteractionStatus = "Not Contacted"
	InteractionStatusContacted    InteractionStatus = "Contacted"
	InteractionStatusReplied      InteractionStatus = "Replied"
	InteractionStatusNegotiating  InteractionStatus = "Negotiating"
	InteractionStatusDealClosed   InteractionStatus = "Deal Closed"
)

func (s InteractionStatus) Valid() bool {
	switch s {
	case InteractionStatusNotContacted, InteractionStatusContacted,
		InteractionStatusReplied, InteractionStatusNegotiating,
		InteractionStatusDealClosed:
		return true
	}
	return false
}

type ImpactEventType string

const (
	ImpactEventPitchSent         ImpactEventType = "pitch_sent"
	ImpactEventPOReceived        ImpactEventType = "po_received"
	ImpactEventShipmentCompleted ImpactEventType = "shipment_completed"
	ImpactEventMarketEntered     ImpactEventType = "market_entered"
)

func (t ImpactEventType) Valid() bool {
	switch t {
	case ImpactEventPitchSent, ImpactEventPOReceived,
		ImpactEventShipmentCompleted, ImpactEventMarketEntered:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)
