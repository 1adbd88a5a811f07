// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email            string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string     `json:"-" gorm:"size:255;not null"`
	CompanyName      string     `json:"company_name" gorm:"size:255;not null"`
	ContactPerson    string     `json:"contact_person" gorm:"size:100"`
	Role             UserRole   `json:"role" gorm:"type:varchar(20);not null"`
	Sector           Sector     `json:"sector" gorm:"type:varchar(20);default:'Not specified'"`
	HSCode           string     `json:"hs_code" gorm:"size:20"`
	TargetCountries  StringList `json:"target_countries" gorm:"type:text"`
	IsAdmin          bool       `json:"is_admin" gorm:"default:false"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
	ProfileCompleted bool       `json:"profile_completed" gorm:"default:false"`
	LastLoginAt      *time.Time `json:"last_login_at"`

	// Impact metrics, adjusted only through the impact event pipeline.
	TotalRevenue   float64 `json:"total_revenue" gorm:"default:0"`
	OrdersSecured  int     `json:"orders_secured" gorm:"default:0"`
	MarketsEntered int     `json:"markets_entered" gorm:"default:0"`
	JobsRetained   int     `json:"jobs_retained" gorm:"default:0"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// PublicProfile is the author snapshot attached to forum list views.
type PublicProfile struct {
	ID            string `json:"id"`
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Sector        Sector `json:"sector"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:            u.ID.String(),
		CompanyName:   u.CompanyName,
		ContactPerson: u.ContactPerson,
		Sector:        u.Sector,
	}
}
