// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/config"
	"github.com/exportbridge/exportbridge-backend/internal/models"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type SignupRequest struct {
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=8,max=72"`
	CompanyName     string   `json:"company_name" validate:"required,min=2,max=255"`
	ContactPerson   string   `json:"contact_person" validate:"omitempty,max=100"`
	Role            string   `json:"role" validate:"required,oneof=Buyer Seller"`
	Sector          string   `json:"sector" validate:"omitempty,oneof=Seafood Textile Both 'Not specified'"`
	HSCode          string   `json:"hs_code" validate:"omitempty,max=20"`
	TargetCountries []string `json:"target_countries" validate:"omitempty,max=25,dive,country_name"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	AdminID  string `json:"admin_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	CompanyName     string   `json:"company_name" validate:"omitempty,min=2,max=255"`
	ContactPerson   string   `json:"contact_person" validate:"omitempty,max=100"`
	Sector          string   `json:"sector" validate:"omitempty,oneof=Seafood Textile Both 'Not specified'"`
	HSCode          string   `json:"hs_code" validate:"omitempty,max=20"`
	TargetCountries []string `json:"target_countries" validate:"omitempty,max=25,dive,country_name"`
}

type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"` // in seconds
}

type AdminAuthResponse struct {
	AdminID   string `json:"admin_id"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AuthService) Signup(req *SignupRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	// Duplicate email is a conflict, checked before any write.
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("a user with this email already exists: %w", apperrors.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	sector := models.Sector(req.Sector)
	if sector == "" {
		sector = models.SectorNotSpecified
	}

	user := &models.User{
		Email:           req.Email,
		CompanyName:     req.CompanyName,
		ContactPerson:   req.ContactPerson,
		Role:            models.UserRole(req.Role),
		Sector:          sector,
		HSCode:          req.HSCode,
		TargetCountries: models.StringList(req.TargetCountries),
		IsActive:        true,
	}
	user.ProfileCompleted = user.Sector != models.SectorNotSpecified && user.HSCode != ""

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.tokenResponse(user)
}

func (s *AuthService) Signin(req *SigninRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is deactivated: %w", apperrors.ErrForbidden)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthenticated)
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.db.Model(&user).Update("last_login_at", now)

	return s.tokenResponse(&user)
}

// AdminLogin checks the environment-configured credential pair and issues
// a token of the admin kind. No user record is involved.
func (s *AuthService) AdminLogin(req *AdminLoginRequest) (*AdminAuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	if s.cfg.Admin.Password == "" {
		return nil, fmt.Errorf("admin login is not configured: %w", apperrors.ErrForbidden)
	}

	if req.AdminID != s.cfg.Admin.ID || req.Password != s.cfg.Admin.Password {
		return nil, fmt.Errorf("invalid admin credentials: %w", apperrors.ErrUnauthenticated)
	}

	token, err := utils.GenerateAdminJWT(req.AdminID, s.cfg.JWT.AdminTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin token: %w", err)
	}

	return &AdminAuthResponse{
		AdminID:   req.AdminID,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.cfg.JWT.AdminTokenTTL * 3600,
	}, nil
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.CompanyName != "" {
		updates["company_name"] = req.CompanyName
	}
	if req.ContactPerson != "" {
		updates["contact_person"] = req.ContactPerson
	}
	if req.Sector != "" {
		updates["sector"] = req.Sector
	}
	if req.HSCode != "" {
		updates["hs_code"] = req.HSCode
	}
	if req.TargetCountries != nil {
		updates["target_countries"] = models.StringList(req.TargetCountries)
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if !user.ProfileCompleted && user.Sector != models.SectorNotSpecified && user.HSCode != "" {
		s.db.Model(user).Update("profile_completed", true)
		user.ProfileCompleted = true
	}

	return user, nil
}

// Deactivate soft-deletes the account; the row is retained.
func (s *AuthService) Deactivate(userID uuid.UUID) error {
	result := s.db.Model(&models.User{}).
		Where("id = ? AND is_active = ?", userID, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *AuthService) tokenResponse(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateUserJWT(user.ID, s.cfg.JWT.UserTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		User:      user,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: s.cfg.JWT.UserTokenTTL * 3600,
	}, nil
}
