package service

import (
	"errors"
	"fmt"
	"strings"

	"promolink/config"
	"promolink/internal/auth"
	"promolink/internal/domain"
	"promolink/internal/logging"
	"promolink/internal/models"
	"promolink/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.JWTConfig
}

func NewAuthService(db *gorm.DB, cfg *config.JWTConfig) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`

	// Promoter fields
	Industry      string  `json:"industry"`
	InstagramLink *string `json:"instagram_link"`
	TikTokLink    *string `json:"tiktok_link"`
	LinkedInLink  *string `json:"linkedin_link"`

	// Business fields
	BusinessName string `json:"business_name"`
	ActivityType string `json:"activity_type"`
	Location     string `json:"location"`
	MinViews     *int   `json:"min_views"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthResult struct {
	User   *models.User `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// Register creates the account and its role profile in one transaction.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	role := strings.ToUpper(in.Role)
	if role != domain.RolePromoter && role != domain.RoleBusiness {
		return nil, fmt.Errorf("%w: role must be PROMOTER or BUSINESS", domain.ErrValidation)
	}

	if role == domain.RolePromoter {
		if in.Industry == "" {
			return nil, fmt.Errorf("%w: industry is required for promoters", domain.ErrValidation)
		}
		links := models.PromoterProfile{
			InstagramLink: in.InstagramLink,
			TikTokLink:    in.TikTokLink,
			LinkedInLink:  in.LinkedInLink,
		}
		if !links.HasSocialLink() {
			return nil, fmt.Errorf("%w: at least one social link is required", domain.ErrValidation)
		}
	} else {
		if in.BusinessName == "" || in.ActivityType == "" || in.Location == "" {
			return nil, fmt.Errorf("%w: business_name, activity_type and location are required", domain.ErrValidation)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role == domain.RolePromoter {
			profile := models.PromoterProfile{
				UserID:        user.ID,
				Industry:      in.Industry,
				InstagramLink: in.InstagramLink,
				TikTokLink:    in.TikTokLink,
				LinkedInLink:  in.LinkedInLink,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			user.PromoterProfile = &profile
		} else {
			profile := models.BusinessProfile{
				UserID:       user.ID,
				BusinessName: in.BusinessName,
				ActivityType: in.ActivityType,
				Location:     in.Location,
				MinViews:     in.MinViews,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			user.BusinessProfile = &profile
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithField("user_id", user.ID).WithField("role", role).Info("user registered")
	return s.issueTokens(&user)
}

// Login verifies credentials and returns a fresh token pair.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	var user models.User
	err := s.db.Preload("PromoterProfile").Preload("BusinessProfile").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, fmt.Errorf("%w: account uses Google sign-in", domain.ErrUnauthenticated)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}
	return s.issueTokens(&user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (*AuthResult, error) {
	userID, err := auth.ParseRefreshToken(s.cfg, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthenticated)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("%w: account no longer exists", domain.ErrUnauthenticated)
	}
	return s.issueTokens(&user)
}

// ChangePassword verifies the old password before setting the new one.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrUnauthenticated)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&user).Update("password_hash", string(hash)).Error
}

// Me returns the account with its role profile loaded.
func (s *AuthService) Me(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("PromoterProfile").Preload("BusinessProfile").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAccount verifies the password and soft-deletes the account with
// its profiles and conversations. Google-only accounts skip the
// password check.
func (s *AuthService) DeleteAccount(userID uint, password string) error {
	users := repository.NewUserRepository(s.db)
	user, err := users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("%w: user", domain.ErrNotFound)
	}
	if user.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			return fmt.Errorf("%w: password is incorrect", domain.ErrUnauthenticated)
		}
	}
	if err := users.Delete(user); err != nil {
		return err
	}
	logging.Logger.WithField("user_id", userID).Info("account deleted")
	return nil
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResult, error) {
	access, err := auth.GenerateAccessToken(s.cfg, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(s.cfg, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:   user,
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}
