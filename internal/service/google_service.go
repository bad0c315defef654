package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"promolink/config"
	"promolink/internal/domain"
	"promolink/internal/logging"
	"promolink/internal/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleAuthService struct {
	db   *gorm.DB
	auth *AuthService
	conf *oauth2.Config
}

func NewGoogleAuthService(db *gorm.DB, authSvc *AuthService, cfg *config.OAuthConfig) *GoogleAuthService {
	return &GoogleAuthService{
		db:   db,
		auth: authSvc,
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the consent-screen URL for the given CSRF state.
func (s *GoogleAuthService) AuthURL(state string) string {
	return s.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

type GoogleLoginInput struct {
	Code string `json:"code" binding:"required"`

	// Role and profile fields are required only on first sign-in, when
	// no account exists for the Google identity yet.
	Role          string  `json:"role"`
	Industry      string  `json:"industry"`
	InstagramLink *string `json:"instagram_link"`
	TikTokLink    *string `json:"tiktok_link"`
	LinkedInLink  *string `json:"linkedin_link"`
	BusinessName  string  `json:"business_name"`
	ActivityType  string  `json:"activity_type"`
	Location      string  `json:"location"`
}

// LoginWithGoogle exchanges the authorization code, resolves or creates
// the account, and returns a token pair.
func (s *GoogleAuthService) LoginWithGoogle(ctx context.Context, in GoogleLoginInput) (*AuthResult, error) {
	token, err := s.conf.Exchange(ctx, in.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: google code exchange failed", domain.ErrUnauthenticated)
	}

	client := s.conf.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching google userinfo: %w", err)
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding google userinfo: %w", err)
	}
	if info.Email == "" || !info.VerifiedEmail {
		return nil, fmt.Errorf("%w: google account email not verified", domain.ErrUnauthenticated)
	}

	email := strings.ToLower(info.Email)

	var user models.User
	err = s.db.Preload("PromoterProfile").Preload("BusinessProfile").
		Where("google_id = ?", info.ID).First(&user).Error
	if err == nil {
		return s.auth.issueTokens(&user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Link an existing email account to the Google identity.
	err = s.db.Preload("PromoterProfile").Preload("BusinessProfile").
		Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.GoogleID == nil {
			if err := s.db.Model(&user).Update("google_id", info.ID).Error; err != nil {
				return nil, err
			}
			user.GoogleID = &info.ID
		}
		return s.auth.issueTokens(&user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// First sign-in: the caller must supply the role profile.
	if in.Role == "" {
		return nil, fmt.Errorf("%w: role is required for new google accounts", domain.ErrValidation)
	}
	result, err := s.auth.Register(RegisterInput{
		Email: email,
		// Random-looking filler; Google accounts authenticate via OAuth.
		Password:      fmt.Sprintf("google-oauth:%s", info.ID),
		Role:          in.Role,
		Industry:      in.Industry,
		InstagramLink: in.InstagramLink,
		TikTokLink:    in.TikTokLink,
		LinkedInLink:  in.LinkedInLink,
		BusinessName:  in.BusinessName,
		ActivityType:  in.ActivityType,
		Location:      in.Location,
	})
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(result.User).Updates(map[string]interface{}{
		"google_id":     info.ID,
		"password_hash": "",
	}).Error; err != nil {
		return nil, err
	}
	result.User.GoogleID = &info.ID

	logging.Logger.WithField("user_id", result.User.ID).Info("google account created")
	return result, nil
}
