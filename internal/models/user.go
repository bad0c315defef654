package models

import (
	"time"

	"promolink/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // PROMOTER | BUSINESS
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"`      // nil for email signups
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	PromoterProfile *PromoterProfile `gorm:"foreignKey:UserID" json:"promoter_profile,omitempty"`
	BusinessProfile *BusinessProfile `gorm:"foreignKey:UserID" json:"business_profile,omitempty"`
}

func (u *User) IsPromoter() bool { return u.Role == domain.RolePromoter }
func (u *User) IsBusiness() bool { return u.Role == domain.RoleBusiness }

// PromoterProfile holds the content-creator side of an account. Social
// links are the contact fields hidden until a request is accepted.
type PromoterProfile struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Industry         string         `gorm:"size:30;not null" json:"industry"`
	InstagramLink    *string        `gorm:"size:255" json:"instagram_link"`
	TikTokLink       *string        `gorm:"size:255" json:"tiktok_link"`
	LinkedInLink     *string        `gorm:"size:255" json:"linkedin_link"`
	InsightURL       string         `gorm:"size:512" json:"insight_url"`
	ViewsPhoto1URL   string         `gorm:"size:512" json:"views_photo_1_url"`
	ViewsPhoto2URL   string         `gorm:"size:512" json:"views_photo_2_url"`
	ViewsPhoto3URL   string         `gorm:"size:512" json:"views_photo_3_url"`
	InsightUpdatedAt *time.Time     `json:"insight_updated_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (PromoterProfile) TableName() string {
	return "promoter_profiles"
}

// HasSocialLink reports whether at least one social link is set
// (required at registration).
func (p *PromoterProfile) HasSocialLink() bool {
	return p.InstagramLink != nil || p.TikTokLink != nil || p.LinkedInLink != nil
}

type BusinessProfile struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	BusinessName string         `gorm:"size:255;not null" json:"business_name"`
	ActivityType string         `gorm:"size:255;not null" json:"activity_type"`
	Location     string         `gorm:"size:255;not null" json:"location"`
	MinViews     *int           `json:"min_views"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (BusinessProfile) TableName() string {
	return "business_profiles"
}
