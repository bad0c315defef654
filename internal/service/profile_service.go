package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"promolink/internal/domain"
	"promolink/internal/logging"
	"promolink/internal/models"
	"promolink/internal/repository"
	"promolink/pkg/cloudinary"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	db        *gorm.DB
	promoters *repository.PromoterRepository
	business  *repository.BusinessRepository
	perks     *PerkService
	uploads   *cloudinary.Uploader // nil when uploads are not configured
}

func NewProfileService(db *gorm.DB, promoters *repository.PromoterRepository,
	business *repository.BusinessRepository, perks *PerkService, uploads *cloudinary.Uploader) *ProfileService {
	return &ProfileService{db: db, promoters: promoters, business: business, perks: perks, uploads: uploads}
}

// PromoterUpdate carries only the fields the caller wants to change;
// nil pointers leave the stored value untouched.
type PromoterUpdate struct {
	Industry      *string `json:"industry"`
	InstagramLink *string `json:"instagram_link"`
	TikTokLink    *string `json:"tiktok_link"`
	LinkedInLink  *string `json:"linkedin_link"`
}

func (s *ProfileService) GetPromoter(userID uint) (*models.PromoterProfile, error) {
	p, err := s.promoters.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: promoter profile", domain.ErrNotFound)
	}
	return p, nil
}

func (s *ProfileService) UpdatePromoter(userID uint, in PromoterUpdate) (*models.PromoterProfile, error) {
	p, err := s.promoters.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: promoter profile", domain.ErrNotFound)
	}
	if in.Industry != nil {
		if *in.Industry == "" {
			return nil, fmt.Errorf("%w: industry cannot be empty", domain.ErrValidation)
		}
		p.Industry = *in.Industry
	}
	if in.InstagramLink != nil {
		p.InstagramLink = emptyToNil(in.InstagramLink)
	}
	if in.TikTokLink != nil {
		p.TikTokLink = emptyToNil(in.TikTokLink)
	}
	if in.LinkedInLink != nil {
		p.LinkedInLink = emptyToNil(in.LinkedInLink)
	}
	if !p.HasSocialLink() {
		return nil, fmt.Errorf("%w: at least one social link must remain", domain.ErrValidation)
	}
	if err := s.promoters.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// BusinessUpdate mirrors PromoterUpdate for the business side.
type BusinessUpdate struct {
	BusinessName *string `json:"business_name"`
	ActivityType *string `json:"activity_type"`
	Location     *string `json:"location"`
	MinViews     *int    `json:"min_views"`
}

func (s *ProfileService) GetBusiness(userID uint) (*models.BusinessProfile, error) {
	b, err := s.business.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: business profile", domain.ErrNotFound)
	}
	return b, nil
}

func (s *ProfileService) UpdateBusiness(userID uint, in BusinessUpdate) (*models.BusinessProfile, error) {
	b, err := s.business.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: business profile", domain.ErrNotFound)
	}
	if in.BusinessName != nil {
		if *in.BusinessName == "" {
			return nil, fmt.Errorf("%w: business_name cannot be empty", domain.ErrValidation)
		}
		b.BusinessName = *in.BusinessName
	}
	if in.ActivityType != nil {
		if *in.ActivityType == "" {
			return nil, fmt.Errorf("%w: activity_type cannot be empty", domain.ErrValidation)
		}
		b.ActivityType = *in.ActivityType
	}
	if in.Location != nil {
		if *in.Location == "" {
			return nil, fmt.Errorf("%w: location cannot be empty", domain.ErrValidation)
		}
		b.Location = *in.Location
	}
	if in.MinViews != nil {
		b.MinViews = in.MinViews
	}
	if err := s.business.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// InsightSlot names one of the screenshot slots on a promoter profile.
type InsightSlot string

const (
	SlotInsight     InsightSlot = "insight"
	SlotViewsPhoto1 InsightSlot = "views_photo_1"
	SlotViewsPhoto2 InsightSlot = "views_photo_2"
	SlotViewsPhoto3 InsightSlot = "views_photo_3"
)

func ValidInsightSlot(s string) bool {
	switch InsightSlot(s) {
	case SlotInsight, SlotViewsPhoto1, SlotViewsPhoto2, SlotViewsPhoto3:
		return true
	}
	return false
}

// UploadInsight stores an analytics screenshot into the named slot and
// stamps the refresh time.
func (s *ProfileService) UploadInsight(ctx context.Context, userID uint, slot InsightSlot, file multipart.File) (*models.PromoterProfile, error) {
	if s.uploads == nil {
		return nil, fmt.Errorf("%w: image uploads are not configured", domain.ErrValidation)
	}
	p, err := s.promoters.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: promoter profile", domain.ErrNotFound)
	}

	publicID := fmt.Sprintf("promoter_%d_%s_%s", p.ID, slot, uuid.NewString()[:8])
	url, err := s.uploads.UploadImage(ctx, file, publicID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch slot {
	case SlotInsight:
		p.InsightURL = url
	case SlotViewsPhoto1:
		p.ViewsPhoto1URL = url
	case SlotViewsPhoto2:
		p.ViewsPhoto2URL = url
	case SlotViewsPhoto3:
		p.ViewsPhoto3URL = url
	default:
		return nil, fmt.Errorf("%w: unknown slot %q", domain.ErrValidation, slot)
	}
	p.InsightUpdatedAt = &now

	if err := s.promoters.Update(p); err != nil {
		return nil, err
	}
	logging.Logger.WithField("promoter_id", p.ID).WithField("slot", slot).Info("insight uploaded")
	return p, nil
}

// PromoterCard is a browse result; contact details stay hidden.
type PromoterCard struct {
	ID               uint       `json:"id"`
	Industry         string     `json:"industry"`
	Email            string     `json:"email"`
	InstagramLink    *string    `json:"instagram_link"`
	TikTokLink       *string    `json:"tiktok_link"`
	LinkedInLink     *string    `json:"linkedin_link"`
	InsightURL       string     `json:"insight_url"`
	InsightUpdatedAt *time.Time `json:"insight_updated_at"`
}

// BrowsePromoters lists promoter profiles for businesses with contact
// fields redacted.
func (s *ProfileService) BrowsePromoters(f repository.PromoterFilter) ([]PromoterCard, int64, error) {
	profiles, total, err := s.promoters.Browse(f)
	if err != nil {
		return nil, 0, err
	}
	cards := make([]PromoterCard, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		cards = append(cards, PromoterCard{
			ID:               p.ID,
			Industry:         p.Industry,
			Email:            domain.RedactedEmail,
			InstagramLink:    redactLink(p.InstagramLink),
			TikTokLink:       redactLink(p.TikTokLink),
			LinkedInLink:     redactLink(p.LinkedInLink),
			InsightURL:       p.InsightURL,
			InsightUpdatedAt: p.InsightUpdatedAt,
		})
	}
	return cards, total, nil
}

// BusinessCard is a browse result with the perk-driven ordering weight.
type BusinessCard struct {
	ID            uint   `json:"id"`
	BusinessName  string `json:"business_name"`
	ActivityType  string `json:"activity_type"`
	Location      string `json:"location"`
	MinViews      *int   `json:"min_views"`
	PriorityScore int    `json:"priority_score"`
}

// BrowseBusinesses lists business profiles for promoters. Businesses
// with live perks sort first within the page, by priority weight.
func (s *ProfileService) BrowseBusinesses(f repository.BusinessFilter) ([]BusinessCard, int64, error) {
	profiles, total, err := s.business.Browse(f)
	if err != nil {
		return nil, 0, err
	}
	cards := make([]BusinessCard, 0, len(profiles))
	for i := range profiles {
		b := &profiles[i]
		score := 0
		if s.perks != nil {
			if ps, err := s.perks.PriorityScore(b.ID); err == nil {
				score = ps
			}
		}
		cards = append(cards, BusinessCard{
			ID:            b.ID,
			BusinessName:  b.BusinessName,
			ActivityType:  b.ActivityType,
			Location:      b.Location,
			MinViews:      b.MinViews,
			PriorityScore: score,
		})
	}
	// Stable sort keeps recency order between equal weights.
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].PriorityScore > cards[j].PriorityScore
	})
	return cards, total, nil
}
