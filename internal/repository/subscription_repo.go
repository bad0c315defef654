package repository

import (
	"errors"
	"time"

	"promolink/internal/domain"
	"promolink/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// EnsureSubscription returns the business's subscription, creating a
// free-tier one if none exists yet.
func (r *SubscriptionRepository) EnsureSubscription(businessID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("business_id = ?", businessID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now()
		sub = models.Subscription{
			BusinessID:    businessID,
			Status:        domain.SubscriptionActive,
			StartDate:     now,
			LastResetDate: now,
			Currency:      "EUR",
		}
		sub.ApplyPlan(domain.PlanBasic)
		if err := r.db.Create(&sub).Error; err != nil {
			return nil, err
		}
		return &sub, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) Update(sub *models.Subscription) error {
	return r.db.Save(sub).Error
}

// ExpirePastDue marks paid subscriptions whose end date has passed as
// expired. Returns the number of rows updated.
func (r *SubscriptionRepository) ExpirePastDue(now time.Time) (int64, error) {
	res := r.db.Model(&models.Subscription{}).
		Where("status = ? AND plan_type <> ? AND end_date IS NOT NULL AND end_date <= ?",
			domain.SubscriptionActive, domain.PlanBasic, now).
		Update("status", domain.SubscriptionExpired)
	return res.RowsAffected, res.Error
}
