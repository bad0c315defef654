package service

import (
	"fmt"
	"time"

	"promolink/internal/domain"
	"promolink/internal/logging"
	"promolink/internal/models"
	"promolink/internal/repository"

	"gorm.io/gorm"
)

type SubscriptionService struct {
	db       *gorm.DB
	subs     *repository.SubscriptionRepository
	business *repository.BusinessRepository
}

func NewSubscriptionService(db *gorm.DB, subs *repository.SubscriptionRepository,
	business *repository.BusinessRepository) *SubscriptionService {
	return &SubscriptionService{db: db, subs: subs, business: business}
}

func (s *SubscriptionService) businessID(userID uint) (uint, error) {
	b, err := s.business.GetByUserID(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: business profile", domain.ErrNotFound)
	}
	return b.ID, nil
}

// Current returns the business's subscription, downgrading paid plans
// that ran past their end date back to the free tier first.
func (s *SubscriptionService) Current(userID uint) (*models.Subscription, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}
	sub, err := s.subs.EnsureSubscription(businessID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if sub.IsExpired(now) {
		sub.ApplyPlan(domain.PlanBasic)
		sub.Status = domain.SubscriptionActive
		sub.NextBillingDate = nil
		sub.EndDate = nil
		if err := s.subs.Update(sub); err != nil {
			return nil, err
		}
		logging.Logger.WithField("business_id", businessID).Info("expired subscription downgraded to basic")
	}
	return sub, nil
}

// PlanInfo is one row of the public pricing table.
type PlanInfo struct {
	Plan         string  `json:"plan"`
	Name         string  `json:"name"`
	MonthlyPrice float64 `json:"monthly_price"`
	Currency     string  `json:"currency"`
	RequestLimit int     `json:"request_limit"` // -1 means unlimited
}

// Plans returns the pricing table in ascending price order.
func (s *SubscriptionService) Plans() []PlanInfo {
	out := make([]PlanInfo, 0, len(models.PlanConfigs))
	for _, plan := range []string{domain.PlanBasic, domain.PlanPro, domain.PlanPremium} {
		cfg := models.PlanConfigs[plan]
		out = append(out, PlanInfo{
			Plan:         plan,
			Name:         cfg.Name,
			MonthlyPrice: cfg.MonthlyPrice,
			Currency:     "EUR",
			RequestLimit: cfg.RequestLimit,
		})
	}
	return out
}

// Upgrade switches the business to another plan. Same-plan upgrades are
// a conflict; usage carries over within the current reset window.
func (s *SubscriptionService) Upgrade(userID uint, plan string) (*models.Subscription, error) {
	if !domain.ValidPlan(plan) {
		return nil, fmt.Errorf("%w: unknown plan %q", domain.ErrValidation, plan)
	}
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}

	var sub *models.Subscription
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewSubscriptionRepository(tx)
		sub, err = repo.EnsureSubscription(businessID)
		if err != nil {
			return err
		}
		if !sub.Upgrade(plan, time.Now()) {
			return fmt.Errorf("%w: already on the %s plan", domain.ErrConflict, plan)
		}
		return repo.Update(sub)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithField("business_id", businessID).
		WithField("plan", plan).Info("subscription plan changed")
	return sub, nil
}

// Cancel marks the subscription cancelled; a paid plan stays usable
// until its end date.
func (s *SubscriptionService) Cancel(userID uint) (*models.Subscription, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}
	sub, err := s.subs.EnsureSubscription(businessID)
	if err != nil {
		return nil, err
	}
	if sub.Status == domain.SubscriptionCancelled {
		return nil, fmt.Errorf("%w: subscription already cancelled", domain.ErrConflict)
	}
	if sub.PlanType == domain.PlanBasic {
		return nil, fmt.Errorf("%w: the free plan cannot be cancelled", domain.ErrInvalidState)
	}
	sub.Status = domain.SubscriptionCancelled
	if err := s.subs.Update(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Usage reports the current quota window.
type Usage struct {
	Plan          string     `json:"plan"`
	RequestLimit  int        `json:"request_limit"` // -1 means unlimited
	RequestsUsed  int        `json:"requests_used"`
	Remaining     int        `json:"remaining"` // -1 means unlimited
	LastResetDate time.Time  `json:"last_reset_date"`
	NextResetDate time.Time  `json:"next_reset_date"`
	EndDate       *time.Time `json:"end_date"`
}

func (s *SubscriptionService) Usage(userID uint) (*Usage, error) {
	sub, err := s.Current(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if sub.ShouldReset(now) {
		sub.ResetUsage(now)
		if err := s.subs.Update(sub); err != nil {
			return nil, err
		}
	}
	return &Usage{
		Plan:          sub.PlanType,
		RequestLimit:  sub.RequestLimit,
		RequestsUsed:  sub.RequestsUsed,
		Remaining:     sub.RemainingRequests(),
		LastResetDate: sub.LastResetDate,
		NextResetDate: sub.LastResetDate.Add(30 * 24 * time.Hour),
		EndDate:       sub.EndDate,
	}, nil
}

// LimitCheck is the answer to "may I contact one more promoter".
type LimitCheck struct {
	CanMakeRequest bool   `json:"can_make_request"`
	Plan           string `json:"plan"`
	RequestLimit   int    `json:"request_limit"`
	RequestsUsed   int    `json:"requests_used"`
	Remaining      int    `json:"remaining"`
}

// CheckLimits consumes one request from the quota after applying the
// lazy monthly reset. An exhausted quota returns ErrQuotaExceeded; any
// reset that fired is persisted either way.
func (s *SubscriptionService) CheckLimits(userID uint) (*LimitCheck, error) {
	sub, err := s.Current(userID)
	if err != nil {
		return nil, err
	}
	ok := sub.UseRequest(time.Now())
	if err := s.subs.Update(sub); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d of %d used", domain.ErrQuotaExceeded, sub.RequestsUsed, sub.RequestLimit)
	}
	return &LimitCheck{
		CanMakeRequest: true,
		Plan:           sub.PlanType,
		RequestLimit:   sub.RequestLimit,
		RequestsUsed:   sub.RequestsUsed,
		Remaining:      sub.RemainingRequests(),
	}, nil
}

// ExpireOverdue flips active paid subscriptions past their end date to
// expired; run on a schedule.
func (s *SubscriptionService) ExpireOverdue() (int64, error) {
	n, err := s.subs.ExpirePastDue(time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logging.Logger.WithField("count", n).Info("subscriptions expired")
	}
	return n, nil
}
