package models

import (
	"time"

	"promolink/internal/domain"

	"gorm.io/gorm"
)

// PlanConfig is the fixed pricing table. A limit of -1 means unlimited.
type PlanConfig struct {
	Name         string
	MonthlyPrice float64
	RequestLimit int
}

var PlanConfigs = map[string]PlanConfig{
	domain.PlanBasic:   {Name: "Basic", MonthlyPrice: 0, RequestLimit: 5},
	domain.PlanPro:     {Name: "Pro", MonthlyPrice: 29, RequestLimit: 50},
	domain.PlanPremium: {Name: "Premium", MonthlyPrice: 99, RequestLimit: -1},
}

// Subscription tracks a business's plan tier and monthly request quota.
// The usage counter resets lazily once 30 days have elapsed since the
// last reset, checked on every quota check.
type Subscription struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	BusinessID      uint           `gorm:"uniqueIndex;not null" json:"business_id"`
	PlanType        string         `gorm:"size:20;not null;default:'basic'" json:"plan_type"`
	Status          string         `gorm:"size:20;not null;default:'active'" json:"status"`
	StartDate       time.Time      `gorm:"not null" json:"start_date"`
	EndDate         *time.Time     `json:"end_date"`
	NextBillingDate *time.Time     `json:"next_billing_date"`
	MonthlyPrice    float64        `gorm:"not null;default:0" json:"monthly_price"`
	Currency        string         `gorm:"size:3;not null;default:'EUR'" json:"currency"`
	RequestLimit    int            `gorm:"not null;default:5" json:"monthly_requests_limit"`
	RequestsUsed    int            `gorm:"not null;default:0" json:"monthly_requests_used"`
	LastResetDate   time.Time      `gorm:"not null" json:"last_reset_date"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Business BusinessProfile `gorm:"foreignKey:BusinessID" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// ApplyPlan sets price and limit from the plan table.
func (s *Subscription) ApplyPlan(plan string) {
	cfg, ok := PlanConfigs[plan]
	if !ok {
		cfg = PlanConfigs[domain.PlanBasic]
		plan = domain.PlanBasic
	}
	s.PlanType = plan
	s.MonthlyPrice = cfg.MonthlyPrice
	s.RequestLimit = cfg.RequestLimit
}

func (s *Subscription) ShouldReset(now time.Time) bool {
	return now.Sub(s.LastResetDate) >= 30*24*time.Hour
}

func (s *Subscription) ResetUsage(now time.Time) {
	s.RequestsUsed = 0
	s.LastResetDate = now
}

// CanMakeRequest applies the lazy monthly reset and reports whether the
// quota allows another request. It may mutate the receiver (reset);
// callers persist the change.
func (s *Subscription) CanMakeRequest(now time.Time) bool {
	if s.Status != domain.SubscriptionActive {
		return false
	}
	if s.ShouldReset(now) {
		s.ResetUsage(now)
	}
	if s.RequestLimit == -1 {
		return true
	}
	return s.RequestsUsed < s.RequestLimit
}

// UseRequest consumes one request from the quota; returns false and
// leaves the counter unchanged when the quota is exhausted.
func (s *Subscription) UseRequest(now time.Time) bool {
	if !s.CanMakeRequest(now) {
		return false
	}
	s.RequestsUsed++
	return true
}

// Upgrade switches plans. Returns false (no-op) when the plan is
// unchanged. The first upgrade from basic starts a billing cycle;
// switching between paid plans keeps the existing expiry; downgrading
// to basic clears billing dates.
func (s *Subscription) Upgrade(newPlan string, now time.Time) bool {
	if newPlan == s.PlanType {
		return false
	}
	oldPlan := s.PlanType
	s.ApplyPlan(newPlan)
	if newPlan != domain.PlanBasic {
		if oldPlan == domain.PlanBasic {
			next := now.Add(30 * 24 * time.Hour)
			s.StartDate = now
			s.NextBillingDate = &next
			s.EndDate = &next
		}
	} else {
		s.NextBillingDate = nil
		s.EndDate = nil
	}
	s.Status = domain.SubscriptionActive
	return true
}

// IsExpired reports whether a paid subscription ran past its end date.
// The free tier never expires.
func (s *Subscription) IsExpired(now time.Time) bool {
	if s.PlanType == domain.PlanBasic {
		return false
	}
	return s.EndDate != nil && now.After(*s.EndDate)
}

// RemainingRequests returns -1 for unlimited plans.
func (s *Subscription) RemainingRequests() int {
	if s.RequestLimit == -1 {
		return -1
	}
	if remaining := s.RequestLimit - s.RequestsUsed; remaining > 0 {
		return remaining
	}
	return 0
}
