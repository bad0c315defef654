package models

import (
	"testing"
	"time"

	"promolink/internal/domain"

	"github.com/stretchr/testify/assert"
)

func basicSub(now time.Time) Subscription {
	s := Subscription{
		Status:        domain.SubscriptionActive,
		StartDate:     now,
		LastResetDate: now,
		Currency:      "EUR",
	}
	s.ApplyPlan(domain.PlanBasic)
	return s
}

func TestCanMakeRequest_WithinLimit(t *testing.T) {
	now := time.Now()
	s := basicSub(now)
	s.RequestsUsed = 4

	assert.True(t, s.CanMakeRequest(now))
}

func TestCanMakeRequest_LimitExhausted(t *testing.T) {
	now := time.Now()
	s := basicSub(now)
	s.RequestsUsed = 5

	assert.False(t, s.CanMakeRequest(now))
	assert.Equal(t, 0, s.RemainingRequests())
}

func TestCanMakeRequest_LazyResetAfter30Days(t *testing.T) {
	start := time.Now().Add(-31 * 24 * time.Hour)
	s := basicSub(start)
	s.RequestsUsed = 5

	now := time.Now()
	assert.True(t, s.CanMakeRequest(now))
	assert.Equal(t, 0, s.RequestsUsed)
	assert.Equal(t, now, s.LastResetDate)
}

func TestCanMakeRequest_NoResetBefore30Days(t *testing.T) {
	start := time.Now().Add(-29 * 24 * time.Hour)
	s := basicSub(start)
	s.RequestsUsed = 5

	assert.False(t, s.CanMakeRequest(time.Now()))
	assert.Equal(t, 5, s.RequestsUsed)
}

func TestCanMakeRequest_UnlimitedPlan(t *testing.T) {
	now := time.Now()
	s := basicSub(now)
	s.ApplyPlan(domain.PlanPremium)
	s.RequestsUsed = 10000

	assert.True(t, s.CanMakeRequest(now))
	assert.Equal(t, -1, s.RemainingRequests())
}

func TestCanMakeRequest_InactiveStatus(t *testing.T) {
	now := time.Now()
	s := basicSub(now)
	s.Status = domain.SubscriptionCancelled

	assert.False(t, s.CanMakeRequest(now))
}

func TestUseRequest(t *testing.T) {
	now := time.Now()
	s := basicSub(now)

	for i := 0; i < 5; i++ {
		assert.True(t, s.UseRequest(now), "request %d should fit the quota", i+1)
	}
	assert.False(t, s.UseRequest(now))
	assert.Equal(t, 5, s.RequestsUsed)
}

func TestUpgrade_BasicToPro(t *testing.T) {
	now := time.Now()
	s := basicSub(now.Add(-10 * 24 * time.Hour))

	assert.True(t, s.Upgrade(domain.PlanPro, now))
	assert.Equal(t, domain.PlanPro, s.PlanType)
	assert.Equal(t, 29.0, s.MonthlyPrice)
	assert.Equal(t, 50, s.RequestLimit)
	assert.Equal(t, now, s.StartDate)
	if assert.NotNil(t, s.EndDate) {
		assert.Equal(t, now.Add(30*24*time.Hour), *s.EndDate)
	}
	assert.NotNil(t, s.NextBillingDate)
}

func TestUpgrade_SamePlanIsNoop(t *testing.T) {
	now := time.Now()
	s := basicSub(now)

	assert.False(t, s.Upgrade(domain.PlanBasic, now))
}

func TestUpgrade_PaidToPaidKeepsExpiry(t *testing.T) {
	now := time.Now()
	s := basicSub(now)
	s.Upgrade(domain.PlanPro, now)
	originalEnd := *s.EndDate

	later := now.Add(5 * 24 * time.Hour)
	assert.True(t, s.Upgrade(domain.PlanPremium, later))
	assert.Equal(t, domain.PlanPremium, s.PlanType)
	assert.Equal(t, originalEnd, *s.EndDate)
}

func TestUpgrade_DowngradeToBasicClearsBilling(t *testing.T) {
	now := time.Now()
	s := basicSub(now)
	s.Upgrade(domain.PlanPro, now)

	assert.True(t, s.Upgrade(domain.PlanBasic, now))
	assert.Nil(t, s.EndDate)
	assert.Nil(t, s.NextBillingDate)
	assert.Equal(t, 5, s.RequestLimit)
}

func TestIsExpired(t *testing.T) {
	now := time.Now()
	s := basicSub(now)

	assert.False(t, s.IsExpired(now.Add(365*24*time.Hour)), "free tier never expires")

	s.Upgrade(domain.PlanPro, now)
	assert.False(t, s.IsExpired(now.Add(29*24*time.Hour)))
	assert.True(t, s.IsExpired(now.Add(31*24*time.Hour)))
}
