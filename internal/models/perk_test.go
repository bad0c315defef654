package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerkBalance_AddAndSpend(t *testing.T) {
	var b PerkBalance

	b.Add(100)
	assert.Equal(t, 100, b.TotalPoints)
	assert.Equal(t, 100, b.AvailablePoints)
	assert.Equal(t, 0, b.SpentPoints)

	assert.True(t, b.Spend(75))
	assert.Equal(t, 25, b.AvailablePoints)
	assert.Equal(t, 75, b.SpentPoints)

	// Invariant: available == total - spent
	assert.Equal(t, b.TotalPoints-b.SpentPoints, b.AvailablePoints)
}

func TestPerkBalance_SpendDeclined(t *testing.T) {
	var b PerkBalance
	b.Add(50)

	assert.False(t, b.Spend(75))
	assert.Equal(t, 50, b.AvailablePoints)
	assert.Equal(t, 0, b.SpentPoints)
}

func TestActivePerk_Expiry(t *testing.T) {
	now := time.Now()
	p := ActivePerk{
		StartDate: now,
		EndDate:   now.Add(7 * 24 * time.Hour),
	}

	assert.False(t, p.IsExpired(now))
	assert.Equal(t, 7, p.RemainingDays(now))
	assert.Equal(t, 4, p.RemainingDays(now.Add(3*24*time.Hour)))

	after := now.Add(8 * 24 * time.Hour)
	assert.True(t, p.IsExpired(after))
	assert.Equal(t, 0, p.RemainingDays(after))
}

func TestDefaultPerkPackages(t *testing.T) {
	pkgs := DefaultPerkPackages()
	assert.Len(t, pkgs, 4)

	costs := map[string]int{}
	days := map[string]int{}
	for _, p := range pkgs {
		costs[p.PerkType] = p.PointsCost
		days[p.PerkType] = p.DurationDays
		assert.True(t, p.IsActive)
	}
	assert.Equal(t, 100, costs["priority_listing"])
	assert.Equal(t, 150, costs["featured_profile"])
	assert.Equal(t, 75, costs["boost_visibility"])
	assert.Equal(t, 200, costs["premium_badge"])
	assert.Equal(t, 7, days["boost_visibility"])
	assert.Equal(t, 60, days["premium_badge"])
}
