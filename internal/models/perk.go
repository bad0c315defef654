package models

import (
	"time"

	"promolink/internal/domain"

	"gorm.io/gorm"
)

// PerkBalance tracks a business's virtual points. Invariant:
// AvailablePoints == TotalPoints - SpentPoints at all times.
type PerkBalance struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	BusinessID      uint           `gorm:"uniqueIndex;not null" json:"business_id"`
	TotalPoints     int            `gorm:"not null;default:0" json:"total_points"`
	AvailablePoints int            `gorm:"not null;default:0" json:"available_points"`
	SpentPoints     int            `gorm:"not null;default:0" json:"spent_points"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Business BusinessProfile `gorm:"foreignKey:BusinessID" json:"-"`
}

func (PerkBalance) TableName() string {
	return "perk_balances"
}

// Add credits points to the balance.
func (b *PerkBalance) Add(points int) {
	b.TotalPoints += points
	b.AvailablePoints += points
}

// Spend debits available points; returns false when the balance cannot
// cover the amount, leaving it unchanged.
func (b *PerkBalance) Spend(points int) bool {
	if b.AvailablePoints < points {
		return false
	}
	b.AvailablePoints -= points
	b.SpentPoints += points
	return true
}

// PerkTransaction is an append-only ledger row. Points are positive for
// credits and negative for spends; BalanceAfter snapshots the available
// balance after the transaction was applied.
type PerkTransaction struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	BusinessID   uint           `gorm:"not null;index" json:"business_id"`
	Points       int            `gorm:"not null" json:"points"`
	Type         string         `gorm:"size:20;not null;index" json:"type"` // purchase, spend, refund, bonus
	BalanceAfter int            `gorm:"not null" json:"balance_after"`
	PerkType     *string        `gorm:"size:30" json:"perk_type"`
	Description  string         `gorm:"size:255" json:"description"`
	Reference    string         `gorm:"size:64" json:"reference"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Business BusinessProfile `gorm:"foreignKey:BusinessID" json:"-"`
}

func (PerkTransaction) TableName() string {
	return "perk_transactions"
}

// ActivePerk is a time-bounded visibility boost bought with points.
type ActivePerk struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BusinessID  uint           `gorm:"not null;index" json:"business_id"`
	PerkType    string         `gorm:"size:30;not null" json:"perk_type"`
	PointsSpent int            `gorm:"not null" json:"points_spent"`
	StartDate   time.Time      `gorm:"not null" json:"start_date"`
	EndDate     time.Time      `gorm:"not null;index" json:"end_date"`
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Business BusinessProfile `gorm:"foreignKey:BusinessID" json:"-"`
}

func (ActivePerk) TableName() string {
	return "active_perks"
}

func (p *ActivePerk) IsExpired(now time.Time) bool {
	return now.After(p.EndDate)
}

func (p *ActivePerk) RemainingDays(now time.Time) int {
	if p.IsExpired(now) {
		return 0
	}
	return int(p.EndDate.Sub(now).Hours() / 24)
}

// PerkPackage is a catalog row describing a purchasable perk.
type PerkPackage struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	PerkType     string         `gorm:"size:30;not null" json:"perk_type"`
	PointsCost   int            `gorm:"not null" json:"points_cost"`
	DurationDays int            `gorm:"not null;default:30" json:"duration_days"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PerkPackage) TableName() string {
	return "perk_packages"
}

// DefaultPerkPackages is the catalog seeded on first boot.
func DefaultPerkPackages() []PerkPackage {
	return []PerkPackage{
		{
			Name:         "Priority Listing",
			Description:  "Your profile appears at the top of search results for 30 days",
			PerkType:     domain.PerkTypePriorityListing,
			PointsCost:   100,
			DurationDays: 30,
			IsActive:     true,
		},
		{
			Name:         "Featured Profile",
			Description:  "Your profile is highlighted with a special badge for 30 days",
			PerkType:     domain.PerkTypeFeaturedProfile,
			PointsCost:   150,
			DurationDays: 30,
			IsActive:     true,
		},
		{
			Name:         "Visibility Boost",
			Description:  "Boosts your profile visibility by 300% for 7 days",
			PerkType:     domain.PerkTypeBoostVisibility,
			PointsCost:   75,
			DurationDays: 7,
			IsActive:     true,
		},
		{
			Name:         "Premium Badge",
			Description:  "Shows a premium badge on your profile for 60 days",
			PerkType:     domain.PerkTypePremiumBadge,
			PointsCost:   200,
			DurationDays: 60,
			IsActive:     true,
		},
	}
}
