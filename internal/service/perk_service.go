package service

import (
	"errors"
	"fmt"
	"time"

	"promolink/internal/domain"
	"promolink/internal/logging"
	"promolink/internal/models"
	"promolink/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointBundle is one purchasable points pack. Larger packs carry bonus
// points on top of the base amount.
type PointBundle struct {
	Points      int     `json:"points"`
	PriceEUR    float64 `json:"price_eur"`
	BonusPoints int     `json:"bonus_points"`
}

// PointBundles is the fixed purchase catalog.
var PointBundles = []PointBundle{
	{Points: 100, PriceEUR: 9.99, BonusPoints: 0},
	{Points: 250, PriceEUR: 19.99, BonusPoints: 25},
	{Points: 500, PriceEUR: 34.99, BonusPoints: 75},
	{Points: 1000, PriceEUR: 59.99, BonusPoints: 200},
}

func bundleFor(points int) (PointBundle, bool) {
	for _, b := range PointBundles {
		if b.Points == points {
			return b, true
		}
	}
	return PointBundle{}, false
}

// perkPriorityScores orders search results: higher wins.
var perkPriorityScores = map[string]int{
	domain.PerkTypePriorityListing: 1000,
	domain.PerkTypeFeaturedProfile: 500,
	domain.PerkTypeBoostVisibility: 300,
	domain.PerkTypePremiumBadge:    100,
}

type PerkService struct {
	db       *gorm.DB
	perks    *repository.PerkRepository
	business *repository.BusinessRepository
}

func NewPerkService(db *gorm.DB, perks *repository.PerkRepository, business *repository.BusinessRepository) *PerkService {
	return &PerkService{db: db, perks: perks, business: business}
}

func (s *PerkService) businessID(userID uint) (uint, error) {
	b, err := s.business.GetByUserID(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: business profile", domain.ErrNotFound)
	}
	return b.ID, nil
}

// Balance returns the business's point balance, creating it on first use.
func (s *PerkService) Balance(userID uint) (*models.PerkBalance, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}
	return s.perks.EnsureBalance(businessID)
}

// Purchase credits a catalog bundle (base plus bonus points) and writes
// the ledger row atomically.
func (s *PerkService) Purchase(userID uint, points int, paymentRef string) (*models.PerkBalance, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}
	bundle, ok := bundleFor(points)
	if !ok {
		return nil, fmt.Errorf("%w: no bundle with %d points", domain.ErrValidation, points)
	}
	if paymentRef == "" {
		paymentRef = uuid.NewString()
	}

	var bal *models.PerkBalance
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.perks.WithTx(tx)
		bal, err = repo.EnsureBalance(businessID)
		if err != nil {
			return err
		}
		credit := bundle.Points + bundle.BonusPoints
		bal.Add(credit)
		if err := repo.UpdateBalance(bal); err != nil {
			return err
		}
		ledger := models.PerkTransaction{
			BusinessID:   businessID,
			Points:       credit,
			Type:         domain.TxTypePurchase,
			BalanceAfter: bal.AvailablePoints,
			Description:  fmt.Sprintf("Purchased %d points bundle", bundle.Points),
			Reference:    paymentRef,
		}
		if err := repo.CreateTransaction(&ledger); err != nil {
			return err
		}
		if bundle.BonusPoints > 0 {
			// The bonus is folded into the credit above; record it as
			// its own zero-point ledger note for the statement.
			note := models.PerkTransaction{
				BusinessID:   businessID,
				Points:       0,
				Type:         domain.TxTypeBonus,
				BalanceAfter: bal.AvailablePoints,
				Description:  fmt.Sprintf("Includes %d bonus points", bundle.BonusPoints),
				Reference:    paymentRef,
			}
			if err := repo.CreateTransaction(&note); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithField("business_id", businessID).
		WithField("points", bundle.Points+bundle.BonusPoints).
		Info("points purchased")
	return bal, nil
}

// ActivatePerk spends points on a catalog perk and creates the
// time-bounded activation, all in one transaction. A live perk of the
// same type blocks a second activation.
func (s *PerkService) ActivatePerk(userID uint, perkType string) (*models.ActivePerk, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidPerkType(perkType) {
		return nil, fmt.Errorf("%w: unknown perk type %q", domain.ErrValidation, perkType)
	}

	var perk models.ActivePerk
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.perks.WithTx(tx)
		pkg, err := repo.GetPackageByType(perkType)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: perk package", domain.ErrNotFound)
			}
			return err
		}
		now := time.Now()
		exists, err := repo.HasActivePerkOfType(businessID, perkType, now)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: a %s perk is already active", domain.ErrConflict, perkType)
		}
		bal, err := repo.EnsureBalance(businessID)
		if err != nil {
			return err
		}
		if !bal.Spend(pkg.PointsCost) {
			return fmt.Errorf("%w: need %d points, have %d", domain.ErrInsufficientPoints,
				pkg.PointsCost, bal.AvailablePoints)
		}
		if err := repo.UpdateBalance(bal); err != nil {
			return err
		}
		perk = models.ActivePerk{
			BusinessID:  businessID,
			PerkType:    perkType,
			PointsSpent: pkg.PointsCost,
			StartDate:   now,
			EndDate:     now.AddDate(0, 0, pkg.DurationDays),
			IsActive:    true,
		}
		if err := repo.CreateActivePerk(&perk); err != nil {
			return err
		}
		ledger := models.PerkTransaction{
			BusinessID:   businessID,
			Points:       -pkg.PointsCost,
			Type:         domain.TxTypeSpend,
			BalanceAfter: bal.AvailablePoints,
			PerkType:     &perk.PerkType,
			Description:  fmt.Sprintf("Activated %s", pkg.Name),
			Reference:    uuid.NewString(),
		}
		return repo.CreateTransaction(&ledger)
	})
	if err != nil {
		return nil, err
	}

	logging.Logger.WithField("business_id", businessID).
		WithField("perk_type", perkType).Info("perk activated")
	return &perk, nil
}

// DeactivatePerk cancels a live perk early and refunds points pro rata
// by whole remaining days.
func (s *PerkService) DeactivatePerk(userID, perkID uint) (*models.ActivePerk, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}

	var perk *models.ActivePerk
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.perks.WithTx(tx)
		perk, err = repo.GetActivePerk(businessID, perkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: perk", domain.ErrNotFound)
			}
			return err
		}
		now := time.Now()
		if !perk.IsActive || perk.IsExpired(now) {
			return fmt.Errorf("%w: perk is not active", domain.ErrInvalidState)
		}
		perk.IsActive = false
		if err := repo.UpdateActivePerk(perk); err != nil {
			return err
		}

		totalDays := int(perk.EndDate.Sub(perk.StartDate).Hours() / 24)
		remaining := perk.RemainingDays(now)
		if totalDays <= 0 || remaining <= 0 {
			return nil
		}
		refund := perk.PointsSpent * remaining / totalDays
		if refund == 0 {
			return nil
		}
		bal, err := repo.EnsureBalance(businessID)
		if err != nil {
			return err
		}
		bal.AvailablePoints += refund
		bal.SpentPoints -= refund
		if err := repo.UpdateBalance(bal); err != nil {
			return err
		}
		ledger := models.PerkTransaction{
			BusinessID:   businessID,
			Points:       refund,
			Type:         domain.TxTypeRefund,
			BalanceAfter: bal.AvailablePoints,
			PerkType:     &perk.PerkType,
			Description:  fmt.Sprintf("Refund for %d unused days", remaining),
			Reference:    uuid.NewString(),
		}
		return repo.CreateTransaction(&ledger)
	})
	if err != nil {
		return nil, err
	}
	return perk, nil
}

// ActivePerks lists the business's live perks.
func (s *PerkService) ActivePerks(userID uint) ([]models.ActivePerk, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}
	return s.perks.ListActivePerks(businessID, time.Now())
}

// Transactions returns the paginated ledger.
func (s *PerkService) Transactions(userID uint, page, perPage int) ([]models.PerkTransaction, int64, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, 0, err
	}
	return s.perks.ListTransactions(businessID, page, perPage)
}

// Packages returns the activatable perk catalog.
func (s *PerkService) Packages() ([]models.PerkPackage, error) {
	return s.perks.ListPackages()
}

// CleanupExpired deactivates every perk past its end date; run on a
// schedule. Returns the number deactivated.
func (s *PerkService) CleanupExpired() (int64, error) {
	n, err := s.perks.DeactivateExpired(time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logging.Logger.WithField("count", n).Info("expired perks deactivated")
	}
	return n, nil
}

// PriorityScore returns the business's best live perk weight for
// ordering search results; zero when nothing is active.
func (s *PerkService) PriorityScore(businessID uint) (int, error) {
	perks, err := s.perks.ListActivePerks(businessID, time.Now())
	if err != nil {
		return 0, err
	}
	best := 0
	for _, p := range perks {
		if score := perkPriorityScores[p.PerkType]; score > best {
			best = score
		}
	}
	return best, nil
}

// PerkStats summarizes a business's perk activity.
type PerkStats struct {
	AvailablePoints int   `json:"available_points"`
	TotalPoints     int   `json:"total_points"`
	SpentPoints     int   `json:"spent_points"`
	ActivePerkCount int   `json:"active_perk_count"`
	PriorityScore   int   `json:"priority_score"`
	MonthlySpend    int64 `json:"monthly_spend"`
}

func (s *PerkService) Stats(userID uint) (*PerkStats, error) {
	businessID, err := s.businessID(userID)
	if err != nil {
		return nil, err
	}
	bal, err := s.perks.EnsureBalance(businessID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	perks, err := s.perks.ListActivePerks(businessID, now)
	if err != nil {
		return nil, err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	monthlySpend, err := s.perks.SumSpentInWindow(businessID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	best := 0
	for _, p := range perks {
		if score := perkPriorityScores[p.PerkType]; score > best {
			best = score
		}
	}
	return &PerkStats{
		AvailablePoints: bal.AvailablePoints,
		TotalPoints:     bal.TotalPoints,
		SpentPoints:     bal.SpentPoints,
		ActivePerkCount: len(perks),
		PriorityScore:   best,
		MonthlySpend:    monthlySpend,
	}, nil
}
