package repository

import (
	"errors"
	"time"

	"promolink/internal/domain"
	"promolink/internal/models"

	"gorm.io/gorm"
)

type PerkRepository struct {
	db *gorm.DB
}

func NewPerkRepository(db *gorm.DB) *PerkRepository {
	return &PerkRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *PerkRepository) WithTx(tx *gorm.DB) *PerkRepository {
	return &PerkRepository{db: tx}
}

// EnsureBalance returns the business's balance, creating a zeroed one
// if none exists yet.
func (r *PerkRepository) EnsureBalance(businessID uint) (*models.PerkBalance, error) {
	var bal models.PerkBalance
	err := r.db.Where("business_id = ?", businessID).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		bal = models.PerkBalance{BusinessID: businessID}
		if err := r.db.Create(&bal).Error; err != nil {
			return nil, err
		}
		return &bal, nil
	}
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (r *PerkRepository) UpdateBalance(bal *models.PerkBalance) error {
	return r.db.Save(bal).Error
}

func (r *PerkRepository) CreateTransaction(tx *models.PerkTransaction) error {
	return r.db.Create(tx).Error
}

func (r *PerkRepository) ListTransactions(businessID uint, page, perPage int) ([]models.PerkTransaction, int64, error) {
	q := r.db.Model(&models.PerkTransaction{}).Where("business_id = ?", businessID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	var txs []models.PerkTransaction
	err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&txs).Error
	return txs, total, err
}

func (r *PerkRepository) CreateActivePerk(p *models.ActivePerk) error {
	return r.db.Create(p).Error
}

func (r *PerkRepository) GetActivePerk(businessID, perkID uint) (*models.ActivePerk, error) {
	var p models.ActivePerk
	err := r.db.Where("id = ? AND business_id = ?", perkID, businessID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActivePerks returns the business's live perks (active flag set and
// end date in the future).
func (r *PerkRepository) ListActivePerks(businessID uint, now time.Time) ([]models.ActivePerk, error) {
	var perks []models.ActivePerk
	err := r.db.Where("business_id = ? AND is_active = ? AND end_date > ?", businessID, true, now).
		Order("end_date ASC").
		Find(&perks).Error
	return perks, err
}

// HasActivePerkOfType reports whether the business already has a live
// perk of the given type.
func (r *PerkRepository) HasActivePerkOfType(businessID uint, perkType string, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.ActivePerk{}).
		Where("business_id = ? AND perk_type = ? AND is_active = ? AND end_date > ?",
			businessID, perkType, true, now).
		Count(&count).Error
	return count > 0, err
}

func (r *PerkRepository) UpdateActivePerk(p *models.ActivePerk) error {
	return r.db.Save(p).Error
}

// DeactivateExpired flips the active flag on every perk whose end date
// has passed. Returns the number of rows updated.
func (r *PerkRepository) DeactivateExpired(now time.Time) (int64, error) {
	res := r.db.Model(&models.ActivePerk{}).
		Where("is_active = ? AND end_date <= ?", true, now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

// SumSpentInWindow totals points spent (as a positive number) in
// [from, to).
func (r *PerkRepository) SumSpentInWindow(businessID uint, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.PerkTransaction{}).
		Select("COALESCE(SUM(-points), 0)").
		Where("business_id = ? AND type = ? AND created_at >= ? AND created_at < ?",
			businessID, domain.TxTypeSpend, from, to).
		Scan(&total).Error
	return total, err
}

func (r *PerkRepository) ListPackages() ([]models.PerkPackage, error) {
	var pkgs []models.PerkPackage
	err := r.db.Where("is_active = ?", true).Order("points_cost ASC").Find(&pkgs).Error
	return pkgs, err
}

func (r *PerkRepository) GetPackageByType(perkType string) (*models.PerkPackage, error) {
	var pkg models.PerkPackage
	err := r.db.Where("perk_type = ? AND is_active = ?", perkType, true).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}
