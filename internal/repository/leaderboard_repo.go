package repository

import (
	"errors"

	"promolink/internal/models"

	"gorm.io/gorm"
)

type LeaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// EnsureEntry returns the promoter's entry for the period, creating a
// zeroed one if none exists yet.
func (r *LeaderboardRepository) EnsureEntry(promoterID uint, month, year int) (*models.LeaderboardEntry, error) {
	var entry models.LeaderboardEntry
	err := r.db.Where("promoter_id = ? AND month = ? AND year = ?", promoterID, month, year).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.LeaderboardEntry{PromoterID: promoterID, Month: month, Year: year}
		if err := r.db.Create(&entry).Error; err != nil {
			return nil, err
		}
		return &entry, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *LeaderboardRepository) Update(entry *models.LeaderboardEntry) error {
	return r.db.Save(entry).Error
}

// UpdateRank writes only the rank column.
func (r *LeaderboardRepository) UpdateRank(entryID uint, rank int) error {
	return r.db.Model(&models.LeaderboardEntry{}).
		Where("id = ?", entryID).
		Update("rank", rank).Error
}

// ListByPeriod returns entries for the period ordered by score
// descending, ties broken by promoter ID ascending.
func (r *LeaderboardRepository) ListByPeriod(month, year, limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	q := r.db.Preload("Promoter").Preload("Promoter.User").
		Where("month = ? AND year = ?", month, year).
		Order("total_score DESC, promoter_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&entries).Error
	return entries, err
}

// CountHigherScores counts entries in the period with a strictly
// higher score; position is that count plus one.
func (r *LeaderboardRepository) CountHigherScores(month, year int, score float64) (int64, error) {
	var count int64
	err := r.db.Model(&models.LeaderboardEntry{}).
		Where("month = ? AND year = ? AND total_score > ?", month, year, score).
		Count(&count).Error
	return count, err
}

// ListHistory returns a promoter's entries across all periods, newest
// first.
func (r *LeaderboardRepository) ListHistory(promoterID uint) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := r.db.Where("promoter_id = ?", promoterID).
		Order("year DESC, month DESC").
		Find(&entries).Error
	return entries, err
}
