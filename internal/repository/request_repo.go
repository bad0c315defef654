package repository

import (
	"time"

	"promolink/internal/domain"
	"promolink/internal/models"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *RequestRepository) WithTx(tx *gorm.DB) *RequestRepository {
	return &RequestRepository{db: tx}
}

func (r *RequestRepository) Create(req *models.Request) error {
	return r.db.Create(req).Error
}

func (r *RequestRepository) GetByID(id uint) (*models.Request, error) {
	var req models.Request
	err := r.db.Preload("Promoter").Preload("Promoter.User").
		Preload("Business").Preload("Business.User").
		First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// HasActiveForPair reports whether a pending or negotiating request
// already exists between the pair.
func (r *RequestRepository) HasActiveForPair(promoterID, businessID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Request{}).
		Where("promoter_id = ? AND business_id = ? AND state IN ?",
			promoterID, businessID,
			[]string{domain.RequestStatePending, domain.RequestStateNegotiating}).
		Count(&count).Error
	return count > 0, err
}

// ListByPromoter returns the promoter's requests newest-activity first,
// optionally narrowed to one state.
func (r *RequestRepository) ListByPromoter(promoterID uint, state string) ([]models.Request, error) {
	var reqs []models.Request
	q := r.db.Preload("Promoter").Preload("Promoter.User").
		Preload("Business").Preload("Business.User").
		Where("promoter_id = ?", promoterID)
	if state != "" {
		q = q.Where("state = ?", state)
	}
	err := q.Order("updated_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *RequestRepository) ListByBusiness(businessID uint, state string) ([]models.Request, error) {
	var reqs []models.Request
	q := r.db.Preload("Promoter").Preload("Promoter.User").
		Preload("Business").Preload("Business.User").
		Where("business_id = ?", businessID)
	if state != "" {
		q = q.Where("state = ?", state)
	}
	err := q.Order("updated_at DESC").Find(&reqs).Error
	return reqs, err
}

// CountByStateForBusiness returns the business's request counts grouped
// by state, for the dashboard.
func (r *RequestRepository) CountByStateForBusiness(businessID uint) (map[string]int64, error) {
	type row struct {
		State string
		N     int64
	}
	var rows []row
	err := r.db.Model(&models.Request{}).
		Select("state, COUNT(*) AS n").
		Where("business_id = ?", businessID).
		Group("state").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.State] = rw.N
	}
	return counts, nil
}

func (r *RequestRepository) Update(req *models.Request) error {
	return r.db.Save(req).Error
}

func (r *RequestRepository) CreateMessage(m *models.Message) error {
	return r.db.Create(m).Error
}

func (r *RequestRepository) ListMessages(requestID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

// CountSentInWindow counts requests created by the promoter in [from, to).
func (r *RequestRepository) CountSentInWindow(promoterID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Request{}).
		Where("promoter_id = ? AND created_at >= ? AND created_at < ?", promoterID, from, to).
		Count(&count).Error
	return count, err
}

// CountAcceptedInWindow counts requests whose acceptance landed in
// [from, to), regardless of when they were created.
func (r *RequestRepository) CountAcceptedInWindow(promoterID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Request{}).
		Where("promoter_id = ? AND state = ? AND accepted_at >= ? AND accepted_at < ?",
			promoterID, domain.RequestStateAccepted, from, to).
		Count(&count).Error
	return count, err
}

// CountActiveDays counts the distinct calendar days in [from, to) on
// which the promoter created at least one request.
func (r *RequestRepository) CountActiveDays(promoterID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Request{}).
		Select("COUNT(DISTINCT DATE(created_at))").
		Where("promoter_id = ? AND created_at >= ? AND created_at < ?", promoterID, from, to).
		Scan(&count).Error
	return count, err
}

// ActivePromoterIDsInWindow lists promoters who sent at least one
// request in [from, to); used by the full leaderboard recompute.
func (r *RequestRepository) ActivePromoterIDsInWindow(from, to time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Request{}).
		Distinct("promoter_id").
		Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("promoter_id", &ids).Error
	return ids, err
}
