package repository

import (
	"promolink/internal/models"

	"gorm.io/gorm"
)

type PromoterRepository struct {
	db *gorm.DB
}

func NewPromoterRepository(db *gorm.DB) *PromoterRepository {
	return &PromoterRepository{db: db}
}

func (r *PromoterRepository) Create(p *models.PromoterProfile) error {
	return r.db.Create(p).Error
}

func (r *PromoterRepository) GetByID(id uint) (*models.PromoterProfile, error) {
	var p models.PromoterProfile
	err := r.db.Preload("User").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoterRepository) GetByUserID(userID uint) (*models.PromoterProfile, error) {
	var p models.PromoterProfile
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoterRepository) Update(p *models.PromoterProfile) error {
	return r.db.Save(p).Error
}

// PromoterFilter narrows Browse results. Zero values mean "no filter".
type PromoterFilter struct {
	Industry     string
	HasInstagram bool
	HasTikTok    bool
	HasLinkedIn  bool
	Page         int
	PerPage      int
}

func (r *PromoterRepository) Browse(f PromoterFilter) ([]models.PromoterProfile, int64, error) {
	q := r.db.Model(&models.PromoterProfile{}).Preload("User")
	if f.Industry != "" {
		q = q.Where("industry = ?", f.Industry)
	}
	if f.HasInstagram {
		q = q.Where("instagram_link IS NOT NULL")
	}
	if f.HasTikTok {
		q = q.Where("tik_tok_link IS NOT NULL")
	}
	if f.HasLinkedIn {
		q = q.Where("linked_in_link IS NOT NULL")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.PerPage <= 0 {
		f.PerPage = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	var profiles []models.PromoterProfile
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&profiles).Error
	return profiles, total, err
}

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) Create(b *models.BusinessProfile) error {
	return r.db.Create(b).Error
}

func (r *BusinessRepository) GetByID(id uint) (*models.BusinessProfile, error) {
	var b models.BusinessProfile
	err := r.db.Preload("User").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepository) GetByUserID(userID uint) (*models.BusinessProfile, error) {
	var b models.BusinessProfile
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepository) Update(b *models.BusinessProfile) error {
	return r.db.Save(b).Error
}

// BusinessFilter narrows Browse results. MaxMinViews keeps businesses a
// promoter can actually satisfy.
type BusinessFilter struct {
	ActivityType string
	Location     string
	Name         string
	MaxMinViews  *int
	Page         int
	PerPage      int
}

func (r *BusinessRepository) Browse(f BusinessFilter) ([]models.BusinessProfile, int64, error) {
	q := r.db.Model(&models.BusinessProfile{}).Preload("User")
	if f.ActivityType != "" {
		q = q.Where("activity_type = ?", f.ActivityType)
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}
	if f.Name != "" {
		q = q.Where("business_name LIKE ?", "%"+f.Name+"%")
	}
	if f.MaxMinViews != nil {
		q = q.Where("min_views IS NULL OR min_views <= ?", *f.MaxMinViews)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.PerPage <= 0 {
		f.PerPage = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	var profiles []models.BusinessProfile
	err := q.Order("created_at DESC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&profiles).Error
	return profiles, total, err
}
