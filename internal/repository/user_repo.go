package repository

import (
	"promolink/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByGoogleID(googleID string) (*models.User, error) {
	var u models.User
	err := r.db.Where("google_id = ?", googleID).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

// Delete soft-deletes the user together with its profile rows and any
// requests (and their messages) the account is party to.
func (r *UserRepository) Delete(u *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var promoterIDs, businessIDs []uint
		if err := tx.Model(&models.PromoterProfile{}).
			Where("user_id = ?", u.ID).Pluck("id", &promoterIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.BusinessProfile{}).
			Where("user_id = ?", u.ID).Pluck("id", &businessIDs).Error; err != nil {
			return err
		}
		// IN () is invalid SQL, so pad empty slices with an unused ID.
		if len(promoterIDs) == 0 {
			promoterIDs = []uint{0}
		}
		if len(businessIDs) == 0 {
			businessIDs = []uint{0}
		}
		var requestIDs []uint
		if err := tx.Model(&models.Request{}).
			Where("promoter_id IN ? OR business_id IN ?", promoterIDs, businessIDs).
			Pluck("id", &requestIDs).Error; err != nil {
			return err
		}
		if len(requestIDs) > 0 {
			if err := tx.Where("request_id IN ?", requestIDs).Delete(&models.Message{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Request{}, requestIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.PromoterProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.BusinessProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(u).Error
	})
}
