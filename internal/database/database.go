package database

import (
	"promolink/config"
	"promolink/internal/logging"
	"promolink/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PromoterProfile{},
		&models.BusinessProfile{},
		&models.Request{},
		&models.Message{},
		&models.LeaderboardEntry{},
		&models.PerkBalance{},
		&models.PerkTransaction{},
		&models.ActivePerk{},
		&models.PerkPackage{},
		&models.Subscription{},
	)
}

// SeedPerkPackages inserts the default perk catalog when the table is
// empty, so activation works out of the box.
func SeedPerkPackages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PerkPackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, pkg := range models.DefaultPerkPackages() {
		p := pkg
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	logging.Logger.Info("seeded default perk packages")
	return nil
}
