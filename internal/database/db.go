package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/model"
)

// New opens the configured database and applies the pool settings.
func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "brawlmate.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return db, nil
}

// Migrate runs schema migrations for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Announcement{},
		&model.Favorite{},
		&model.Report{},
		&model.Referral{},
		&model.PromoCode{},
		&model.PromoUse{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.Sponsor{},
		&model.SponsorClaim{},
	)
}

// SeedSponsors upserts the configured sponsor channels.
func SeedSponsors(db *gorm.DB, sponsors []config.SponsorConfig) error {
	for _, s := range sponsors {
		var existing model.Sponsor
		err := db.Where("chat_id = ?", s.ChatID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row := model.Sponsor{
				Title:  s.Title,
				ChatID: s.ChatID,
				URL:    s.URL,
				Reward: s.Reward,
				Active: true,
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
