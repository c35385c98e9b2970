package repository

import (
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// Seed inserts the catalog rows once; an existing catalog is left alone.
func (r *AchievementRepository) Seed(codes []string) error {
	var count int64
	if err := r.db.Model(&model.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i, code := range codes {
		row := model.Achievement{Code: code, Position: i}
		if err := r.db.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *AchievementRepository) GetByCode(code string) (*model.Achievement, error) {
	var a model.Achievement
	err := r.db.Where("code = ?", code).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AchievementRepository) HasAward(userID, achievementID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}

func (r *AchievementRepository) CreateAward(award *model.UserAchievement) error {
	return r.db.Create(award).Error
}

// ListByUser returns the user's earned achievements in catalog order.
func (r *AchievementRepository) ListByUser(userID int64) ([]*model.UserAchievement, error) {
	var awards []*model.UserAchievement
	err := r.db.Preload("Achievement").
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id").
		Where("user_achievements.user_id = ?", userID).
		Order("achievements.position ASC").
		Find(&awards).Error
	return awards, err
}
