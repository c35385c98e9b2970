package repository

import (
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(f *model.Favorite) error {
	return r.db.Create(f).Error
}

func (r *FavoriteRepository) Exists(userID, announcementID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		Count(&count).Error
	return count > 0, err
}

// Delete removes the pair and reports whether a row actually existed.
func (r *FavoriteRepository) Delete(userID, announcementID int64) (bool, error) {
	res := r.db.Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListAnnouncementIDs returns the user's bookmarks in insertion order.
func (r *FavoriteRepository) ListAnnouncementIDs(userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("announcement_id", &ids).Error
	return ids, err
}

func (r *FavoriteRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
