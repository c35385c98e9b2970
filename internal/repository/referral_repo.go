package repository

import (
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Create(ref *model.Referral) error {
	return r.db.Create(ref).Error
}

// ReferredExists reports whether the user was already referred by anyone.
func (r *ReferralRepository) ReferredExists(referredID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Referral{}).
		Where("referred_id = ?", referredID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReferralRepository) CountByReferrer(referrerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Referral{}).
		Where("referrer_id = ?", referrerID).
		Count(&count).Error
	return count, err
}
