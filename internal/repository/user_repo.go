package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// AddCrystals credits crystals unconditionally.
func (r *UserRepository) AddCrystals(id int64, amount int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("crystals", gorm.Expr("crystals + ?", amount)).Error
}

// SpendCrystals debits atomically; the balance guard is part of the
// UPDATE, so a losing concurrent debit fails instead of going negative.
func (r *UserRepository) SpendCrystals(id int64, amount int) (bool, error) {
	res := r.db.Model(&model.User{}).
		Where("id = ? AND crystals >= ?", id, amount).
		Update("crystals", gorm.Expr("crystals - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) AddCoins(id int64, amount int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("coins", gorm.Expr("coins + ?", amount)).Error
}

func (r *UserRepository) SpendCoins(id int64, amount int) (bool, error) {
	res := r.db.Model(&model.User{}).
		Where("id = ? AND coins >= ?", id, amount).
		Update("coins", gorm.Expr("coins - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepository) SetPremium(id int64, premium bool, until *time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"premium":       premium,
		"premium_until": until,
	}).Error
}

func (r *UserRepository) IncrementAnnouncementCount(id int64, announcementType string) error {
	column := "team_announcements"
	if announcementType == model.TypeClub {
		column = "club_announcements"
	}
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1")).Error
}

func (r *UserRepository) IncrementReferrals(id int64) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("referrals", gorm.Expr("referrals + 1")).Error
}

func (r *UserRepository) SetLastBonusAt(id int64, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("last_bonus_at", at).Error
}

func (r *UserRepository) SetBlocked(id int64, blocked bool) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("blocked", blocked).Error
}

// ExpirePremium downgrades every user whose expiry has passed.
// Forever subscriptions (premium_until NULL) are untouched.
func (r *UserRepository) ExpirePremium(now time.Time) (int64, error) {
	res := r.db.Model(&model.User{}).
		Where("premium = ? AND premium_until IS NOT NULL AND premium_until < ?", true, now).
		Updates(map[string]interface{}{"premium": false, "premium_until": nil})
	return res.RowsAffected, res.Error
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountPremium() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("premium = ?", true).Count(&count).Error
	return count, err
}
