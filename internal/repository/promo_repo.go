package repository

import (
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

type PromoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

func (r *PromoRepository) Create(code *model.PromoCode) error {
	return r.db.Create(code).Error
}

func (r *PromoRepository) GetByCode(code string) (*model.PromoCode, error) {
	var promo model.PromoCode
	err := r.db.Where("code = ?", code).First(&promo).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *PromoRepository) UseExists(promoCodeID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PromoUse{}).
		Where("promo_code_id = ? AND user_id = ?", promoCodeID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PromoRepository) CreateUse(use *model.PromoUse) error {
	return r.db.Create(use).Error
}

func (r *PromoRepository) IncrementUses(promoCodeID int64) error {
	return r.db.Model(&model.PromoCode{}).Where("id = ?", promoCodeID).
		Update("uses", gorm.Expr("uses + 1")).Error
}

func (r *PromoRepository) SetActive(promoCodeID int64, active bool) error {
	return r.db.Model(&model.PromoCode{}).Where("id = ?", promoCodeID).
		Update("active", active).Error
}
