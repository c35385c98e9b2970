package repository

import (
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

type SponsorRepository struct {
	db *gorm.DB
}

func NewSponsorRepository(db *gorm.DB) *SponsorRepository {
	return &SponsorRepository{db: db}
}

func (r *SponsorRepository) ListActive() ([]*model.Sponsor, error) {
	var sponsors []*model.Sponsor
	err := r.db.Where("active = ?", true).Order("id ASC").Find(&sponsors).Error
	return sponsors, err
}

func (r *SponsorRepository) GetByID(id int64) (*model.Sponsor, error) {
	var s model.Sponsor
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SponsorRepository) ClaimExists(userID, sponsorID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.SponsorClaim{}).
		Where("user_id = ? AND sponsor_id = ?", userID, sponsorID).
		Count(&count).Error
	return count > 0, err
}

func (r *SponsorRepository) CreateClaim(claim *model.SponsorClaim) error {
	return r.db.Create(claim).Error
}
