package repository

import (
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) Exists(userID, announcementID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Report{}).
		Where("user_id = ? AND announcement_id = ?", userID, announcementID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReportRepository) CountByAnnouncement(announcementID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Report{}).
		Where("announcement_id = ?", announcementID).
		Count(&count).Error
	return count, err
}
