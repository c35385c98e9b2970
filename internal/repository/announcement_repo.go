package repository

import (
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

// Rotation orderings.
const (
	OrderNewest      = "newest"
	OrderOldest      = "oldest"
	OrderPremiumOnly = "premium"
)

// RotationQuery narrows the candidate pool for one viewer.
type RotationQuery struct {
	Order   string
	Keyword string // team announcements only; empty means any
}

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(a *model.Announcement) error {
	return r.db.Create(a).Error
}

func (r *AnnouncementRepository) GetByID(id int64) (*model.Announcement, error) {
	var a model.Announcement
	err := r.db.Preload("User").Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Announcement{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *AnnouncementRepository) CountByUserAndType(userID int64, announcementType string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Announcement{}).
		Where("user_id = ? AND type = ?", userID, announcementType).
		Count(&count).Error
	return count, err
}

// reportedOwners selects the owners of every announcement the viewer has
// reported. Exclusion is owner-wide: one report hides the whole author.
func (r *AnnouncementRepository) reportedOwners(viewerID int64) *gorm.DB {
	return r.db.Model(&model.Report{}).
		Select("announcements.user_id").
		Joins("JOIN announcements ON announcements.id = reports.announcement_id").
		Where("reports.user_id = ?", viewerID)
}

// NextForViewer returns the top of the viewer's rotation pool, or
// gorm.ErrRecordNotFound when the pool is empty.
func (r *AnnouncementRepository) NextForViewer(viewerID int64, announcementType string, q RotationQuery) (*model.Announcement, error) {
	query := r.db.Preload("User").
		Where("type = ?", announcementType).
		Where("announcements.user_id != ?", viewerID).
		Where("announcements.user_id NOT IN (?)", r.reportedOwners(viewerID))

	if q.Keyword != "" {
		query = query.Where("keyword = ?", q.Keyword)
	}

	switch q.Order {
	case OrderOldest:
		query = query.Order("announcements.created_at ASC")
	case OrderPremiumOnly:
		query = query.
			Joins("JOIN users ON users.id = announcements.user_id").
			Where("users.premium = ?", true).
			Order("announcements.created_at DESC")
	default:
		query = query.Order("announcements.created_at DESC")
	}

	var a model.Announcement
	if err := query.First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListIDsByUser returns the user's own announcement ids, oldest first.
func (r *AnnouncementRepository) ListIDsByUser(userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Announcement{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *AnnouncementRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Announcement{}).Count(&count).Error
	return count, err
}
