package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidReason        = errors.New("unknown report reason")
)

// FavoriteService is the favorites and report ledger. Favorite writes
// are idempotent; reports are append-only and feed the rotation
// engine's owner-wide exclusion.
type FavoriteService struct {
	favoriteRepo     *repository.FavoriteRepository
	reportRepo       *repository.ReportRepository
	announcementRepo *repository.AnnouncementRepository
}

func NewFavoriteService(
	favoriteRepo *repository.FavoriteRepository,
	reportRepo *repository.ReportRepository,
	announcementRepo *repository.AnnouncementRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo:     favoriteRepo,
		reportRepo:       reportRepo,
		announcementRepo: announcementRepo,
	}
}

// AddFavorite records the bookmark; a second add of the same pair is a
// no-op reporting the existing state.
func (s *FavoriteService) AddFavorite(userID, announcementID int64) (added bool, err error) {
	if _, err := s.announcementRepo.GetByID(announcementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrAnnouncementNotFound
		}
		return false, err
	}

	exists, err := s.favoriteRepo.Exists(userID, announcementID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	fav := &model.Favorite{UserID: userID, AnnouncementID: announcementID}
	if err := s.favoriteRepo.Create(fav); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFavorite deletes the bookmark; removing an absent pair returns
// false without an error.
func (s *FavoriteService) RemoveFavorite(userID, announcementID int64) (bool, error) {
	return s.favoriteRepo.Delete(userID, announcementID)
}

// Report records the first report of the pair; repeats are silently
// dropped. The suppression effect is owner-wide either way: recording is
// per announcement, hiding is per owner. Preserve that asymmetry.
func (s *FavoriteService) Report(reporterID, announcementID int64, reason string) error {
	if !model.ValidReportReason(reason) {
		return ErrInvalidReason
	}

	if _, err := s.announcementRepo.GetByID(announcementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	exists, err := s.reportRepo.Exists(reporterID, announcementID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	report := &model.Report{
		UserID:         reporterID,
		AnnouncementID: announcementID,
		Reason:         reason,
	}
	return s.reportRepo.Create(report)
}
