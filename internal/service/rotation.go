package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

// RotationService selects announcements for a viewer. The pool excludes
// the viewer's own announcements and everything by owners the viewer has
// reported. An empty pool is a normal outcome, not an error.
type RotationService struct {
	announcementRepo *repository.AnnouncementRepository
	favoriteRepo     *repository.FavoriteRepository
}

func NewRotationService(
	announcementRepo *repository.AnnouncementRepository,
	favoriteRepo *repository.FavoriteRepository,
) *RotationService {
	return &RotationService{
		announcementRepo: announcementRepo,
		favoriteRepo:     favoriteRepo,
	}
}

// NextCandidate re-queries on every call and returns the top of the
// ordered pool, or nil when nothing matches. There is no persistent
// cursor: without a filter change the viewer keeps seeing the most
// recent eligible item.
func (s *RotationService) NextCandidate(viewerID int64, announcementType string, q repository.RotationQuery) (*model.Announcement, error) {
	a, err := s.announcementRepo.NextForViewer(viewerID, announcementType, q)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// Page is one step of cyclic browsing over a materialized id list.
type Page struct {
	Announcement *model.Announcement
	Index        int
	Total        int
}

// FavoritesPage resolves the favorite at the given index with
// wraparound on both ends. A favorite whose announcement row vanished
// underneath is skipped in place of failing the whole page.
func (s *RotationService) FavoritesPage(userID int64, index int) (*Page, error) {
	ids, err := s.favoriteRepo.ListAnnouncementIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.pageFromIDs(ids, index)
}

// OwnPage browses the user's own announcements with the same cyclic policy.
func (s *RotationService) OwnPage(userID int64, index int) (*Page, error) {
	ids, err := s.announcementRepo.ListIDsByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.pageFromIDs(ids, index)
}

func (s *RotationService) pageFromIDs(ids []int64, index int) (*Page, error) {
	total := len(ids)
	if total == 0 {
		return &Page{Index: 0, Total: 0}, nil
	}
	index = CycleIndex(index, total)

	a, err := s.announcementRepo.GetByID(ids[index])
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Page{Index: index, Total: total}, nil
		}
		return nil, err
	}
	return &Page{Announcement: a, Index: index, Total: total}, nil
}

// CycleIndex wraps an arbitrary index into [0, total). Stepping past the
// last item lands on the first and vice versa; this is the intended
// cyclic-browse policy, not a bounds error.
func CycleIndex(index, total int) int {
	if total <= 0 {
		return 0
	}
	index %= total
	if index < 0 {
		index += total
	}
	return index
}
