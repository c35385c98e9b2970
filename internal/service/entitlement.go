package service

import (
	"errors"
	"log"
	"time"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

var (
	ErrFreeLimitReached    = errors.New("free announcement limit reached")
	ErrPremiumLimitReached = errors.New("premium per-type limit reached")
	ErrMediaNotAllowed     = errors.New("media kind requires premium")
)

// EntitlementService computes premium status and announcement quotas.
type EntitlementService struct {
	userRepo         *repository.UserRepository
	announcementRepo *repository.AnnouncementRepository
	cfg              *config.Config
}

func NewEntitlementService(
	userRepo *repository.UserRepository,
	announcementRepo *repository.AnnouncementRepository,
	cfg *config.Config,
) *EntitlementService {
	return &EntitlementService{
		userRepo:         userRepo,
		announcementRepo: announcementRepo,
		cfg:              cfg,
	}
}

// IsPremium reads the stored flag but treats a past expiry as an
// implicit downgrade, persisting the correction. Concurrent readers may
// transiently see stale true; the hourly sweep closes the gap.
func (s *EntitlementService) IsPremium(user *model.User) bool {
	if !user.Premium {
		return false
	}
	if user.PremiumUntil == nil {
		// forever
		return true
	}
	if time.Now().Before(*user.PremiumUntil) {
		return true
	}
	user.Premium = false
	user.PremiumUntil = nil
	if err := s.userRepo.SetPremium(user.ID, false, nil); err != nil {
		log.Printf("entitlement: failed to persist premium downgrade for user %d: %v", user.ID, err)
	}
	return false
}

// GrantPremium sets premium for the given number of days; days == 0
// means forever. Extending an active subscription stacks on top of the
// current expiry, a lapsed or fresh one starts from now.
func (s *EntitlementService) GrantPremium(userID int64, days int) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if days <= 0 {
		user.Premium = true
		user.PremiumUntil = nil
		return s.userRepo.SetPremium(user.ID, true, nil)
	}

	base := time.Now()
	if s.IsPremium(user) && user.PremiumUntil != nil {
		base = *user.PremiumUntil
	}
	until := base.Add(time.Duration(days) * 24 * time.Hour)

	user.Premium = true
	user.PremiumUntil = &until
	return s.userRepo.SetPremium(user.ID, true, &until)
}

// CanCreateAnnouncement checks the creation quota: a free user owns at
// most one announcement total, a premium user at most two per type.
func (s *EntitlementService) CanCreateAnnouncement(user *model.User, announcementType string) error {
	if s.IsPremium(user) {
		count, err := s.announcementRepo.CountByUserAndType(user.ID, announcementType)
		if err != nil {
			return err
		}
		if count >= int64(s.cfg.Announcement.PremiumTypeLimit) {
			return ErrPremiumLimitReached
		}
		return nil
	}

	total, err := s.announcementRepo.CountByUser(user.ID)
	if err != nil {
		return err
	}
	if total >= int64(s.cfg.Announcement.FreeLimit) {
		return ErrFreeLimitReached
	}
	return nil
}

// CheckMediaKind gates video and animation behind premium.
func (s *EntitlementService) CheckMediaKind(user *model.User, mediaKind string) error {
	if mediaKind == model.MediaPhoto {
		return nil
	}
	if !s.IsPremium(user) {
		return ErrMediaNotAllowed
	}
	return nil
}
