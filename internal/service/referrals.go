package service

import (
	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

// ReferralService registers first-contact referrals and pays the
// referrer's coin reward.
type ReferralService struct {
	referralRepo *repository.ReferralRepository
	userRepo     *repository.UserRepository
	achievement  *AchievementService
	cfg          *config.Config
}

func NewReferralService(
	referralRepo *repository.ReferralRepository,
	userRepo *repository.UserRepository,
	achievement *AchievementService,
	cfg *config.Config,
) *ReferralService {
	return &ReferralService{
		referralRepo: referralRepo,
		userRepo:     userRepo,
		achievement:  achievement,
		cfg:          cfg,
	}
}

// Register records the referral at most once: self-referrals and users
// already referred by anyone are silently skipped without an error,
// the /start flow must not fail over a stale deep link.
func (s *ReferralService) Register(referrerID, referredID int64) (bool, error) {
	if referrerID == referredID || referrerID == 0 {
		return false, nil
	}

	if _, err := s.userRepo.GetByID(referrerID); err != nil {
		return false, nil
	}

	exists, err := s.referralRepo.ReferredExists(referredID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	ref := &model.Referral{ReferrerID: referrerID, ReferredID: referredID}
	if err := s.referralRepo.Create(ref); err != nil {
		return false, err
	}

	if err := s.userRepo.IncrementReferrals(referrerID); err != nil {
		return false, err
	}
	if err := s.userRepo.AddCoins(referrerID, s.cfg.Economy.ReferralReward); err != nil {
		return false, err
	}

	s.achievement.OnReferral(referrerID)
	return true, nil
}
