package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

var (
	ErrSponsorNotFound = errors.New("sponsor not found")
	ErrNotSubscribed   = errors.New("not subscribed to the sponsor channel")
	ErrAlreadyClaimed  = errors.New("sponsor reward already claimed")
)

// SponsorService pays one-time rewards for subscribing to partner
// channels. Membership itself is verified by the transport layer.
type SponsorService struct {
	sponsorRepo *repository.SponsorRepository
	userRepo    *repository.UserRepository
	achievement *AchievementService
}

func NewSponsorService(
	sponsorRepo *repository.SponsorRepository,
	userRepo *repository.UserRepository,
	achievement *AchievementService,
) *SponsorService {
	return &SponsorService{
		sponsorRepo: sponsorRepo,
		userRepo:    userRepo,
		achievement: achievement,
	}
}

func (s *SponsorService) ListActive() ([]*model.Sponsor, error) {
	return s.sponsorRepo.ListActive()
}

func (s *SponsorService) Get(sponsorID int64) (*model.Sponsor, error) {
	sponsor, err := s.sponsorRepo.GetByID(sponsorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}
	return sponsor, nil
}

// ClaimReward pays the sponsor's coin reward once per (user, sponsor).
// subscribed is the transport's membership verdict.
func (s *SponsorService) ClaimReward(userID, sponsorID int64, subscribed bool) (int, error) {
	sponsor, err := s.Get(sponsorID)
	if err != nil {
		return 0, err
	}
	if !subscribed {
		return 0, ErrNotSubscribed
	}

	claimed, err := s.sponsorRepo.ClaimExists(userID, sponsorID)
	if err != nil {
		return 0, err
	}
	if claimed {
		return 0, ErrAlreadyClaimed
	}

	claim := &model.SponsorClaim{UserID: userID, SponsorID: sponsorID}
	if err := s.sponsorRepo.CreateClaim(claim); err != nil {
		return 0, err
	}
	if err := s.userRepo.AddCoins(userID, sponsor.Reward); err != nil {
		return 0, err
	}

	return sponsor.Reward, nil
}
