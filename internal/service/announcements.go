package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

var (
	ErrInvalidType      = errors.New("unknown announcement type")
	ErrInvalidMediaKind = errors.New("unknown media kind")
	ErrInvalidKeyword   = errors.New("unknown keyword")
	ErrDescriptionShort = errors.New("description too short")
	ErrKeywordClubType  = errors.New("keywords apply to team announcements only")
)

// CreateAnnouncementInput is the scratchpad output of the creation flow.
type CreateAnnouncementInput struct {
	Type        string
	MediaID     string
	MediaKind   string
	Description string
	Keyword     string // optional, team only
}

// AnnouncementService validates and stores new announcements.
type AnnouncementService struct {
	announcementRepo *repository.AnnouncementRepository
	userRepo         *repository.UserRepository
	entitlement      *EntitlementService
	achievement      *AchievementService
	cfg              *config.Config
}

func NewAnnouncementService(
	announcementRepo *repository.AnnouncementRepository,
	userRepo *repository.UserRepository,
	entitlement *EntitlementService,
	achievement *AchievementService,
	cfg *config.Config,
) *AnnouncementService {
	return &AnnouncementService{
		announcementRepo: announcementRepo,
		userRepo:         userRepo,
		entitlement:      entitlement,
		achievement:      achievement,
		cfg:              cfg,
	}
}

// Create runs validation, the entitlement quota check, the insert and
// the achievement trigger, in that order.
func (s *AnnouncementService) Create(userID int64, input CreateAnnouncementInput) (*model.Announcement, error) {
	if input.Type != model.TypeTeam && input.Type != model.TypeClub {
		return nil, ErrInvalidType
	}
	if !model.ValidMediaKind(input.MediaKind) {
		return nil, ErrInvalidMediaKind
	}

	description := strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(description) < s.cfg.Announcement.MinDescriptionLen {
		return nil, ErrDescriptionShort
	}

	var keyword *string
	if input.Keyword != "" {
		if input.Type != model.TypeTeam {
			return nil, ErrKeywordClubType
		}
		if !model.ValidKeyword(input.Keyword) {
			return nil, ErrInvalidKeyword
		}
		keyword = &input.Keyword
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.entitlement.CheckMediaKind(user, input.MediaKind); err != nil {
		return nil, err
	}
	if err := s.entitlement.CanCreateAnnouncement(user, input.Type); err != nil {
		return nil, err
	}

	announcement := &model.Announcement{
		UserID:      userID,
		Type:        input.Type,
		MediaID:     input.MediaID,
		MediaKind:   input.MediaKind,
		Description: description,
		Keyword:     keyword,
	}
	if err := s.announcementRepo.Create(announcement); err != nil {
		return nil, err
	}

	if err := s.userRepo.IncrementAnnouncementCount(userID, input.Type); err != nil {
		return nil, err
	}

	s.achievement.OnAnnouncementCreated(userID)
	return announcement, nil
}

func (s *AnnouncementService) Count() (int64, error) {
	return s.announcementRepo.Count()
}
