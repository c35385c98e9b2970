package service

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

// Achievement codes.
const (
	AchFirstTeam     = "first_team"
	AchFirstClub     = "first_club"
	AchTycoon        = "tycoon"
	AchPremiumMember = "premium_member"
	AchRecruiter     = "recruiter"
	AchHeadhunter    = "headhunter"
	AchGifted        = "gifted"
	AchExplorer      = "explorer"
)

const tycoonCrystals = 1000

// requiredSections must all be visited at least once for the explorer
// achievement. Set coverage decides, not visit count.
var requiredSections = []string{
	model.SectionProfile,
	model.SectionSearchTeam,
	model.SectionSearchClub,
	model.SectionCrystals,
	model.SectionShop,
	model.SectionAchievements,
}

// achievementDef couples a catalog code with a pure predicate over a
// point-in-time user snapshot.
type achievementDef struct {
	Code  string
	Check func(u *model.User) bool
}

// catalog is immutable and loaded once; order is the seed/display order.
var catalog = []achievementDef{
	{AchFirstTeam, func(u *model.User) bool { return u.TeamAnnouncements >= 1 }},
	{AchFirstClub, func(u *model.User) bool { return u.ClubAnnouncements >= 1 }},
	{AchTycoon, func(u *model.User) bool { return u.Crystals >= tycoonCrystals }},
	{AchPremiumMember, func(u *model.User) bool { return u.Premium }},
	{AchRecruiter, func(u *model.User) bool { return u.Referrals >= 5 }},
	{AchHeadhunter, func(u *model.User) bool { return u.Referrals >= 25 }},
	{AchGifted, func(u *model.User) bool { return true }}, // event-triggered
	{AchExplorer, func(u *model.User) bool {
		for _, s := range requiredSections {
			if !u.VisitedSections.Contains(s) {
				return false
			}
		}
		return true
	}},
}

// CatalogCodes returns the seed order of the catalog.
func CatalogCodes() []string {
	codes := make([]string, len(catalog))
	for i, def := range catalog {
		codes[i] = def.Code
	}
	return codes
}

// AchievementService awards badges after qualifying actions. Each
// trigger checks only the codes tied to its domain; awards are
// idempotent and never revoked.
type AchievementService struct {
	achievementRepo *repository.AchievementRepository
	userRepo        *repository.UserRepository
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	userRepo *repository.UserRepository,
) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		userRepo:        userRepo,
	}
}

// Seed loads the catalog into the database if it is empty.
func (s *AchievementService) Seed() error {
	return s.achievementRepo.Seed(CatalogCodes())
}

// check evaluates the given codes against a fresh user snapshot and
// returns the codes newly awarded.
func (s *AchievementService) check(userID int64, codes ...string) ([]string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	var awarded []string
	for _, code := range codes {
		def, ok := findDef(code)
		if !ok || !def.Check(user) {
			continue
		}

		ach, err := s.achievementRepo.GetByCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("achievements: code %q missing from catalog table", code)
				continue
			}
			return awarded, err
		}

		has, err := s.achievementRepo.HasAward(userID, ach.ID)
		if err != nil {
			return awarded, err
		}
		if has {
			continue
		}

		award := &model.UserAchievement{UserID: userID, AchievementID: ach.ID}
		if err := s.achievementRepo.CreateAward(award); err != nil {
			return awarded, err
		}
		awarded = append(awarded, code)
	}
	return awarded, nil
}

func findDef(code string) (achievementDef, bool) {
	for _, def := range catalog {
		if def.Code == code {
			return def, true
		}
	}
	return achievementDef{}, false
}

// OnAnnouncementCreated checks the first-announcement badges.
func (s *AchievementService) OnAnnouncementCreated(userID int64) ([]string, error) {
	return s.check(userID, AchFirstTeam, AchFirstClub)
}

// OnBalanceChanged checks balance-threshold badges.
func (s *AchievementService) OnBalanceChanged(userID int64) ([]string, error) {
	return s.check(userID, AchTycoon)
}

// OnPremiumGranted checks the premium badge.
func (s *AchievementService) OnPremiumGranted(userID int64) ([]string, error) {
	return s.check(userID, AchPremiumMember)
}

// OnReferral checks referral-count badges for the referrer.
func (s *AchievementService) OnReferral(referrerID int64) ([]string, error) {
	return s.check(referrerID, AchRecruiter, AchHeadhunter)
}

// OnGiftReceived awards the gift badge to the recipient.
func (s *AchievementService) OnGiftReceived(userID int64) ([]string, error) {
	return s.check(userID, AchGifted)
}

// VisitSection records a section visit and, only when the section is new
// for this user, re-checks the explorer badge.
func (s *AchievementService) VisitSection(userID int64, section string) ([]string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.VisitedSections.Contains(section) {
		return nil, nil
	}

	user.VisitedSections = append(user.VisitedSections, section)
	if err := s.userRepo.UpdateFields(userID, map[string]interface{}{
		"visited_sections": user.VisitedSections,
	}); err != nil {
		return nil, err
	}

	return s.check(userID, AchExplorer)
}

// ListEarned returns the user's earned achievement codes in catalog order.
func (s *AchievementService) ListEarned(userID int64) ([]string, error) {
	awards, err := s.achievementRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(awards))
	for _, a := range awards {
		if a.Achievement != nil {
			codes = append(codes, a.Achievement.Code)
		}
	}
	return codes, nil
}
