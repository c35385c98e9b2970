package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

// Redemption rejections carry distinct reasons so the caller can render
// a precise message instead of a generic failure.
var (
	ErrPromoNotFound    = errors.New("promo code not found")
	ErrPromoInactive    = errors.New("promo code is inactive")
	ErrPromoExpired     = errors.New("promo code has expired")
	ErrPromoExhausted   = errors.New("promo code has no uses left")
	ErrPromoAlreadyUsed = errors.New("promo code already used by this user")
	ErrPromoExists      = errors.New("promo code already exists")
)

// PromoService redeems and administers promo codes.
type PromoService struct {
	promoRepo   *repository.PromoRepository
	entitlement *EntitlementService
	achievement *AchievementService
}

func NewPromoService(
	promoRepo *repository.PromoRepository,
	entitlement *EntitlementService,
	achievement *AchievementService,
) *PromoService {
	return &PromoService{
		promoRepo:   promoRepo,
		entitlement: entitlement,
		achievement: achievement,
	}
}

// Redeem runs the full redemption sequence for (code, user): existence,
// active flag, expiry, remaining uses, per-user uniqueness; then records
// the use, auto-deactivates on exhaustion and grants premium.
func (s *PromoService) Redeem(userID int64, code string) (*model.PromoCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	promo, err := s.promoRepo.GetByCode(normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}

	if !promo.Active {
		return nil, ErrPromoInactive
	}
	if promo.ExpiresAt != nil && time.Now().After(*promo.ExpiresAt) {
		return nil, ErrPromoExpired
	}
	if promo.Uses >= promo.MaxUses {
		return nil, ErrPromoExhausted
	}

	used, err := s.promoRepo.UseExists(promo.ID, userID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, ErrPromoAlreadyUsed
	}

	use := &model.PromoUse{PromoCodeID: promo.ID, UserID: userID}
	if err := s.promoRepo.CreateUse(use); err != nil {
		return nil, err
	}
	if err := s.promoRepo.IncrementUses(promo.ID); err != nil {
		return nil, err
	}
	promo.Uses++

	// use-count == max-use flips the code off the instant it is reached
	if promo.Uses >= promo.MaxUses {
		if err := s.promoRepo.SetActive(promo.ID, false); err != nil {
			return nil, err
		}
		promo.Active = false
	}

	if err := s.entitlement.GrantPremium(userID, promo.Days); err != nil {
		return nil, err
	}
	s.achievement.OnPremiumGranted(userID)

	return promo, nil
}

// Create registers a new code; the code string is upper-normalized.
func (s *PromoService) Create(code string, days, maxUses int, expiresAt *time.Time) (*model.PromoCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	if _, err := s.promoRepo.GetByCode(normalized); err == nil {
		return nil, ErrPromoExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	promo := &model.PromoCode{
		Code:      normalized,
		Days:      days,
		MaxUses:   maxUses,
		Active:    true,
		ExpiresAt: expiresAt,
	}
	if err := s.promoRepo.Create(promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// Deactivate short-circuits redemption regardless of remaining uses.
func (s *PromoService) Deactivate(code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	promo, err := s.promoRepo.GetByCode(normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromoNotFound
		}
		return err
	}
	return s.promoRepo.SetActive(promo.ID, false)
}
