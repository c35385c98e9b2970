package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserBlocked          = errors.New("user is blocked")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrSelfTransfer         = errors.New("cannot transfer to yourself")
	ErrInsufficientCrystals = errors.New("not enough crystals")
	ErrBonusCooldown        = errors.New("daily bonus already claimed")
	ErrUnknownPlan          = errors.New("unknown premium plan")
)

// WalletService mutates crystal and coin balances. Every debit is a
// conditional single-row UPDATE, so balances cannot go negative even
// under concurrent transfers from the same sender.
type WalletService struct {
	userRepo    *repository.UserRepository
	entitlement *EntitlementService
	achievement *AchievementService
	cfg         *config.Config
}

func NewWalletService(
	userRepo *repository.UserRepository,
	entitlement *EntitlementService,
	achievement *AchievementService,
	cfg *config.Config,
) *WalletService {
	return &WalletService{
		userRepo:    userRepo,
		entitlement: entitlement,
		achievement: achievement,
		cfg:         cfg,
	}
}

// TransferCrystals moves crystals from one user to another.
func (s *WalletService) TransferCrystals(fromID, toID int64, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromID == toID {
		return ErrSelfTransfer
	}

	recipient, err := s.userRepo.GetByID(toID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if recipient.Blocked {
		return ErrUserBlocked
	}

	ok, err := s.userRepo.SpendCrystals(fromID, amount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInsufficientCrystals
	}

	if err := s.userRepo.AddCrystals(toID, amount); err != nil {
		return err
	}

	s.achievement.OnGiftReceived(toID)
	s.achievement.OnBalanceChanged(toID)
	return nil
}

// ClaimDailyBonus credits the configured coin bonus once per cooldown
// window, measured from the last claim.
func (s *WalletService) ClaimDailyBonus(userID int64) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	cooldown := time.Duration(s.cfg.Economy.DailyBonusCooldown) * time.Hour
	if user.LastBonusAt != nil && time.Since(*user.LastBonusAt) < cooldown {
		return 0, ErrBonusCooldown
	}

	if err := s.userRepo.AddCoins(userID, s.cfg.Economy.DailyBonusCoins); err != nil {
		return 0, err
	}
	if err := s.userRepo.SetLastBonusAt(userID, time.Now()); err != nil {
		return 0, err
	}

	return s.cfg.Economy.DailyBonusCoins, nil
}

// BuyPremium exchanges crystals for a premium plan. days == 0 buys the
// forever plan.
func (s *WalletService) BuyPremium(userID int64, days int) error {
	price, ok := s.planPrice(days)
	if !ok {
		return ErrUnknownPlan
	}

	paid, err := s.userRepo.SpendCrystals(userID, price)
	if err != nil {
		return err
	}
	if !paid {
		return ErrInsufficientCrystals
	}

	if err := s.entitlement.GrantPremium(userID, days); err != nil {
		return err
	}
	s.achievement.OnPremiumGranted(userID)
	return nil
}

func (s *WalletService) planPrice(days int) (int, bool) {
	if days == 0 {
		if s.cfg.Premium.ForeverPrice > 0 {
			return s.cfg.Premium.ForeverPrice, true
		}
		return 0, false
	}
	for _, plan := range s.cfg.Premium.Plans {
		if plan.Days == days {
			return plan.Price, true
		}
	}
	return 0, false
}

// Plans exposes the purchasable plans for the shop keyboard.
func (s *WalletService) Plans() []config.PremiumPlan {
	return s.cfg.Premium.Plans
}
