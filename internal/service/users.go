package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
)

// UserService resolves a chat identity to a stored user, creating the
// row on first interaction.
type UserService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{userRepo: userRepo, cfg: cfg}
}

// GetOrCreate returns the stored user, seeding a new row with the
// configured start balances on first contact. The bool reports whether
// the user is new.
func (s *UserService) GetOrCreate(id int64, username, firstName string) (*model.User, bool, error) {
	user, err := s.userRepo.GetByID(id)
	if err == nil {
		// keep the display identity current
		if user.Username != username || user.FirstName != firstName {
			user.Username = username
			user.FirstName = firstName
			s.userRepo.UpdateFields(id, map[string]interface{}{
				"username":   username,
				"first_name": firstName,
			})
		}
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = &model.User{
		ID:        id,
		Username:  username,
		FirstName: firstName,
		Language:  s.cfg.Bot.DefaultLanguage,
		Crystals:  s.cfg.Economy.StartCrystals,
		Coins:     s.cfg.Economy.StartCoins,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) Get(id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetLanguage(id int64, language string) error {
	return s.userRepo.UpdateFields(id, map[string]interface{}{"language": language})
}

func (s *UserService) SetBlocked(id int64, blocked bool) error {
	return s.userRepo.SetBlocked(id, blocked)
}

func (s *UserService) CountUsers() (int64, error) {
	return s.userRepo.Count()
}

func (s *UserService) CountPremium() (int64, error) {
	return s.userRepo.CountPremium()
}
