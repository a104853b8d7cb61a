package service

import (
	"errors"

	"github.com/nihalcreates/pixagen-backend/internal/config"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
	log      *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, cfg *config.Config, log *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		cfg:      cfg,
		log:      log,
	}
}

// GetProfile resolves the account behind a session. Admin sessions have no
// directory row, so the privileged identity is synthesized.
func (s *UserService) GetProfile(userID uint, role string) (*models.User, error) {
	if role == models.RoleAdmin {
		admin := AdminUser(s.cfg.AdminEmail)
		return &admin, nil
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *UserService) BlockUser(userID uint) error {
	return s.setBlocked(userID, true)
}

func (s *UserService) UnblockUser(userID uint) error {
	return s.setBlocked(userID, false)
}

func (s *UserService) setBlocked(userID uint, blocked bool) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrUserNotFound
		}
		return err
	}

	if err := s.userRepo.SetBlocked(userID, blocked); err != nil {
		return err
	}

	s.log.Info("user block flag changed",
		zap.Uint("user_id", userID),
		zap.Bool("blocked", blocked))
	return nil
}

// GrantCredits adds credits to an account outside the payment flow. Amount
// must be positive; the handler validates that before calling.
func (s *UserService) GrantCredits(userID uint, amount int) error {
	if err := s.userRepo.AddCredits(userID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrUserNotFound
		}
		return err
	}

	s.log.Info("credits granted", zap.Uint("user_id", userID), zap.Int("amount", amount))
	return nil
}
