package service

import (
	"github.com/nihalcreates/pixagen-backend/internal/config"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"github.com/nihalcreates/pixagen-backend/pkg/bcrypt"
	jwtPkg "github.com/nihalcreates/pixagen-backend/pkg/jwt"
	"go.uber.org/zap"
)

// Notifier sends user-facing notifications. Satisfied by email.EmailService.
type Notifier interface {
	SendWelcomeEmail(email, fullName string, credits int) error
	SendPaymentApprovedEmail(email, packageName string, credits int) error
}

type AuthService struct {
	userRepo     *repository.UserRepository
	gallery      *repository.GalleryStore
	emailService Notifier
	cfg          *config.Config
	log          *zap.Logger
}

func NewAuthService(
	userRepo *repository.UserRepository,
	gallery *repository.GalleryStore,
	emailService Notifier,
	cfg *config.Config,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		gallery:      gallery,
		emailService: emailService,
		cfg:          cfg,
		log:          log,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	// The reserved admin address can never be registered
	if req.Email == s.cfg.AdminEmail {
		return nil, models.ErrEmailTaken
	}

	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
		Credits:  models.SignupCreditGrant,
		Role:     models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	go s.emailService.SendWelcomeEmail(user.Email, user.FullName, models.SignupCreditGrant)

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	// Admin check comes first; the admin identity lives in config, not in the
	// users table.
	if req.Email == s.cfg.AdminEmail {
		if s.cfg.AdminPassword == "" || req.Password != s.cfg.AdminPassword {
			return nil, models.ErrInvalidCredentials
		}

		token, err := jwtPkg.GenerateToken(s.cfg.AdminEmail, 0, models.RoleAdmin)
		if err != nil {
			return nil, err
		}

		return &models.AuthResponse{
			Token: token,
			User:  AdminUser(s.cfg.AdminEmail),
		}, nil
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, models.ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, models.ErrAccountBlocked
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

// Logout discards the caller's session gallery. Tokens are stateless, so
// there is nothing else to tear down server-side.
func (s *AuthService) Logout(userID uint) {
	s.gallery.Clear(userID)
}

// AdminUser synthesizes the privileged account presented to admin sessions.
// It is never written to the directory.
func AdminUser(email string) models.User {
	return models.User{
		FullName: "System Administrator",
		Email:    email,
		Credits:  999999,
		Role:     models.RoleAdmin,
	}
}
