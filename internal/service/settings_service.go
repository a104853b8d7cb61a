package service

import (
	"errors"

	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"github.com/nihalcreates/pixagen-backend/pkg/qrcode"
	"go.uber.org/zap"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	qrService    *qrcode.QRService
	log          *zap.Logger
}

func NewSettingsService(settingsRepo *repository.SettingsRepository, qrService *qrcode.QRService, log *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		qrService:    qrService,
		log:          log,
	}
}

func (s *SettingsService) GetSettings() (*models.Settings, error) {
	return s.settingsRepo.Get()
}

// UpdateSettings replaces the whole settings value at once. Duplicate package
// ids are the only rejected input; this is admin-controlled data.
func (s *SettingsService) UpdateSettings(req models.UpdateSettingsRequest) (*models.Settings, error) {
	seen := make(map[uint]bool, len(req.CreditPackages))
	packages := make([]models.CreditPackage, 0, len(req.CreditPackages))
	for _, p := range req.CreditPackages {
		if p.ID != 0 {
			if seen[p.ID] {
				return nil, errors.New("duplicate package id in catalog")
			}
			seen[p.ID] = true
		}
		packages = append(packages, models.CreditPackage{
			ID:      p.ID,
			Name:    p.Name,
			Credits: p.Credits,
			Price:   p.Price,
		})
	}

	settings := &models.Settings{
		PaymentDetails: models.PaymentSettings{
			MethodName:    req.PaymentDetails.MethodName,
			AccountNumber: req.PaymentDetails.AccountNumber,
			QRCodeURL:     req.PaymentDetails.QRCodeURL,
		},
		CreditPackages: packages,
	}

	if err := s.settingsRepo.Replace(settings); err != nil {
		return nil, err
	}

	s.log.Info("settings updated", zap.Int("packages", len(packages)))

	return s.settingsRepo.Get()
}

// PaymentQR renders the configured payment destination as a PNG QR code.
func (s *SettingsService) PaymentQR(size int) ([]byte, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	return s.qrService.GeneratePaymentQR(
		settings.PaymentDetails.MethodName,
		settings.PaymentDetails.AccountNumber,
		size,
	)
}
