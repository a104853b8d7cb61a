package repository

import (
	"errors"

	"github.com/nihalcreates/pixagen-backend/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	db          *gorm.DB
	packageRepo *CreditPackageRepository
}

func NewSettingsRepository(db *gorm.DB, packageRepo *CreditPackageRepository) *SettingsRepository {
	return &SettingsRepository{
		db:          db,
		packageRepo: packageRepo,
	}
}

func (r *SettingsRepository) Get() (*models.Settings, error) {
	var details models.PaymentSettings
	if err := r.db.First(&details).Error; err != nil {
		return nil, err
	}

	packages, err := r.packageRepo.GetAll()
	if err != nil {
		return nil, err
	}

	return &models.Settings{
		PaymentDetails: details,
		CreditPackages: packages,
	}, nil
}

// Replace writes the whole settings value in one transaction: payment details
// and the complete package catalog together, never field by field.
func (r *SettingsRepository) Replace(settings *models.Settings) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current models.PaymentSettings
		if err := tx.First(&current).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			current = models.PaymentSettings{}
		}

		current.MethodName = settings.PaymentDetails.MethodName
		current.AccountNumber = settings.PaymentDetails.AccountNumber
		current.QRCodeURL = settings.PaymentDetails.QRCodeURL
		if err := tx.Save(&current).Error; err != nil {
			return err
		}

		return r.packageRepo.ReplaceAll(tx, settings.CreditPackages)
	})
}
