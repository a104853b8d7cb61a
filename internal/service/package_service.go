package service

import (
	"errors"

	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"gorm.io/gorm"
)

type PackageService struct {
	packageRepo *repository.CreditPackageRepository
}

func NewPackageService(packageRepo *repository.CreditPackageRepository) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
	}
}

func (s *PackageService) GetAllPackages() ([]models.CreditPackage, error) {
	return s.packageRepo.GetAll()
}

func (s *PackageService) GetPackageByID(id uint) (*models.CreditPackage, error) {
	pkg, err := s.packageRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUnknownPackage
		}
		return nil, err
	}
	return pkg, nil
}
