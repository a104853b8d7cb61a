package repository

import (
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"gorm.io/gorm"
)

type CreditPackageRepository struct {
	db *gorm.DB
}

func NewCreditPackageRepository(db *gorm.DB) *CreditPackageRepository {
	return &CreditPackageRepository{
		db: db,
	}
}

func (r *CreditPackageRepository) GetByID(id uint) (*models.CreditPackage, error) {
	var creditPackage models.CreditPackage
	err := r.db.First(&creditPackage, id).Error
	if err != nil {
		return nil, err
	}
	return &creditPackage, nil
}

func (r *CreditPackageRepository) GetAll() ([]models.CreditPackage, error) {
	var packages []models.CreditPackage
	err := r.db.Order("price ASC").Find(&packages).Error
	return packages, err
}

// ReplaceAll swaps the catalog for the given list inside one transaction.
// Packages carrying an existing ID are updated in place so pending payment
// requests keep resolving; packages missing from the list are removed.
func (r *CreditPackageRepository) ReplaceAll(tx *gorm.DB, packages []models.CreditPackage) error {
	keep := make([]uint, 0, len(packages))
	for i := range packages {
		if packages[i].ID != 0 {
			keep = append(keep, packages[i].ID)
		}
	}

	del := tx.Where("1 = 1")
	if len(keep) > 0 {
		del = tx.Where("id NOT IN ?", keep)
	}
	if err := del.Delete(&models.CreditPackage{}).Error; err != nil {
		return err
	}

	for i := range packages {
		if err := tx.Save(&packages[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
