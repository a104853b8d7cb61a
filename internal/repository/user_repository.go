package repository

import (
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) SetBlocked(id uint, blocked bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("is_blocked", blocked).Error
}

// AddCredits increments a user's balance unconditionally.
func (r *UserRepository) AddCredits(id uint, amount int) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DebitOneCredit decrements the balance by exactly one. The guard in the
// WHERE clause keeps the stored balance from ever going negative; the
// returned bool reports whether a credit was actually taken.
func (r *UserRepository) DebitOneCredit(id uint) (bool, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND credits >= 1", id).
		UpdateColumn("credits", gorm.Expr("credits - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
