package repository

import (
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"gorm.io/gorm"
)

type PaymentRequestRepository struct {
	db *gorm.DB
}

func NewPaymentRequestRepository(db *gorm.DB) *PaymentRequestRepository {
	return &PaymentRequestRepository{
		db: db,
	}
}

func (r *PaymentRequestRepository) Create(request *models.PaymentRequest) error {
	return r.db.Create(request).Error
}

func (r *PaymentRequestRepository) GetByID(id uint) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PaymentRequestRepository) GetByStripeSessionID(sessionID string) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := r.db.Where("stripe_session_id = ?", sessionID).First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *PaymentRequestRepository) GetAll() ([]models.PaymentRequest, error) {
	var requests []models.PaymentRequest
	err := r.db.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *PaymentRequestRepository) GetByUserID(userID uint) ([]models.PaymentRequest, error) {
	var requests []models.PaymentRequest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// UpdateStatusFromPending moves a request out of pending. The WHERE guard
// makes approved and rejected absorbing states: a request already in a
// terminal state is never touched again.
func (r *PaymentRequestRepository) UpdateStatusFromPending(id uint, status string) (bool, error) {
	result := r.db.Model(&models.PaymentRequest{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
