package models

import "time"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// PaymentRequest is a manual top-up submitted by a user for admin verification.
// UserEmail, PackageName, Credits and Amount are snapshots taken at submission
// time so later catalog edits never change an already-submitted request.
type PaymentRequest struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null"`
	UserEmail       string    `json:"user_email" gorm:"not null"`
	PackageID       uint      `json:"package_id" gorm:"not null"`
	PackageName     string    `json:"package_name" gorm:"not null"`
	Credits         int       `json:"credits" gorm:"not null"`
	Amount          float64   `json:"amount" gorm:"not null"`
	TrxID           string    `json:"trx_id" gorm:"not null"`
	Status          string    `json:"status" gorm:"not null;default:'pending'"`
	StripeSessionID string    `json:"-" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SubmitPaymentRequest struct {
	PackageID uint   `json:"package_id" validate:"required"`
	TrxID     string `json:"trx_id" validate:"required"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
