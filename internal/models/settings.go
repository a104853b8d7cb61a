package models

import "time"

// PaymentSettings is the single row describing how users send manual payments.
type PaymentSettings struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	MethodName    string    `json:"method_name" gorm:"not null"`
	AccountNumber string    `json:"account_number" gorm:"not null"`
	QRCodeURL     string    `json:"qr_code_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Settings is the full admin-editable configuration: payment details plus the
// credit package catalog. It is always read and written as a whole.
type Settings struct {
	PaymentDetails PaymentSettings `json:"payment_details"`
	CreditPackages []CreditPackage `json:"credit_packages"`
}

type UpdateSettingsRequest struct {
	PaymentDetails struct {
		MethodName    string `json:"method_name" validate:"required"`
		AccountNumber string `json:"account_number" validate:"required"`
		QRCodeURL     string `json:"qr_code_url"`
	} `json:"payment_details" validate:"required"`
	CreditPackages []UpdatePackageRequest `json:"credit_packages" validate:"required,dive"`
}

type UpdatePackageRequest struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name" validate:"required"`
	Credits int     `json:"credits" validate:"required,gt=0"`
	Price   float64 `json:"price" validate:"required,gt=0"`
}
