package models

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountBlocked      = errors.New("account is blocked, contact support")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientCredits = errors.New("insufficient credits, please purchase more")
	ErrUnknownPackage      = errors.New("package not found")
	ErrPaymentNotFound     = errors.New("payment request not found")
	ErrRequestNotPending   = errors.New("payment request is no longer pending")
	ErrPackageRemoved      = errors.New("package associated with this payment no longer exists")
	ErrMissingAPIKey       = errors.New("image API key is not configured")
)
