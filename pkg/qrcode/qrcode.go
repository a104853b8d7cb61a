package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders payment account details as scannable QR codes.
type QRService struct{}

func NewQRService() *QRService {
	return &QRService{}
}

// GeneratePaymentQR encodes the payment method and account number as a PNG
// QR code of the given pixel size.
func (s *QRService) GeneratePaymentQR(methodName, accountNumber string, size int) ([]byte, error) {
	content := fmt.Sprintf("%s:%s", methodName, accountNumber)

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}

	return png, nil
}
