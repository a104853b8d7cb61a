package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"github.com/nihalcreates/pixagen-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/price"
	"github.com/stripe/stripe-go/v74/product"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentService struct {
	stripeService *payment.StripeService
	userRepo      *repository.UserRepository
	packageRepo   *repository.CreditPackageRepository
	requestRepo   *repository.PaymentRequestRepository
	emailService  Notifier
	log           *zap.Logger
}

func NewPaymentService(
	stripeService *payment.StripeService,
	userRepo *repository.UserRepository,
	packageRepo *repository.CreditPackageRepository,
	requestRepo *repository.PaymentRequestRepository,
	emailService Notifier,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		stripeService: stripeService,
		userRepo:      userRepo,
		packageRepo:   packageRepo,
		requestRepo:   requestRepo,
		emailService:  emailService,
		log:           log,
	}
}

// Submit records a manual top-up for admin verification. Package name, credit
// quantity and price are copied onto the request so later catalog edits never
// rewrite what was submitted.
func (s *PaymentService) Submit(userID uint, req models.SubmitPaymentRequest) (*models.PaymentRequest, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	pkg, err := s.packageRepo.GetByID(req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUnknownPackage
		}
		return nil, err
	}

	request := &models.PaymentRequest{
		UserID:      user.ID,
		UserEmail:   user.Email,
		PackageID:   pkg.ID,
		PackageName: pkg.Name,
		Credits:     pkg.Credits,
		Amount:      pkg.Price,
		TrxID:       req.TrxID,
		Status:      models.PaymentStatusPending,
	}

	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}

	s.log.Info("payment request submitted",
		zap.Uint("payment_id", request.ID),
		zap.Uint("user_id", user.ID),
		zap.String("package", pkg.Name))

	return request, nil
}

// Approve verifies a pending request and credits its owner with the credit
// quantity snapshotted at submission. The snapshotted package must still
// exist in the catalog; a request whose package was removed fails loudly
// instead of granting nothing.
func (s *PaymentService) Approve(paymentID uint) error {
	request, err := s.requestRepo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrPaymentNotFound
		}
		return err
	}

	if request.Status != models.PaymentStatusPending {
		return models.ErrRequestNotPending
	}

	if _, err := s.packageRepo.GetByID(request.PackageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrPackageRemoved
		}
		return err
	}

	if _, err := s.userRepo.GetByID(request.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrUserNotFound
		}
		return err
	}

	moved, err := s.requestRepo.UpdateStatusFromPending(paymentID, models.PaymentStatusApproved)
	if err != nil {
		return err
	}
	if !moved {
		return models.ErrRequestNotPending
	}

	if err := s.userRepo.AddCredits(request.UserID, request.Credits); err != nil {
		return fmt.Errorf("payment approved but crediting failed: %w", err)
	}

	go s.emailService.SendPaymentApprovedEmail(request.UserEmail, request.PackageName, request.Credits)

	s.log.Info("payment approved",
		zap.Uint("payment_id", paymentID),
		zap.Uint("user_id", request.UserID),
		zap.Int("credits", request.Credits))

	return nil
}

// Reject moves a pending request to rejected. Terminal requests stay as
// they are.
func (s *PaymentService) Reject(paymentID uint) error {
	if _, err := s.requestRepo.GetByID(paymentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrPaymentNotFound
		}
		return err
	}

	moved, err := s.requestRepo.UpdateStatusFromPending(paymentID, models.PaymentStatusRejected)
	if err != nil {
		return err
	}
	if !moved {
		return models.ErrRequestNotPending
	}

	s.log.Info("payment rejected", zap.Uint("payment_id", paymentID))
	return nil
}

func (s *PaymentService) GetAllRequests() ([]models.PaymentRequest, error) {
	return s.requestRepo.GetAll()
}

func (s *PaymentService) GetUserRequests(userID uint) ([]models.PaymentRequest, error) {
	return s.requestRepo.GetByUserID(userID)
}

// CreateCheckoutSession starts a Stripe card payment for a package. The
// resulting request follows the same lifecycle as a manual one; the webhook
// approves it when Stripe confirms the charge.
func (s *PaymentService) CreateCheckoutSession(userID uint, packageID uint) (*models.CheckoutSession, error) {
	pkg, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUnknownPackage
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	productParams := &stripe.ProductParams{
		Name:        stripe.String(pkg.Name),
		Description: stripe.String(fmt.Sprintf("%d image credits", pkg.Credits)),
	}
	prod, err := product.New(productParams)
	if err != nil {
		return nil, err
	}

	priceParams := &stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(int64(pkg.Price * 100)), // USD to cents
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
	}
	p, err := price.New(priceParams)
	if err != nil {
		return nil, err
	}

	session, err := s.stripeService.CreateCheckoutSession(
		user.Email,
		p.ID,
		map[string]string{
			"user_id":    fmt.Sprintf("%d", userID),
			"package_id": fmt.Sprintf("%d", packageID),
		},
	)
	if err != nil {
		return nil, err
	}

	request := &models.PaymentRequest{
		UserID:          user.ID,
		UserEmail:       user.Email,
		PackageID:       pkg.ID,
		PackageName:     pkg.Name,
		Credits:         pkg.Credits,
		Amount:          pkg.Price,
		TrxID:           "stripe:" + session.ID,
		Status:          models.PaymentStatusPending,
		StripeSessionID: session.ID,
	}

	if err := s.requestRepo.Create(request); err != nil {
		return nil, err
	}

	return &models.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// HandleStripeWebhook reacts to checkout outcomes. A completed session
// approves the matching request through the same path an admin would take;
// an expired or failed session rejects it.
func (s *PaymentService) HandleStripeWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		request, err := s.requestRepo.GetByStripeSessionID(session.ID)
		if err != nil {
			return err
		}

		return s.Approve(request.ID)

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		request, err := s.requestRepo.GetByStripeSessionID(session.ID)
		if err != nil {
			return err
		}

		return s.Reject(request.ID)
	}

	return nil
}
