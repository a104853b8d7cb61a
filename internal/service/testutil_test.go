package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/nihalcreates/pixagen-backend/internal/config"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database keeps every pooled connection on the same
	// store while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CreditPackage{},
		&models.PaymentRequest{},
		&models.PaymentSettings{},
	))

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		AdminEmail:    "admin@pixagen.test",
		AdminPassword: "super-secret",
	}
}

func createUser(t *testing.T, db *gorm.DB, email string, credits int) *models.User {
	t.Helper()

	user := &models.User{
		FullName: "Test User",
		Email:    email,
		Password: "$2a$10$irrelevanthashvalueirrelevanthashvalueirrelevanthash",
		Credits:  credits,
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPackage(t *testing.T, db *gorm.DB, name string, credits int, price float64) *models.CreditPackage {
	t.Helper()

	pkg := &models.CreditPackage{
		Name:    name,
		Credits: credits,
		Price:   price,
	}
	require.NoError(t, db.Create(pkg).Error)
	return pkg
}

func userCredits(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user.Credits
}

// fakeNotifier records notifications instead of sending them.
type fakeNotifier struct {
	mu       sync.Mutex
	welcomes []string
	approved []string
}

func (n *fakeNotifier) SendWelcomeEmail(email, fullName string, credits int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.welcomes = append(n.welcomes, email)
	return nil
}

func (n *fakeNotifier) SendPaymentApprovedEmail(email, packageName string, credits int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, email)
	return nil
}

func newPaymentService(t *testing.T, db *gorm.DB) *PaymentService {
	t.Helper()

	return NewPaymentService(
		nil, // stripe is not exercised in these tests
		repository.NewUserRepository(db),
		repository.NewCreditPackageRepository(db),
		repository.NewPaymentRequestRepository(db),
		&fakeNotifier{},
		zap.NewNop(),
	)
}
