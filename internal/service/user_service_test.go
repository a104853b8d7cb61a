package service

import (
	"testing"

	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(db), newTestConfig(), zap.NewNop())
}

func TestBlockUnblockIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	user := createUser(t, db, "a@example.com", 5)

	require.NoError(t, svc.BlockUser(user.ID))
	require.NoError(t, svc.BlockUser(user.ID)) // second block is a no-op

	got, err := svc.GetProfile(user.ID, models.RoleUser)
	require.NoError(t, err)
	assert.True(t, got.IsBlocked)

	require.NoError(t, svc.UnblockUser(user.ID))
	require.NoError(t, svc.UnblockUser(user.ID))

	got, err = svc.GetProfile(user.ID, models.RoleUser)
	require.NoError(t, err)
	assert.False(t, got.IsBlocked)
}

func TestBlockUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	assert.ErrorIs(t, svc.BlockUser(99), models.ErrUserNotFound)
}

func TestGrantCredits(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	user := createUser(t, db, "a@example.com", 5)

	require.NoError(t, svc.GrantCredits(user.ID, 50))
	assert.Equal(t, 55, userCredits(t, db, user.ID))

	assert.ErrorIs(t, svc.GrantCredits(99, 50), models.ErrUserNotFound)
}

func TestAdminProfileIsSynthesized(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(t, db)

	admin, err := svc.GetProfile(0, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin@pixagen.test", admin.Email)
	assert.True(t, admin.IsAdmin())

	// The admin identity never has a directory row
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
