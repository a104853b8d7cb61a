package service

import (
	"testing"

	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSnapshotsPackageFields(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(t, db)

	user := createUser(t, db, "buyer@example.com", 0)
	pkg := createPackage(t, db, "Starter Pack", 100, 50)

	request, err := svc.Submit(user.ID, models.SubmitPaymentRequest{PackageID: pkg.ID, TrxID: "TX123"})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPending, request.Status)
	assert.Equal(t, user.Email, request.UserEmail)
	assert.Equal(t, "Starter Pack", request.PackageName)
	assert.Equal(t, 100, request.Credits)
	assert.Equal(t, 50.0, request.Amount)

	// Submission alone never moves the balance
	assert.Equal(t, 0, userCredits(t, db, user.ID))
}

func TestSubmitUnknownPackage(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(t, db)

	user := createUser(t, db, "buyer@example.com", 0)

	_, err := svc.Submit(user.ID, models.SubmitPaymentRequest{PackageID: 999, TrxID: "TX123"})
	assert.ErrorIs(t, err, models.ErrUnknownPackage)
}

func TestApproveCreditsOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(t, db)

	user := createUser(t, db, "buyer@example.com", 0)
	pkg := createPackage(t, db, "Starter Pack", 100, 50)

	request, err := svc.Submit(user.ID, models.SubmitPaymentRequest{PackageID: pkg.ID, TrxID: "TX123"})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(request.ID))

	assert.Equal(t, 100, userCredits(t, db, user.ID))

	updated, err := svc.GetUserRequests(user.ID)
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, models.PaymentStatusApproved, updated[0].Status)
}

func TestApproveGrantsSnapshotDespiteCatalogEdit(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(t, db)

	user := createUser(t, db, "buyer@example.com", 0)
	pkg := createPackage(t, db, "Starter Pack", 100, 50)

	request, err := svc.Submit(user.ID, models.SubmitPaymentRequest{PackageID: pkg.ID, TrxID: "TX123"})
	require.NoError(t, err)

	// Edit the package after submission; the request keeps its snapshot
	require.NoError(t, db.Model(&models.CreditPackage{}).Where("id = ?", pkg.ID).
		Updates(map[string]interface{}{"credits": 9999, "name": "Renamed"}).Error)

	require.NoError(t, svc.Approve(request.ID))
	assert.Equal(t, 100, userCredits(t, db, user.ID))
}

func TestApproveFailsWhenPackageDeleted(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(t, db)

	user := createUser(t, db, "buyer@example.com", 0)
	pkg := createPackage(t, db, "Starter Pack", 100, 50)

	request, err := svc.Submit(user.ID, models.SubmitPaymentRequest{PackageID: pkg.ID, TrxID: "TX123"})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.CreditPackage{}, pkg.ID).Error)

	err = svc.Approve(request.ID)
	assert.ErrorIs(t, err, models.ErrPackageRemoved)

	// Nothing granted, request still pending
	assert.Equal(t, 0, userCredits(t, db, user.ID))
	pending, err := svc.GetUserRequests(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, pending[0].Status)
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(t, db)

	user := createUser(t, db, "buyer@example.com", 0)
	pkg := createPackage(t, db, "Starter Pack", 100, 50)

	request, err := svc.Submit(user.ID, models.SubmitPaymentRequest{PackageID: pkg.ID, TrxID: "TX123"})
	require.NoError(t, err)
	require.NoError(t, svc.Approve(request.ID))

	// Approving or rejecting again is refused and moves no credits
	assert.ErrorIs(t, svc.Approve(request.ID), models.ErrRequestNotPending)
	assert.ErrorIs(t, svc.Reject(request.ID), models.ErrRequestNotPending)
	assert.Equal(t, 100, userCredits(t, db, user.ID))

	// Same for a rejected request
	second, err := svc.Submit(user.ID, models.SubmitPaymentRequest{PackageID: pkg.ID, TrxID: "TX124"})
	require.NoError(t, err)
	require.NoError(t, svc.Reject(second.ID))
	assert.ErrorIs(t, svc.Approve(second.ID), models.ErrRequestNotPending)
	assert.Equal(t, 100, userCredits(t, db, user.ID))
}

func TestApproveUnknownPayment(t *testing.T) {
	db := newTestDB(t)
	svc := newPaymentService(t, db)

	assert.ErrorIs(t, svc.Approve(42), models.ErrPaymentNotFound)
	assert.ErrorIs(t, svc.Reject(42), models.ErrPaymentNotFound)
}
