package services

import (
	"context"
	"testing"

	"feinkost-backend/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoyaltyService(users ...*models.User) (*LoyaltyService, *fakeUserRepo, *fakeStampRepo) {
	userRepo := newFakeUserRepo(users...)
	stampRepo := &fakeStampRepo{}
	return NewLoyaltyService(userRepo, stampRepo), userRepo, stampRepo
}

func TestAwardStamps(t *testing.T) {
	customer := testCustomer()
	customer.LoyaltyStamps = 3
	svc, _, stampRepo := newTestLoyaltyService(customer)

	result, err := svc.AwardStamps(context.Background(), "staff-1", "qr-c1", 2)
	require.NoError(t, err)

	assert.Equal(t, 5, result.LoyaltyStamps)
	require.Len(t, stampRepo.events, 1)
	assert.Equal(t, "c1", stampRepo.events[0].UserID)
	assert.Equal(t, "staff-1", stampRepo.events[0].PerformedBy)
	assert.Equal(t, 2, stampRepo.events[0].Delta)
	assert.Equal(t, models.StampReasonScan, stampRepo.events[0].Reason)
}

func TestAwardStampsUnknownCard(t *testing.T) {
	svc, _, _ := newTestLoyaltyService(testCustomer())

	_, err := svc.AwardStamps(context.Background(), "staff-1", "qr-unbekannt", 1)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestAwardStampsRejectsStaffCards(t *testing.T) {
	staff := &models.User{ID: "e1", Role: models.RoleEmployee, QRCode: "qr-e1"}
	svc, _, _ := newTestLoyaltyService(staff)

	_, err := svc.AwardStamps(context.Background(), "staff-1", "qr-e1", 1)
	assert.ErrorIs(t, err, ErrNotACustomer)
}

func TestAwardStampsRejectsNonPositiveCount(t *testing.T) {
	svc, userRepo, _ := newTestLoyaltyService(testCustomer())

	_, err := svc.AwardStamps(context.Background(), "staff-1", "qr-c1", 0)
	assert.ErrorIs(t, err, ErrInvalidStamps)

	_, err = svc.AwardStamps(context.Background(), "staff-1", "qr-c1", -5)
	assert.ErrorIs(t, err, ErrInvalidStamps)
	assert.Empty(t, userRepo.updates)
}

func TestRedeemStamps(t *testing.T) {
	customer := testCustomer()
	customer.LoyaltyStamps = 10
	svc, _, stampRepo := newTestLoyaltyService(customer)

	result, err := svc.RedeemStamps(context.Background(), "staff-1", "qr-c1", 10)
	require.NoError(t, err)

	assert.Equal(t, 0, result.LoyaltyStamps)
	require.Len(t, stampRepo.events, 1)
	assert.Equal(t, -10, stampRepo.events[0].Delta)
	assert.Equal(t, models.StampReasonRedeem, stampRepo.events[0].Reason)
}

func TestRedeemStampsNeverGoesNegative(t *testing.T) {
	customer := testCustomer()
	customer.LoyaltyStamps = 4
	svc, userRepo, _ := newTestLoyaltyService(customer)

	_, err := svc.RedeemStamps(context.Background(), "staff-1", "qr-c1", 5)
	assert.ErrorIs(t, err, ErrNotEnoughStamps)
	assert.Equal(t, 4, customer.LoyaltyStamps)
	assert.Empty(t, userRepo.updates)
}

func TestRedeemPrizeClearsActivePrize(t *testing.T) {
	prize := "Gratis Espresso"
	customer := testCustomer()
	customer.ActivePrize = &prize
	svc, _, stampRepo := newTestLoyaltyService(customer)

	result, err := svc.RedeemPrize(context.Background(), "staff-1", "qr-c1")
	require.NoError(t, err)

	assert.Nil(t, result.ActivePrize)
	assert.Nil(t, customer.ActivePrize)
	require.Len(t, stampRepo.events, 1)
	assert.Equal(t, models.StampReasonPrize, stampRepo.events[0].Reason)
	assert.Equal(t, prize, stampRepo.events[0].Note)
}

func TestRedeemPrizeWithoutPrize(t *testing.T) {
	svc, _, _ := newTestLoyaltyService(testCustomer())

	_, err := svc.RedeemPrize(context.Background(), "staff-1", "qr-c1")
	assert.ErrorIs(t, err, ErrNoActivePrize)
}

func TestRedeemedPrizeRestoresEligibility(t *testing.T) {
	// After the prize is handed out, the customer can win again on the
	// next eligible spin.
	prize := "10% Rabatt"
	customer := testCustomer()
	customer.ActivePrize = &prize

	userRepo := newFakeUserRepo(customer)
	loyaltySvc := NewLoyaltyService(userRepo, &fakeStampRepo{})
	promoSvc := NewPromotionService(userRepo, &fakePromotionRepo{cfg: testWheelConfig()}, &fakeStampRepo{})
	promoSvc.randIntn = func(n int) int { return 0 }

	_, err := promoSvc.Spin(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrPrizeOutstanding)

	_, err = loyaltySvc.RedeemPrize(context.Background(), "staff-1", "qr-c1")
	require.NoError(t, err)

	result, err := promoSvc.Spin(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, result.Prize)
}

func TestGetCardIncludesHistory(t *testing.T) {
	customer := testCustomer()
	customer.LoyaltyStamps = 2
	svc, _, stampRepo := newTestLoyaltyService(customer)

	stampRepo.events = []*models.StampEvent{
		{UserID: "c1", Delta: 1, Reason: models.StampReasonScan},
		{UserID: "c1", Delta: 1, Reason: models.StampReasonScan},
		{UserID: "anderer", Delta: 1, Reason: models.StampReasonScan},
	}

	card, err := svc.GetCard(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "qr-c1", card.QRCode)
	assert.Equal(t, 2, card.LoyaltyStamps)
	assert.Len(t, card.History, 2)
}
