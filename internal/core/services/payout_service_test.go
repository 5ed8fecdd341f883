package services_test

import (
	"context"
	"sync"
	"testing"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/core/domain"
	"investhub/internal/core/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakePayoutRepo implements repositories.PayoutRepository in memory
type fakePayoutRepo struct {
	mu      sync.Mutex
	payouts []*models.Payout
}

func (f *fakePayoutRepo) Create(ctx context.Context, payout *models.Payout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payouts = append(f.payouts, payout)
	return nil
}

func (f *fakePayoutRepo) List(ctx context.Context, offset, limit int) ([]*models.Payout, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Payout{}, f.payouts...), int64(len(f.payouts)), nil
}

func (f *fakePayoutRepo) ExistsForRequestSince(ctx context.Context, requestID, payoutType string, since int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payouts {
		if p.RequestID == requestID && p.Type == payoutType {
			return true, nil
		}
	}
	return false, nil
}

// fakePlanRepo implements repositories.PlanRepository keyed by name
type fakePlanRepo struct {
	plans map[string]*models.InvestmentPlan
}

func (f *fakePlanRepo) Create(ctx context.Context, plan *models.InvestmentPlan) error { return nil }
func (f *fakePlanRepo) GetByID(ctx context.Context, id uint) (*models.InvestmentPlan, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePlanRepo) GetByName(ctx context.Context, name string) (*models.InvestmentPlan, error) {
	p, ok := f.plans[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
func (f *fakePlanRepo) List(ctx context.Context) ([]*models.InvestmentPlan, error)       { return nil, nil }
func (f *fakePlanRepo) ListActive(ctx context.Context) ([]*models.InvestmentPlan, error) { return nil, nil }
func (f *fakePlanRepo) Update(ctx context.Context, plan *models.InvestmentPlan) error    { return nil }
func (f *fakePlanRepo) Delete(ctx context.Context, id uint) error                        { return nil }

func TestMonthlyProfitRunIsIdempotent(t *testing.T) {
	active := pendingRequest("r1")
	active.Status = string(domain.StatusActive)
	active.InvestmentAmount = 120000

	requests := newFakeRequestRepo(active)
	payouts := &fakePayoutRepo{}
	plans := &fakePlanRepo{plans: map[string]*models.InvestmentPlan{
		"Growth": {Name: "Growth", ROIPercentage: 18, DurationMonths: 12},
	}}

	svc := services.NewPayoutService(payouts, requests, plans)

	created, err := svc.GenerateMonthlyProfits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, created)

	// 120000 * 18% / 12 months
	require.Len(t, payouts.payouts, 1)
	require.InDelta(t, 1800.0, payouts.payouts[0].Amount, 0.001)
	require.Equal(t, models.PayoutTypeProfit, payouts.payouts[0].Type)
	require.Equal(t, "r1", payouts.payouts[0].RequestID)

	// Re-running the same month creates nothing
	created, err = svc.GenerateMonthlyProfits(context.Background())
	require.NoError(t, err)
	require.Zero(t, created)
	require.Len(t, payouts.payouts, 1)
}

func TestMonthlyProfitCoversConfirmedApproved(t *testing.T) {
	confirmed := pendingRequest("r1")
	confirmed.Status = string(domain.StatusApproved)
	confirmed.IsConfirmed = true
	confirmed.InvestmentAmount = 60000

	unconfirmed := pendingRequest("r2")
	unconfirmed.Status = string(domain.StatusApproved)

	payouts := &fakePayoutRepo{}
	plans := &fakePlanRepo{plans: map[string]*models.InvestmentPlan{
		"Growth": {Name: "Growth", ROIPercentage: 18, DurationMonths: 12},
	}}
	svc := services.NewPayoutService(payouts, newFakeRequestRepo(confirmed, unconfirmed), plans)

	// Approved earns once the transfer is confirmed; unconfirmed waits
	created, err := svc.GenerateMonthlyProfits(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, created)
	require.Len(t, payouts.payouts, 1)
	require.Equal(t, "r1", payouts.payouts[0].RequestID)
	require.InDelta(t, 900.0, payouts.payouts[0].Amount, 0.001)
}

func TestMonthlyProfitSkipsUnknownPlan(t *testing.T) {
	active := pendingRequest("r1")
	active.Status = string(domain.StatusActive)
	active.PlanName = "Retired Plan"

	svc := services.NewPayoutService(&fakePayoutRepo{}, newFakeRequestRepo(active), &fakePlanRepo{plans: map[string]*models.InvestmentPlan{}})

	created, err := svc.GenerateMonthlyProfits(context.Background())
	require.NoError(t, err)
	require.Zero(t, created)
}
