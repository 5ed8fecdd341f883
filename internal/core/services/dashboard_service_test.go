package services_test

import (
	"context"
	"fmt"
	"testing"

	"investhub/internal/core/domain"
	"investhub/internal/core/services"

	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	users := newFakeUserRepo()

	// Seven requests seeded newest first; only the newest five surface
	repo := newFakeRequestRepo()
	for i := 7; i >= 1; i-- {
		r := pendingRequest(fmt.Sprintf("r%d", i))
		if i <= 2 {
			r.Status = string(domain.StatusApproved)
			r.InvestmentAmount = 100000
		}
		repo.requests[r.ID] = r
		repo.order = append(repo.order, r.ID)
	}

	svc := services.NewDashboardService(users, repo)
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 5, stats.PendingRequests)
	require.EqualValues(t, 2, stats.ApprovedRequests)
	require.InDelta(t, 200000.0, stats.TotalInvestment, 0.001)

	require.Len(t, stats.RecentRequests, 5)
	require.Equal(t, "r7", stats.RecentRequests[0].ID)
	require.Equal(t, "r3", stats.RecentRequests[4].ID)
}
