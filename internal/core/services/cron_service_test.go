package services_test

import (
	"testing"

	"investhub/internal/core/services"

	"github.com/stretchr/testify/require"
)

func TestCronStartRegistersJobs(t *testing.T) {
	tokens := newFakeRefreshTokenRepo()
	payouts := services.NewPayoutService(&fakePayoutRepo{}, newFakeRequestRepo(), &fakePlanRepo{})

	svc := services.NewCronService(tokens, payouts)
	require.NoError(t, svc.Start())
	svc.Stop()
}
