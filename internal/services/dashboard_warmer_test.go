package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDashboardWarmer_RejectsBadSpec(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)
	cache := NewDashboardCacheService(nil, time.Minute, zap.NewNop())

	_, err := NewDashboardWarmer("not a cron spec", svc, cache, zap.NewNop())
	assert.Error(t, err)
}

func TestDashboardWarmer_WarmPopulatesCache(t *testing.T) {
	svc := newTestService(&fakeOrderStore{total: 5, revenue: 500}, nil, nil, nil)
	cache, _ := newTestCache(t, time.Minute)

	warmer, err := NewDashboardWarmer("@every 1m", svc, cache, zap.NewNop())
	require.NoError(t, err)

	warmer.warm()

	snapshot, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, int64(5), snapshot.Orders)
	assert.Equal(t, float64(500), snapshot.Revenue)
}
