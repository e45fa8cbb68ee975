package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/surya-platform/service-storefront/internal/models"
	"github.com/surya-platform/service-storefront/internal/repository"
)

// fakeOrderStore is an in-memory OrderStatsStore.
type fakeOrderStore struct {
	total    int64
	revenue  float64
	byStatus map[models.OrderStatus]int64
	monthly  []repository.MonthlyRevenueRow
	recent   []models.Order
	err      error
}

func (f *fakeOrderStore) CountAll(ctx context.Context) (int64, error) {
	return f.total, f.err
}

func (f *fakeOrderStore) SumRevenue(ctx context.Context) (float64, error) {
	return f.revenue, f.err
}

func (f *fakeOrderStore) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byStatus, nil
}

func (f *fakeOrderStore) MonthlyRevenue(ctx context.Context, since time.Time) ([]repository.MonthlyRevenueRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.monthly, nil
}

func (f *fakeOrderStore) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

// fakeUserStore is an in-memory UserStatsStore.
type fakeUserStore struct {
	total     int64
	sinceFunc func(t time.Time) int64
	admins    int64
	recent    []models.User
	err       error
}

func (f *fakeUserStore) CountAll(ctx context.Context) (int64, error) {
	return f.total, f.err
}

func (f *fakeUserStore) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.sinceFunc == nil {
		return 0, nil
	}
	return f.sinceFunc(t), nil
}

func (f *fakeUserStore) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if role == models.RoleAdmin {
		return f.admins, nil
	}
	return 0, nil
}

func (f *fakeUserStore) Recent(ctx context.Context, limit int) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

// fakeProductStore is an in-memory ProductStatsStore.
type fakeProductStore struct {
	active   int64
	lowStock int64
	outStock int64
	featured int64
	newCount int64
	onSale   int64
	topCats  []repository.CategoryCountRow
	recent   []models.Product
	err      error
}

func (f *fakeProductStore) CountActive(ctx context.Context) (int64, error) { return f.active, f.err }

func (f *fakeProductStore) CountActiveStockBelow(ctx context.Context, threshold int) (int64, error) {
	return f.lowStock, f.err
}

func (f *fakeProductStore) CountActiveOutOfStock(ctx context.Context) (int64, error) {
	return f.outStock, f.err
}

func (f *fakeProductStore) CountActiveFeatured(ctx context.Context) (int64, error) {
	return f.featured, f.err
}

func (f *fakeProductStore) CountActiveNew(ctx context.Context) (int64, error) {
	return f.newCount, f.err
}

func (f *fakeProductStore) CountActiveOnSale(ctx context.Context) (int64, error) {
	return f.onSale, f.err
}

func (f *fakeProductStore) TopCategories(ctx context.Context, limit int) ([]repository.CategoryCountRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.topCats) > limit {
		return f.topCats[:limit], nil
	}
	return f.topCats, nil
}

func (f *fakeProductStore) RecentlyUpdated(ctx context.Context, limit int) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

// fakeServiceStore is an in-memory ServiceStatsStore.
type fakeServiceStore struct {
	active int64
	err    error
}

func (f *fakeServiceStore) CountActive(ctx context.Context) (int64, error) {
	return f.active, f.err
}

func newTestService(orders *fakeOrderStore, users *fakeUserStore, products *fakeProductStore, svcs *fakeServiceStore) *DashboardService {
	if orders == nil {
		orders = &fakeOrderStore{}
	}
	if users == nil {
		users = &fakeUserStore{}
	}
	if products == nil {
		products = &fakeProductStore{}
	}
	if svcs == nil {
		svcs = &fakeServiceStore{}
	}
	return NewDashboardService(orders, users, products, svcs, NewStaticTrendProvider(), zap.NewNop())
}

func TestGetDashboardStats_EmptyStore(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), time.Now())
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Zero(t, snapshot.Orders)
	assert.Zero(t, snapshot.Users)
	assert.Zero(t, snapshot.Products)
	assert.Zero(t, snapshot.Services)
	assert.Zero(t, snapshot.Revenue)
	assert.Zero(t, snapshot.AvgOrderValue, "no orders must not divide by zero")
	assert.Empty(t, snapshot.TopCategories)
	assert.Empty(t, snapshot.MonthlyRevenue)
	assert.Empty(t, snapshot.RecentActivity)
	assert.Len(t, snapshot.OrderStatus, 5)
	assert.InDelta(t, 3.2, snapshot.ConversionRate, 0.0001)
}

func TestGetDashboardStats_RevenueIncludesCancelledOrders(t *testing.T) {
	// Three orders of 100, 0 and 50, one of them cancelled. Revenue policy
	// counts all orders regardless of status.
	orders := &fakeOrderStore{
		total:   3,
		revenue: 150,
		byStatus: map[models.OrderStatus]int64{
			models.OrderStatusCompleted: 2,
			models.OrderStatusCancelled: 1,
		},
	}
	svc := newTestService(orders, nil, nil, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, float64(150), snapshot.Revenue)
	assert.Equal(t, float64(50), snapshot.AvgOrderValue)
	assert.Equal(t, int64(1), snapshot.CancelledOrders)
}

func TestGetDashboardStats_StatusBucketsPartitionOrders(t *testing.T) {
	orders := &fakeOrderStore{
		total: 11,
		byStatus: map[models.OrderStatus]int64{
			models.OrderStatusPending:        3,
			models.OrderStatusProcessing:     2,
			models.OrderStatusReadyForPickup: 1,
			models.OrderStatusCompleted:      4,
			models.OrderStatusCancelled:      1,
		},
	}
	svc := newTestService(orders, nil, nil, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), time.Now())
	require.NoError(t, err)

	sum := snapshot.PendingOrders + snapshot.ProcessingOrders +
		snapshot.ReadyForPickupOrders + snapshot.CompletedOrders + snapshot.CancelledOrders
	assert.Equal(t, snapshot.Orders, sum, "status buckets must partition all orders")

	var chartSum int64
	for _, slice := range snapshot.OrderStatus {
		chartSum += slice.Value
	}
	assert.Equal(t, snapshot.Orders, chartSum)
}

func TestGetDashboardStats_InventoryCounts(t *testing.T) {
	// 12 active products: 2 out of stock, 3 more with stock between 1 and 9.
	products := &fakeProductStore{
		active:   12,
		lowStock: 5,
		outStock: 2,
	}
	svc := newTestService(nil, nil, products, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(12), snapshot.Products)
	assert.Equal(t, int64(5), snapshot.LowStockProducts)
	assert.Equal(t, int64(2), snapshot.OutOfStockProducts)
	assert.LessOrEqual(t, snapshot.OutOfStockProducts, snapshot.LowStockProducts,
		"zero stock implies below threshold")
}

func TestGetDashboardStats_TopCategoriesRankingAndColors(t *testing.T) {
	products := &fakeProductStore{
		topCats: []repository.CategoryCountRow{
			{CategoryID: uuid.New(), Name: "Panels", ProductCount: 40},
			{CategoryID: uuid.New(), Name: "Inverters", ProductCount: 25},
			{CategoryID: uuid.New(), Name: "Batteries", ProductCount: 25},
			{CategoryID: uuid.New(), Name: "Mounting", ProductCount: 10},
			{CategoryID: uuid.New(), Name: "Cables", ProductCount: 4},
			{CategoryID: uuid.New(), Name: "Monitoring", ProductCount: 1},
		},
	}
	svc := newTestService(nil, nil, products, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), time.Now())
	require.NoError(t, err)

	require.LessOrEqual(t, len(snapshot.TopCategories), 5)
	for i := 1; i < len(snapshot.TopCategories); i++ {
		assert.GreaterOrEqual(t, snapshot.TopCategories[i-1].Value, snapshot.TopCategories[i].Value,
			"ranking must be descending by product count")
	}
	for i, cat := range snapshot.TopCategories {
		assert.Equal(t, categoryPalette[i%len(categoryPalette)], cat.Color)
	}
}

func TestGetDashboardStats_MonthlyRevenueOrderingAndLabels(t *testing.T) {
	orders := &fakeOrderStore{
		monthly: []repository.MonthlyRevenueRow{
			{Month: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), Revenue: 1200},
			{Month: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), Revenue: 900},
			{Month: time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), Revenue: 2100},
		},
	}
	svc := newTestService(orders, nil, nil, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), time.Now())
	require.NoError(t, err)

	require.Len(t, snapshot.MonthlyRevenue, 3)
	assert.Equal(t, "Mar", snapshot.MonthlyRevenue[0].Month)
	assert.Equal(t, "Apr", snapshot.MonthlyRevenue[1].Month)
	assert.Equal(t, "May", snapshot.MonthlyRevenue[2].Month)
	assert.Equal(t, float64(2100), snapshot.MonthlyRevenue[2].Revenue)
}

func TestGetDashboardStats_UserCohorts(t *testing.T) {
	now := time.Date(2026, time.August, 29, 14, 0, 0, 0, time.UTC)
	today := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)

	users := &fakeUserStore{
		total:  120,
		admins: 2,
		sinceFunc: func(t time.Time) int64 {
			switch {
			case t.Equal(today):
				return 3
			case t.Equal(today.Add(-7 * 24 * time.Hour)):
				return 12
			case t.Equal(today.Add(-30 * 24 * time.Hour)):
				return 40
			default:
				return 0
			}
		},
	}
	svc := newTestService(nil, users, nil, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(120), snapshot.Users)
	assert.Equal(t, int64(3), snapshot.NewUsersToday)
	assert.Equal(t, int64(12), snapshot.NewUsersThisWeek)
	assert.Equal(t, int64(40), snapshot.NewUsersThisMonth)
	assert.Equal(t, int64(2), snapshot.AdminUsers)
}

func TestGetDashboardStats_RecentActivityMergesAndSorts(t *testing.T) {
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	orderID := uuid.MustParse("0190b9a1-7d4e-7b36-a630-3cd4e6abcdef")
	orders := &fakeOrderStore{
		recent: []models.Order{
			{ID: orderID, CreatedAt: now.Add(-10 * time.Minute)},
		},
	}
	users := &fakeUserStore{
		recent: []models.User{
			{ID: uuid.New(), Name: "Budi Santoso", Role: models.RoleAdmin, CreatedAt: now.Add(-2 * time.Hour)},
		},
	}
	products := &fakeProductStore{
		recent: []models.Product{
			{ID: uuid.New(), Name: "400W Mono Panel", UpdatedAt: now.Add(-24 * time.Hour)},
		},
	}
	svc := newTestService(orders, users, products, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, snapshot.RecentActivity, 3)

	// Newest first: order (10m), user (2h), product (1d).
	assert.Equal(t, "New order #abcdef", snapshot.RecentActivity[0].Action)
	assert.Equal(t, models.ActivityOrder, snapshot.RecentActivity[0].Type)
	assert.Equal(t, "shopping_cart", snapshot.RecentActivity[0].Icon)
	assert.Equal(t, "10 minutes ago", snapshot.RecentActivity[0].Time)

	assert.Equal(t, "User Budi Santoso registered", snapshot.RecentActivity[1].Action)
	assert.Equal(t, models.ActivityUser, snapshot.RecentActivity[1].Type)
	assert.Equal(t, "person", snapshot.RecentActivity[1].Icon)
	assert.Equal(t, "2 hours ago", snapshot.RecentActivity[1].Time)

	assert.Equal(t, "Product \"400W Mono Panel\" updated", snapshot.RecentActivity[2].Action)
	assert.Equal(t, models.ActivityProduct, snapshot.RecentActivity[2].Type)
	assert.Equal(t, "inventory_2", snapshot.RecentActivity[2].Icon)
	assert.Equal(t, "1 day ago", snapshot.RecentActivity[2].Time)
}

func TestGetDashboardStats_RecentActivityTrimmedToTen(t *testing.T) {
	now := time.Now()

	var recentOrders []models.Order
	var recentUsers []models.User
	var recentProducts []models.Product
	for i := 0; i < 5; i++ {
		recentOrders = append(recentOrders, models.Order{ID: uuid.New(), CreatedAt: now.Add(-time.Duration(i) * time.Minute)})
		recentUsers = append(recentUsers, models.User{ID: uuid.New(), Name: "u", CreatedAt: now.Add(-time.Duration(i+10) * time.Minute)})
		recentProducts = append(recentProducts, models.Product{ID: uuid.New(), Name: "p", UpdatedAt: now.Add(-time.Duration(i+20) * time.Minute)})
	}

	svc := newTestService(
		&fakeOrderStore{recent: recentOrders},
		&fakeUserStore{recent: recentUsers},
		&fakeProductStore{recent: recentProducts},
		nil,
	)

	snapshot, err := svc.GetDashboardStats(context.Background(), now)
	require.NoError(t, err)

	assert.Len(t, snapshot.RecentActivity, 10, "feed must be trimmed to ten entries")
	for i := 1; i < len(snapshot.RecentActivity); i++ {
		assert.False(t, snapshot.RecentActivity[i].Timestamp.After(snapshot.RecentActivity[i-1].Timestamp),
			"feed must be sorted newest first")
	}
	// Products are the oldest source here, so none should survive the trim.
	for _, entry := range snapshot.RecentActivity {
		assert.NotEqual(t, models.ActivityProduct, entry.Type)
	}
}

func TestGetDashboardStats_Deterministic(t *testing.T) {
	now := time.Date(2026, time.August, 29, 9, 30, 0, 0, time.UTC)
	orders := &fakeOrderStore{
		total:   4,
		revenue: 800,
		byStatus: map[models.OrderStatus]int64{
			models.OrderStatusPending:   1,
			models.OrderStatusCompleted: 3,
		},
	}
	svc := newTestService(orders, &fakeUserStore{total: 7}, &fakeProductStore{active: 9}, &fakeServiceStore{active: 4})

	first, err := svc.GetDashboardStats(context.Background(), now)
	require.NoError(t, err)
	second, err := svc.GetDashboardStats(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same store and now must yield identical snapshots")
	assert.Equal(t, "+12.5%", first.Trends["revenue"])
	assert.Equal(t, "-2.1%", first.Trends["pendingOrders"])
	assert.InDelta(t, 3.2, first.ConversionRate, 0.0001)
}

func TestGetDashboardStats_NoServicesStillSucceeds(t *testing.T) {
	svc := newTestService(&fakeOrderStore{total: 1, revenue: 99}, nil, nil, &fakeServiceStore{active: 0})

	snapshot, err := svc.GetDashboardStats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, snapshot.Services)
	assert.Equal(t, float64(99), snapshot.Revenue)
}

func TestGetDashboardStats_StoreErrorAbortsWholeComputation(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := newTestService(&fakeOrderStore{err: storeErr}, &fakeUserStore{total: 5}, nil, nil)

	snapshot, err := svc.GetDashboardStats(context.Background(), time.Now())
	require.Error(t, err)
	assert.Nil(t, snapshot, "no partial snapshot on failure")
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "failed to load dashboard data")
}
