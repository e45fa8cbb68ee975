package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/surya-platform/service-storefront/internal/models"
	"github.com/surya-platform/service-storefront/internal/repository"
)

const (
	// lowStockThreshold is the stock level below which an active product
	// counts as low-stock.
	lowStockThreshold = 10

	// recentSourceLimit is how many records each recent-activity source
	// (orders, users, products) contributes before merging.
	recentSourceLimit = 5

	// recentActivityLimit bounds the merged recent-activity feed.
	recentActivityLimit = 10

	// topCategoryLimit bounds the top-categories ranking.
	topCategoryLimit = 5

	// revenueWindow is the monthly-revenue lookback. A plain duration, not
	// six calendar months.
	revenueWindow = 180 * 24 * time.Hour
)

// categoryPalette colors the top-categories chart, cycling by rank.
var categoryPalette = []string{"#8884d8", "#82ca9d", "#ffc658", "#ff7c7c", "#8dd1e1"}

// OrderStatsStore provides the order-side aggregation queries.
type OrderStatsStore interface {
	CountAll(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error)
	MonthlyRevenue(ctx context.Context, since time.Time) ([]repository.MonthlyRevenueRow, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
}

// UserStatsStore provides the user-side aggregation queries.
type UserStatsStore interface {
	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, t time.Time) (int64, error)
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.User, error)
}

// ProductStatsStore provides the product-side aggregation queries.
type ProductStatsStore interface {
	CountActive(ctx context.Context) (int64, error)
	CountActiveStockBelow(ctx context.Context, threshold int) (int64, error)
	CountActiveOutOfStock(ctx context.Context) (int64, error)
	CountActiveFeatured(ctx context.Context) (int64, error)
	CountActiveNew(ctx context.Context) (int64, error)
	CountActiveOnSale(ctx context.Context) (int64, error)
	TopCategories(ctx context.Context, limit int) ([]repository.CategoryCountRow, error)
	RecentlyUpdated(ctx context.Context, limit int) ([]models.Product, error)
}

// ServiceStatsStore provides the service-offering count.
type ServiceStatsStore interface {
	CountActive(ctx context.Context) (int64, error)
}

// DashboardService computes dashboard statistics snapshots. It is read-only
// over the store and holds no mutable state, so a single instance is safe
// for concurrent callers.
type DashboardService struct {
	orders   OrderStatsStore
	users    UserStatsStore
	products ProductStatsStore
	services ServiceStatsStore
	trends   TrendProvider
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	orders OrderStatsStore,
	users UserStatsStore,
	products ProductStatsStore,
	services ServiceStatsStore,
	trends TrendProvider,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		orders:   orders,
		users:    users,
		products: products,
		services: services,
		trends:   trends,
		logger:   logger,
	}
}

// GetDashboardStats computes a full dashboard snapshot as of now. The
// underlying queries are independent and run concurrently; the first query
// error aborts the whole computation and no partial snapshot is returned.
func (s *DashboardService) GetDashboardStats(ctx context.Context, now time.Time) (*models.DashboardSnapshot, error) {
	// Time windows are plain duration subtractions from midnight of now's
	// calendar day, not calendar-aware arithmetic.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := today.Add(-7 * 24 * time.Hour)
	monthAgo := today.Add(-30 * 24 * time.Hour)
	sixMonthsAgo := today.Add(-revenueWindow)

	var (
		totalUsers     int64
		activeProducts int64
		totalOrders    int64
		activeServices int64
		totalRevenue   float64

		newUsersToday     int64
		newUsersThisWeek  int64
		newUsersThisMonth int64
		adminUsers        int64

		statusCounts map[models.OrderStatus]int64

		lowStock   int64
		outOfStock int64
		featured   int64
		newFlagged int64
		onSale     int64

		monthly []repository.MonthlyRevenueRow
		topCats []repository.CategoryCountRow

		recentOrders   []models.Order
		recentUsers    []models.User
		recentProducts []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)

	// Basic counts
	g.Go(func() (err error) { totalUsers, err = s.users.CountAll(gctx); return })
	g.Go(func() (err error) { activeProducts, err = s.products.CountActive(gctx); return })
	g.Go(func() (err error) { totalOrders, err = s.orders.CountAll(gctx); return })
	g.Go(func() (err error) { activeServices, err = s.services.CountActive(gctx); return })
	g.Go(func() (err error) { totalRevenue, err = s.orders.SumRevenue(gctx); return })

	// User cohorts
	g.Go(func() (err error) { newUsersToday, err = s.users.CountCreatedSince(gctx, today); return })
	g.Go(func() (err error) { newUsersThisWeek, err = s.users.CountCreatedSince(gctx, weekAgo); return })
	g.Go(func() (err error) { newUsersThisMonth, err = s.users.CountCreatedSince(gctx, monthAgo); return })
	g.Go(func() (err error) { adminUsers, err = s.users.CountByRole(gctx, models.RoleAdmin); return })

	// Order status breakdown
	g.Go(func() (err error) { statusCounts, err = s.orders.CountByStatus(gctx); return })

	// Inventory
	g.Go(func() (err error) { lowStock, err = s.products.CountActiveStockBelow(gctx, lowStockThreshold); return })
	g.Go(func() (err error) { outOfStock, err = s.products.CountActiveOutOfStock(gctx); return })
	g.Go(func() (err error) { featured, err = s.products.CountActiveFeatured(gctx); return })
	g.Go(func() (err error) { newFlagged, err = s.products.CountActiveNew(gctx); return })
	g.Go(func() (err error) { onSale, err = s.products.CountActiveOnSale(gctx); return })

	// Chart aggregations
	g.Go(func() (err error) { monthly, err = s.orders.MonthlyRevenue(gctx, sixMonthsAgo); return })
	g.Go(func() (err error) { topCats, err = s.products.TopCategories(gctx, topCategoryLimit); return })

	// Recent activity sources
	g.Go(func() (err error) { recentOrders, err = s.orders.Recent(gctx, recentSourceLimit); return })
	g.Go(func() (err error) { recentUsers, err = s.users.Recent(gctx, recentSourceLimit); return })
	g.Go(func() (err error) { recentProducts, err = s.products.RecentlyUpdated(gctx, recentSourceLimit); return })

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	avgOrderValue := 0.0
	if totalOrders > 0 {
		avgOrderValue = totalRevenue / float64(totalOrders)
	}

	snapshot := &models.DashboardSnapshot{
		Products: activeProducts,
		Orders:   totalOrders,
		Users:    totalUsers,
		Services: activeServices,
		Revenue:  totalRevenue,

		PendingOrders:        statusCounts[models.OrderStatusPending],
		ProcessingOrders:     statusCounts[models.OrderStatusProcessing],
		CompletedOrders:      statusCounts[models.OrderStatusCompleted],
		CancelledOrders:      statusCounts[models.OrderStatusCancelled],
		ReadyForPickupOrders: statusCounts[models.OrderStatusReadyForPickup],

		LowStockProducts:   lowStock,
		OutOfStockProducts: outOfStock,
		FeaturedProducts:   featured,
		NewProducts:        newFlagged,
		OnSaleProducts:     onSale,

		NewUsersToday:     newUsersToday,
		NewUsersThisWeek:  newUsersThisWeek,
		NewUsersThisMonth: newUsersThisMonth,
		AdminUsers:        adminUsers,

		AvgOrderValue:  avgOrderValue,
		ConversionRate: s.trends.ConversionRate(),

		TopCategories:  buildTopCategories(topCats),
		MonthlyRevenue: buildMonthlyRevenue(monthly),
		OrderStatus:    buildOrderStatusChart(statusCounts),
		RecentActivity: buildRecentActivity(now, recentOrders, recentUsers, recentProducts),

		Trends: s.trends.Trends(),
	}

	return snapshot, nil
}

// buildTopCategories maps ranking rows into chart entries, assigning palette
// colors by rank.
func buildTopCategories(rows []repository.CategoryCountRow) []models.CategoryStat {
	stats := make([]models.CategoryStat, 0, len(rows))
	for i, row := range rows {
		stats = append(stats, models.CategoryStat{
			Name:  row.Name,
			Value: row.ProductCount,
			Color: categoryPalette[i%len(categoryPalette)],
		})
	}
	return stats
}

// buildMonthlyRevenue labels each month bucket with its short month name.
// Rows arrive oldest first from the store.
func buildMonthlyRevenue(rows []repository.MonthlyRevenueRow) []models.MonthlyRevenue {
	out := make([]models.MonthlyRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.MonthlyRevenue{
			Month:   row.Month.Format("Jan"),
			Revenue: row.Revenue,
		})
	}
	return out
}

// buildOrderStatusChart emits the five fixed chart slices with their display
// colors, defaulting missing statuses to zero.
func buildOrderStatusChart(counts map[models.OrderStatus]int64) []models.OrderStatusStat {
	return []models.OrderStatusStat{
		{Name: "Completed", Value: counts[models.OrderStatusCompleted], Color: "#28a745"},
		{Name: "Pending", Value: counts[models.OrderStatusPending], Color: "#ffc107"},
		{Name: "Processing", Value: counts[models.OrderStatusProcessing], Color: "#007bff"},
		{Name: "Ready for Pickup", Value: counts[models.OrderStatusReadyForPickup], Color: "#17a2b8"},
		{Name: "Cancelled", Value: counts[models.OrderStatusCancelled], Color: "#dc3545"},
	}
}

// buildRecentActivity merges the three activity sources, sorts by the raw
// event timestamp (newest first) and trims the feed. Display times are
// formatted only after sorting.
func buildRecentActivity(now time.Time, orders []models.Order, users []models.User, products []models.Product) []models.Activity {
	activity := make([]models.Activity, 0, len(orders)+len(users)+len(products))

	for _, order := range orders {
		activity = append(activity, models.Activity{
			Action:    fmt.Sprintf("New order #%s", order.ShortID()),
			Type:      models.ActivityOrder,
			Icon:      "shopping_cart",
			Timestamp: order.CreatedAt,
		})
	}

	for _, user := range users {
		activity = append(activity, models.Activity{
			Action:    fmt.Sprintf("User %s registered", user.Name),
			Type:      models.ActivityUser,
			Icon:      "person",
			Timestamp: user.CreatedAt,
		})
	}

	for _, product := range products {
		activity = append(activity, models.Activity{
			Action:    fmt.Sprintf("Product \"%s\" updated", product.Name),
			Type:      models.ActivityProduct,
			Icon:      "inventory_2",
			Timestamp: product.UpdatedAt,
		})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp.After(activity[j].Timestamp)
	})

	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}

	for i := range activity {
		activity[i].Time = RelativeTime(now, activity[i].Timestamp)
	}

	return activity
}
