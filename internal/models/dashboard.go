package models

import "time"

// ActivityType identifies the source entity of a recent-activity entry.
type ActivityType string

const (
	ActivityOrder   ActivityType = "order"
	ActivityUser    ActivityType = "user"
	ActivityProduct ActivityType = "product"
)

// CategoryStat is one entry of the top-categories ranking.
type CategoryStat struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

// MonthlyRevenue is one month's order revenue, labeled with the short month
// name of the bucket ("Jan", "Feb", ...). Buckets are emitted oldest first.
type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// OrderStatusStat is one slice of the order-status chart.
type OrderStatusStat struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

// Activity is one row of the dashboard's recent-activity feed. Timestamp is
// the raw event time; Time is the display string formatted from it at
// response-build time.
type Activity struct {
	Action    string       `json:"action"`
	Time      string       `json:"time"`
	Type      ActivityType `json:"type"`
	Icon      string       `json:"icon"`
	Timestamp time.Time    `json:"-"`
}

// DashboardSnapshot is the fully computed dashboard statistics object. It is
// ephemeral: recomputed from store state on every request, never persisted.
// The JSON shape is the contract consumed by the admin frontend.
type DashboardSnapshot struct {
	// Basic counts
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Users    int64   `json:"users"`
	Services int64   `json:"services"`
	Revenue  float64 `json:"revenue"`

	// Order status buckets
	PendingOrders        int64 `json:"pendingOrders"`
	ProcessingOrders     int64 `json:"processingOrders"`
	CompletedOrders      int64 `json:"completedOrders"`
	CancelledOrders      int64 `json:"cancelledOrders"`
	ReadyForPickupOrders int64 `json:"readyForPickupOrders"`

	// Inventory
	LowStockProducts   int64 `json:"lowStockProducts"`
	OutOfStockProducts int64 `json:"outOfStockProducts"`
	FeaturedProducts   int64 `json:"featuredProducts"`
	NewProducts        int64 `json:"newProducts"`
	OnSaleProducts     int64 `json:"onSaleProducts"`

	// User cohorts
	NewUsersToday     int64 `json:"newUsersToday"`
	NewUsersThisWeek  int64 `json:"newUsersThisWeek"`
	NewUsersThisMonth int64 `json:"newUsersThisMonth"`
	AdminUsers        int64 `json:"adminUsers"`

	// Financial
	AvgOrderValue  float64 `json:"avgOrderValue"`
	ConversionRate float64 `json:"conversionRate"`

	// Chart data
	TopCategories  []CategoryStat    `json:"topCategories"`
	MonthlyRevenue []MonthlyRevenue  `json:"monthlyRevenue"`
	OrderStatus    []OrderStatusStat `json:"orderStatus"`
	RecentActivity []Activity        `json:"recentActivity"`

	// Trends
	Trends map[string]string `json:"trends"`
}
