// Package repository implements data access for the storefront service.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surya-platform/service-storefront/internal/models"
)

// ErrOrderNotFound is returned when an order lookup matches nothing.
var ErrOrderNotFound = errors.New("order not found")

// MonthlyRevenueRow is one (month, revenue) aggregation bucket. Month is the
// first instant of the calendar month.
type MonthlyRevenueRow struct {
	Month   time.Time
	Revenue float64
}

// OrderRepository handles order persistence and aggregation queries.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CountAll returns the total number of orders, regardless of status.
func (r *OrderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// SumRevenue returns the sum of total_amount over all orders. Cancelled
// orders are included; revenue is gross booked value, not settled value.
func (r *OrderRepository) SumRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum order revenue: %w", err)
	}
	return revenue, nil
}

// CountByStatus groups all orders by status. Statuses with no orders are
// absent from the map; callers default them to zero.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// MonthlyRevenue sums total_amount per calendar month for orders created at
// or after since, oldest month first.
func (r *OrderRepository) MonthlyRevenue(ctx context.Context, since time.Time) ([]MonthlyRevenueRow, error) {
	var rows []MonthlyRevenueRow
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("date_trunc('month', created_at) AS month, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("created_at >= ?", since).
		Group("date_trunc('month', created_at)").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	return rows, nil
}

// Recent returns the most recently created orders with the owning user
// preloaded, newest first.
func (r *OrderRepository) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order with the owning user preloaded, newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetByID returns a single order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("User").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// UpdateStatus sets the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return r.GetByID(ctx, id)
}
