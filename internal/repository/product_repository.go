package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surya-platform/service-storefront/internal/models"
)

// CategoryCountRow is one row of the top-categories aggregation: a category
// and its active-product count.
type CategoryCountRow struct {
	CategoryID   uuid.UUID
	Name         string
	ProductCount int64
}

// ProductRepository handles product persistence and inventory queries.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) countActive(ctx context.Context, conds ...func(*gorm.DB) *gorm.DB) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
	for _, cond := range conds {
		q = cond(q)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountActive returns the number of active products.
func (r *ProductRepository) CountActive(ctx context.Context) (int64, error) {
	return r.countActive(ctx)
}

// CountActiveStockBelow returns the number of active products with stock
// strictly below the given threshold.
func (r *ProductRepository) CountActiveStockBelow(ctx context.Context, threshold int) (int64, error) {
	return r.countActive(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("stock < ?", threshold)
	})
}

// CountActiveOutOfStock returns the number of active products with zero stock.
func (r *ProductRepository) CountActiveOutOfStock(ctx context.Context) (int64, error) {
	return r.countActive(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("stock = ?", 0)
	})
}

// CountActiveFeatured returns the number of active featured products.
func (r *ProductRepository) CountActiveFeatured(ctx context.Context) (int64, error) {
	return r.countActive(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("is_featured = ?", true)
	})
}

// CountActiveNew returns the number of active products flagged as new.
func (r *ProductRepository) CountActiveNew(ctx context.Context) (int64, error) {
	return r.countActive(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("is_new = ?", true)
	})
}

// CountActiveOnSale returns the number of active products on sale.
func (r *ProductRepository) CountActiveOnSale(ctx context.Context) (int64, error) {
	return r.countActive(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("is_on_sale = ?", true)
	})
}

// TopCategories returns up to limit categories ranked by active-product
// count, highest first. Ties keep the database's natural order; no
// secondary sort key is applied.
func (r *ProductRepository) TopCategories(ctx context.Context, limit int) ([]CategoryCountRow, error) {
	var rows []CategoryCountRow
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Select("products.category_id AS category_id, categories.name AS name, COUNT(*) AS product_count").
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.is_active = ?", true).
		Group("products.category_id, categories.name").
		Order("product_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank categories: %w", err)
	}
	return rows, nil
}

// RecentlyUpdated returns the most recently updated active products, newest
// first.
func (r *ProductRepository) RecentlyUpdated(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recently updated products: %w", err)
	}
	return products, nil
}
