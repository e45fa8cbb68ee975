package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/surya-platform/service-storefront/internal/models"
)

// ServiceRepository handles service-offering persistence.
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// CountActive returns the number of active service offerings.
func (r *ServiceRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return count, nil
}
