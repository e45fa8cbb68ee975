package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/surya-platform/service-storefront/internal/events"
	"github.com/surya-platform/service-storefront/internal/models"
	"github.com/surya-platform/service-storefront/internal/repository"
)

// ErrInvalidOrderStatus is returned when a status update names an unknown
// status.
var ErrInvalidOrderStatus = fmt.Errorf("invalid order status")

// AdminService handles the back-office user and order operations.
type AdminService struct {
	users     *repository.UserRepository
	orders    *repository.OrderRepository
	publisher *events.Publisher
	logger    *zap.Logger
}

// NewAdminService creates a new AdminService. The publisher may be nil when
// NATS is not configured.
func NewAdminService(
	users *repository.UserRepository,
	orders *repository.OrderRepository,
	publisher *events.Publisher,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		users:     users,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// ListUsers returns all user accounts.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListAll(ctx)
}

// GetUser returns one user by ID.
func (s *AdminService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UserUpdate carries the editable user fields. Empty fields keep their
// current value.
type UserUpdate struct {
	Name  string
	Email string
	Role  models.UserRole
}

// UpdateUser applies the given changes to a user.
func (s *AdminService) UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Role != "" {
		user.Role = update.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user account.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// ListOrders returns all orders with owning users populated.
func (s *AdminService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateOrderStatus moves an order to the given status and publishes a
// status-updated event so interested consumers (the dashboard cache among
// them) see fresh data.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOrderStatusUpdated(&events.OrderStatusUpdatedEvent{
			OrderID:   order.ID,
			Status:    string(order.Status),
			UpdatedAt: order.UpdatedAt,
		}); err != nil {
			s.logger.Warn("failed to publish order status event",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}

	return order, nil
}
