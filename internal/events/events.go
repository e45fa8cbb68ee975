// Package events handles NATS messaging for the storefront service.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Event subjects
const (
	SubjectOrderCreated       = "order.created"
	SubjectOrderStatusUpdated = "order.status.updated"
	SubjectUserRegistered     = "user.registered"
	SubjectProductUpdated     = "product.updated"
)

// OrderCreatedEvent is published when a customer places an order.
type OrderCreatedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	UserID      uuid.UUID `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderStatusUpdatedEvent is published when an admin changes an order status.
type OrderStatusUpdatedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRegisteredEvent is published when a new account is created.
type UserRegisteredEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductUpdatedEvent is published when catalog data changes.
type ProductUpdatedEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publisher handles publishing events to NATS
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// NewPublisher creates a new NATS publisher
func NewPublisher(nc *nats.Conn, logger *zap.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

// PublishOrderStatusUpdated publishes an order status change.
func (p *Publisher) PublishOrderStatusUpdated(event *OrderStatusUpdatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectOrderStatusUpdated, data)
}

// PublishOrderCreated publishes a new-order event.
func (p *Publisher) PublishOrderCreated(event *OrderCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(SubjectOrderCreated, data)
}

// StoreChangeHandler reacts to data-changing events. The dashboard cache
// implements this to drop stale snapshots.
type StoreChangeHandler interface {
	HandleStoreChanged(subject string)
}

// Subscriber listens for store-changing events and notifies its handler.
type Subscriber struct {
	nc      *nats.Conn
	logger  *zap.Logger
	handler StoreChangeHandler
	subs    []*nats.Subscription
}

// NewSubscriber creates a new NATS subscriber
func NewSubscriber(nc *nats.Conn, handler StoreChangeHandler, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		nc:      nc,
		logger:  logger,
		handler: handler,
		subs:    make([]*nats.Subscription, 0),
	}
}

// Start subscribes to all store-changing subjects.
func (s *Subscriber) Start() error {
	subjects := []string{
		SubjectOrderCreated,
		SubjectOrderStatusUpdated,
		SubjectUserRegistered,
		SubjectProductUpdated,
	}

	for _, subject := range subjects {
		subject := subject
		sub, err := s.nc.Subscribe(subject, func(msg *nats.Msg) {
			s.logger.Debug("Received store change event", zap.String("subject", subject))
			s.handler.HandleStoreChanged(subject)
		})
		if err != nil {
			return err
		}
		s.subs = append(s.subs, sub)
		s.logger.Info("Subscribed to event", zap.String("subject", subject))
	}

	return nil
}

// Stop unsubscribes from all events
func (s *Subscriber) Stop() {
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}
	s.logger.Info("NATS subscriber stopped")
}
