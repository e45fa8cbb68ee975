// Package models defines the persisted entities of the storefront service.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserRole enumerates the roles a user account can hold.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// AllOrderStatuses lists every valid order status. The dashboard breakdown
// emits a bucket for each of these even when the count is zero.
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusReadyForPickup,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the enumerated order statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range AllOrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// User represents a storefront account.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);not null;default:customer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Category groups products for navigation and dashboard rankings.
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

// BeforeCreate assigns a UUID primary key when one is not set.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Product represents a catalog item.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsFeatured  bool      `gorm:"not null;default:false" json:"is_featured"`
	IsNew       bool      `gorm:"not null;default:false" json:"is_new"`
	IsOnSale    bool      `gorm:"not null;default:false" json:"is_on_sale"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not set.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Service represents an installation or maintenance offering.
type Service struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Description string         `json:"description"`
	Features    datatypes.JSON `gorm:"type:jsonb" json:"features"`
	Icon        string         `gorm:"default:build" json:"icon"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not set.
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// OrderItem is a line item embedded in an order's Items JSON column.
// Name, image and price are copied from the product at checkout time so the
// order keeps its history when the catalog changes.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

// Order represents a customer order.
type Order struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items       datatypes.JSON `gorm:"type:jsonb" json:"items"`
	TotalAmount float64        `gorm:"not null;default:0" json:"total_amount"`
	Status      OrderStatus    `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Notes       string         `json:"notes"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when one is not set.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// ShortID returns the last six characters of the order ID, the form used in
// dashboard activity lines and customer-facing references.
func (o *Order) ShortID() string {
	s := o.ID.String()
	if len(s) <= 6 {
		return s
	}
	return s[len(s)-6:]
}
