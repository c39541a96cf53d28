package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusDeclined  OrderStatus = "declined"
	StatusCompleted OrderStatus = "completed"

	// StatusPaid is accepted anywhere StatusPending is, but no code path in
	// this service sets it. Rows carrying it can only come from outside.
	StatusPaid OrderStatus = "paid"
)

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusApproved, StatusDeclined, StatusCompleted, StatusPaid:
		return true
	default:
		return false
	}
}

// IsApprovable reports whether an order in the given status may still be
// approved or declined.
func IsApprovable(status OrderStatus) bool {
	return status == StatusPending || status == StatusPaid
}

const (
	NotificationApproved  = "Your order has been approved"
	NotificationCompleted = "Your order is completed"
	NotificationDeclined  = "We are currently busy. Please try again later."
)

type Order struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Items        []OrderItem     `json:"items"`
	Status       OrderStatus     `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Notification string          `json:"notification,omitempty"`
	User         *UserProfile    `json:"user,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         int64           `json:"order_id"`
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

// CartLine is one (product, quantity) pair submitted at checkout.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type OrderRepository interface {
	CreateOrder(order *Order) (*Order, error)
	GetOrderByID(id int64) (*Order, error)
	ListOrdersByUserID(userID int64, limit, offset int) ([]Order, error)
	ListOrders() ([]Order, error)
	// ApproveOrder runs the whole approval inside one transaction: status
	// check, per-line conditional stock decrement, status update. Either
	// every mutation is applied or none is.
	ApproveOrder(id int64, notification string) (*Order, error)
	// SetOrderStatus transitions id to the target status only if its current
	// status is one of allowedFrom, atomically.
	SetOrderStatus(id int64, allowedFrom []OrderStatus, to OrderStatus, notification string) (*Order, error)
	HasOrderItem(userID, productID int64) (bool, error)
	CountOrders() (int, error)
}

type OrderUseCase interface {
	CreateOrder(ctx context.Context, userID int64, lines []CartLine) (*Order, error)
	GetOrderByID(id int64) (*Order, error)
	ListOrdersByUserID(userID int64, limit, offset int) ([]Order, error)
	ListAllOrders() ([]Order, error)
	ApproveOrder(ctx context.Context, id int64) (*Order, error)
	DeclineOrder(ctx context.Context, id int64, reason string) (*Order, error)
	CompleteOrder(ctx context.Context, id int64) (*Order, error)
	HasPurchased(userID, productID int64) (bool, error)
}
