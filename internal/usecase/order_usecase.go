package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

var _ domain.OrderUseCase = (*orderUseCase)(nil)

type orderUseCase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewOrderUseCase(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, logger *logrus.Logger) domain.OrderUseCase {
	return &orderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		log:         logger,
	}
}

// CreateOrder validates the cart, captures per-line price-at-purchase from
// the current catalog and persists the order with all its line items as one
// unit. Stock is not touched here; it is reserved at approval time.
func (uc *orderUseCase) CreateOrder(ctx context.Context, userID int64, lines []domain.CartLine) (*domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user ID")
	}
	if len(lines) == 0 {
		uc.log.Warnf("Use Case: Order creation rejected for user %d - empty cart", userID)
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrInvalidCart)
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			uc.log.Warnf("Use Case: Order creation rejected for user %d - non-positive quantity on line %d", userID, i)
			return nil, fmt.Errorf("%w: quantity must be positive (line %d)", domain.ErrInvalidCart, i)
		}

		product, err := uc.productRepo.GetProductByID(line.ProductID)
		if err != nil {
			if domain.IsNotFound(err) {
				uc.log.Warnf("Use Case: Order creation rejected for user %d - unknown product %d", userID, line.ProductID)
				return nil, fmt.Errorf("%w: product %d", domain.ErrInvalidCart, line.ProductID)
			}
			uc.log.Errorf("Use Case: Failed to load product %d during order creation: %v", line.ProductID, err)
			return nil, fmt.Errorf("could not load product %d: %w", line.ProductID, err)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, domain.OrderItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        line.Quantity,
			PriceAtPurchase: product.Price,
		})
	}

	order := &domain.Order{
		UserID: userID,
		Status: domain.StatusPending,
		Total:  total,
		Items:  items,
	}

	created, err := uc.orderRepo.CreateOrder(order)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create order for user %d: %v", userID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order %d created for user %d (total %s, %d items)", created.ID, userID, created.Total.StringFixed(2), len(created.Items))
	return created, nil
}

func (uc *orderUseCase) GetOrderByID(id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid order ID")
	}
	order, err := uc.orderRepo.GetOrderByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get order ID %d: %v", id, err)
		return nil, err
	}
	return order, nil
}

func (uc *orderUseCase) ListOrdersByUserID(userID int64, limit, offset int) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user ID")
	}

	orders, err := uc.orderRepo.ListOrdersByUserID(userID, limit, offset)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders for user %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve orders for user %d: %w", userID, err)
	}
	return orders, nil
}

func (uc *orderUseCase) ListAllOrders() ([]domain.Order, error) {
	orders, err := uc.orderRepo.ListOrders()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list all orders: %v", err)
		return nil, err
	}
	return orders, nil
}

// ApproveOrder reserves stock for every line item and marks the order
// approved. The repository applies the whole approval atomically: on any
// failure no stock is decremented and the status is unchanged.
func (uc *orderUseCase) ApproveOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid order ID")
	}

	uc.log.Infof("Use Case: Attempting to approve order %d", id)
	order, err := uc.orderRepo.ApproveOrder(id, domain.NotificationApproved)
	if err != nil {
		uc.log.Warnf("Use Case: Approval of order %d failed: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order %d approved", id)
	return order, nil
}

func (uc *orderUseCase) DeclineOrder(ctx context.Context, id int64, reason string) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid order ID")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = domain.NotificationDeclined
	}

	uc.log.Infof("Use Case: Attempting to decline order %d", id)
	order, err := uc.orderRepo.SetOrderStatus(id,
		[]domain.OrderStatus{domain.StatusPending, domain.StatusPaid},
		domain.StatusDeclined, reason)
	if err != nil {
		uc.log.Warnf("Use Case: Decline of order %d failed: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order %d declined", id)
	return order, nil
}

func (uc *orderUseCase) CompleteOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid order ID")
	}

	uc.log.Infof("Use Case: Attempting to complete order %d", id)
	order, err := uc.orderRepo.SetOrderStatus(id,
		[]domain.OrderStatus{domain.StatusApproved},
		domain.StatusCompleted, domain.NotificationCompleted)
	if err != nil {
		uc.log.Warnf("Use Case: Completion of order %d failed: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order %d completed", id)
	return order, nil
}

func (uc *orderUseCase) HasPurchased(userID, productID int64) (bool, error) {
	if userID <= 0 || productID <= 0 {
		return false, fmt.Errorf("invalid user or product ID")
	}
	return uc.orderRepo.HasOrderItem(userID, productID)
}
