package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

func seedProduct(t *testing.T, repo *fakeProductRepo, name string, price string, stock int) *domain.Product {
	t.Helper()
	amount, err := decimal.NewFromString(price)
	require.NoError(t, err)
	product, err := repo.CreateProduct(&domain.Product{
		Name:     name,
		Category: domain.CategoryHot,
		Price:    amount,
		Stock:    stock,
	})
	require.NoError(t, err)
	return product
}

func TestCreateOrder_ComputesExactTotal(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 100)
	latte := seedProduct(t, products, "Pumpkin Maple Latte", "5.49", 100)

	order, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{
		{ProductID: cookie.ID, Quantity: 2},
		{ProductID: latte.ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.RequireFromString("11.47")),
		"expected 11.47, got %s", order.Total)
	assert.Equal(t, domain.StatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].PriceAtPurchase.Equal(decimal.RequireFromString("2.99")))
}

func TestCreateOrder_StockUntouchedUntilApproval(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 10)

	_, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: cookie.ID, Quantity: 4}})
	require.NoError(t, err)

	assert.Equal(t, 10, products.stockOf(cookie.ID))
}

func TestCreateOrder_RejectsBadCarts(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 100)

	_, err := uc.CreateOrder(context.Background(), 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidCart)

	_, err = uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: cookie.ID, Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidCart)

	_, err = uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: 9999, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidCart)

	count, err := orders.CountOrders()
	require.NoError(t, err)
	assert.Zero(t, count, "no order should be persisted for a rejected cart")
}

func TestApproveOrder_DecrementsStockAndNotifies(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 10)

	created, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: cookie.ID, Quantity: 4}})
	require.NoError(t, err)

	approved, err := uc.ApproveOrder(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.Equal(t, domain.NotificationApproved, approved.Notification)
	assert.Equal(t, 6, products.stockOf(cookie.ID))
}

func TestApproveOrder_AllOrNothingOnInsufficientStock(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 10)
	cake := seedProduct(t, products, "New York Cheesecake", "6.99", 1)

	created, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{
		{ProductID: cookie.ID, Quantity: 3},
		{ProductID: cake.ID, Quantity: 2},
	})
	require.NoError(t, err)

	_, err = uc.ApproveOrder(context.Background(), created.ID)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "New York Cheesecake", stockErr.ProductName)

	// The covered line must have been rolled back with the failed one.
	assert.Equal(t, 10, products.stockOf(cookie.ID))
	assert.Equal(t, 1, products.stockOf(cake.ID))

	after, err := uc.GetOrderByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, after.Status)
}

func TestApproveOrder_RejectsNonPendingOrders(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 100)

	created, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: cookie.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = uc.ApproveOrder(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = uc.ApproveOrder(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.DeclineOrder(context.Background(), created.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeclineOrder_UsesDefaultNotification(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 5)

	created, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: cookie.ID, Quantity: 2}})
	require.NoError(t, err)

	declined, err := uc.DeclineOrder(context.Background(), created.ID, "  ")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDeclined, declined.Status)
	assert.Equal(t, domain.NotificationDeclined, declined.Notification)
	assert.Equal(t, 5, products.stockOf(cookie.ID), "declining must not touch stock")
}

func TestCompleteOrder_OnlyFromApproved(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 100)

	created, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: cookie.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = uc.CompleteOrder(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.ApproveOrder(context.Background(), created.ID)
	require.NoError(t, err)

	completed, err := uc.CompleteOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	assert.Equal(t, domain.NotificationCompleted, completed.Notification)
}

func TestApproveOrder_ConcurrentApprovalsNeverOversell(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 5)

	first, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: cookie.ID, Quantity: 3}})
	require.NoError(t, err)
	second, err := uc.CreateOrder(context.Background(), 2, []domain.CartLine{{ProductID: cookie.ID, Quantity: 3}})
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.ApproveOrder(context.Background(), first.ID)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.ApproveOrder(context.Background(), second.ID)
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var stockErr *domain.InsufficientStockError
			assert.ErrorAs(t, err, &stockErr)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one of the competing approvals may win")
	assert.Equal(t, 2, products.stockOf(cookie.ID))
}

func TestHasPurchased(t *testing.T) {
	products := newFakeProductRepo()
	orders := newFakeOrderRepo(products)
	uc := NewOrderUseCase(orders, products, testLogger())

	cookie := seedProduct(t, products, "Chocolate Chip Cookie", "2.99", 100)
	cake := seedProduct(t, products, "New York Cheesecake", "6.99", 100)

	_, err := uc.CreateOrder(context.Background(), 1, []domain.CartLine{{ProductID: cookie.ID, Quantity: 1}})
	require.NoError(t, err)

	bought, err := uc.HasPurchased(1, cookie.ID)
	require.NoError(t, err)
	assert.True(t, bought)

	bought, err = uc.HasPurchased(1, cake.ID)
	require.NoError(t, err)
	assert.False(t, bought)
}
