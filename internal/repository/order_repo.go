package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

// finishTx commits the transaction when *errp is nil and rolls back
// otherwise, surfacing a commit failure through *errp.
func (r *postgresOrderRepository) finishTx(tx *sql.Tx, errp *error) {
	if p := recover(); p != nil {
		r.log.Error("Repository: Recovered from panic, rolling back transaction")
		_ = tx.Rollback()
		panic(p)
	}
	if *errp != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.log.Errorf("Repository: Failed to rollback transaction: %v (original error: %v)", rbErr, *errp)
		}
		return
	}
	if cErr := tx.Commit(); cErr != nil {
		r.log.Errorf("Repository: Failed to commit transaction: %v", cErr)
		*errp = fmt.Errorf("failed to commit transaction: %w", cErr)
	}
}

func (r *postgresOrderRepository) CreateOrder(order *domain.Order) (_ *domain.Order, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Repository: Failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer r.finishTx(tx, &err)

	orderQuery := `
        INSERT INTO orders (user_id, status, total, notification)
        VALUES ($1, $2, $3, $4)
        RETURNING id, status, created_at, updated_at`
	err = tx.QueryRow(orderQuery, order.UserID, order.Status, order.Total, order.Notification).Scan(
		&order.ID,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		r.log.Errorf("Repository: Failed to insert order for user %d: %v", order.UserID, err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	stmt, err := tx.Prepare(itemQuery)
	if err != nil {
		r.log.Errorf("Repository: Failed to prepare order item statement: %v", err)
		return nil, fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = stmt.QueryRow(order.ID, item.ProductID, item.Quantity, item.PriceAtPurchase).Scan(&item.ID)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && (pqErr.Code == "23503" || pqErr.Code == "23514") {
				r.log.Warnf("Repository: Invalid order item (product_id: %d) for order %d: %s", item.ProductID, order.ID, pqErr.Message)
				err = fmt.Errorf("%w: product %d", domain.ErrInvalidCart, item.ProductID)
				return nil, err
			}
			r.log.Errorf("Repository: Failed to insert order item (product_id: %d) for order %d: %v", item.ProductID, order.ID, err)
			return nil, fmt.Errorf("could not create order item (product_id: %d): %w", item.ProductID, err)
		}
	}

	r.log.Infof("Repository: Order %d created with %d items for user %d", order.ID, len(order.Items), order.UserID)
	return order, nil
}

func (r *postgresOrderRepository) GetOrderByID(id int64) (*domain.Order, error) {
	order := &domain.Order{}
	orderQuery := `
        SELECT id, user_id, status, total, COALESCE(notification, ''), created_at, updated_at
        FROM orders
        WHERE id = $1`
	err := r.db.QueryRow(orderQuery, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.Total,
		&order.Notification,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Order with ID %d not found", id)
			return nil, domain.NewNotFoundError("order", id)
		}
		r.log.Errorf("Repository: Failed to get order by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	items, err := r.getOrderItems(id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

func (r *postgresOrderRepository) getOrderItems(orderID int64) ([]domain.OrderItem, error) {
	itemsQuery := `
        SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price_at_purchase
        FROM order_items oi
        LEFT JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id = $1
        ORDER BY oi.id`
	rows, err := r.db.Query(itemsQuery, orderID)
	if err != nil {
		r.log.Errorf("Repository: Failed to query order items for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

func scanOrderItems(rows *sql.Rows) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return items, nil
}

func (r *postgresOrderRepository) ApproveOrder(id int64, notification string) (_ *domain.Order, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Repository: Failed to begin approval transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer r.finishTx(tx, &err)

	// Lock the order row so two approvals of the same order serialize.
	var status domain.OrderStatus
	err = tx.QueryRow(`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Order with ID %d not found for approval", id)
			err = domain.NewNotFoundError("order", id)
			return nil, err
		}
		r.log.Errorf("Repository: Failed to lock order %d for approval: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}
	if !domain.IsApprovable(status) {
		r.log.Warnf("Repository: Order %d cannot be approved from status '%s'", id, status)
		err = fmt.Errorf("%w: order %d is %s", domain.ErrInvalidTransition, id, status)
		return nil, err
	}

	lineQuery := `
        SELECT oi.product_id, oi.quantity, p.name
        FROM order_items oi
        LEFT JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id = $1
        ORDER BY oi.id`
	rows, err := tx.Query(lineQuery, id)
	if err != nil {
		r.log.Errorf("Repository: Failed to query line items for order %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}

	type line struct {
		productID int64
		quantity  int
		name      sql.NullString
	}
	var lines []line
	for rows.Next() {
		var l line
		if err = rows.Scan(&l.productID, &l.quantity, &l.name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning order item: %w", err)
		}
		lines = append(lines, l)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	rows.Close()

	// The stock decrements below are conditional updates; the first line
	// that cannot be covered aborts the transaction, undoing all of them.
	for _, l := range lines {
		if !l.name.Valid {
			r.log.Warnf("Repository: Order %d references missing product %d", id, l.productID)
			err = domain.NewNotFoundError("product", l.productID)
			return nil, err
		}
		var ok bool
		ok, err = decrementStockTx(tx, l.productID, l.quantity)
		if err != nil {
			r.log.Errorf("Repository: Stock decrement failed for product %d (order %d): %v", l.productID, id, err)
			return nil, err
		}
		if !ok {
			r.log.Warnf("Repository: Insufficient stock for product '%s' (order %d, quantity %d)", l.name.String, id, l.quantity)
			err = &domain.InsufficientStockError{ProductName: l.name.String}
			return nil, err
		}
	}

	order := &domain.Order{}
	err = tx.QueryRow(`
        UPDATE orders
        SET status = $1, notification = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING id, user_id, status, total, COALESCE(notification, ''), created_at, updated_at`,
		domain.StatusApproved, notification, id,
	).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.Total,
		&order.Notification,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		r.log.Errorf("Repository: Failed to set order %d approved: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	order.Items, err = r.getOrderItemsTx(tx, id)
	if err != nil {
		return nil, err
	}

	r.log.Infof("Repository: Order %d approved, stock decremented for %d line items", id, len(lines))
	return order, nil
}

func (r *postgresOrderRepository) getOrderItemsTx(tx *sql.Tx, orderID int64) ([]domain.OrderItem, error) {
	itemsQuery := `
        SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price_at_purchase
        FROM order_items oi
        LEFT JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id = $1
        ORDER BY oi.id`
	rows, err := tx.Query(itemsQuery, orderID)
	if err != nil {
		r.log.Errorf("Repository: Failed to query order items within tx for order ID %d: %v", orderID, err)
		return nil, fmt.Errorf("could not retrieve order items within tx: %w", err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

func (r *postgresOrderRepository) SetOrderStatus(id int64, allowedFrom []domain.OrderStatus, to domain.OrderStatus, notification string) (_ *domain.Order, err error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Repository: Failed to begin status transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer r.finishTx(tx, &err)

	var status domain.OrderStatus
	err = tx.QueryRow(`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: Order with ID %d not found for status update", id)
			err = domain.NewNotFoundError("order", id)
			return nil, err
		}
		r.log.Errorf("Repository: Failed to lock order %d for status update: %v", id, err)
		return nil, fmt.Errorf("could not retrieve order: %w", err)
	}

	allowed := false
	for _, from := range allowedFrom {
		if status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		r.log.Warnf("Repository: Order %d cannot transition from '%s' to '%s'", id, status, to)
		err = fmt.Errorf("%w: order %d is %s", domain.ErrInvalidTransition, id, status)
		return nil, err
	}

	order := &domain.Order{}
	err = tx.QueryRow(`
        UPDATE orders
        SET status = $1, notification = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING id, user_id, status, total, COALESCE(notification, ''), created_at, updated_at`,
		to, notification, id,
	).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.Total,
		&order.Notification,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		r.log.Errorf("Repository: Failed to update status for order ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	order.Items, err = r.getOrderItemsTx(tx, id)
	if err != nil {
		return nil, err
	}

	r.log.Infof("Repository: Order %d transitioned to '%s'", id, to)
	return order, nil
}

func (r *postgresOrderRepository) ListOrdersByUserID(userID int64, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	ordersQuery := `
        SELECT id, user_id, status, total, COALESCE(notification, ''), created_at, updated_at
        FROM orders
        WHERE user_id = $1
        ORDER BY id DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ordersQuery, userID, limit, offset)
	if err != nil {
		r.log.Errorf("Repository: Failed to list orders for user ID %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	orders, orderIDs, err := r.scanOrders(rows, false)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	if err := r.attachItems(orders, orderIDs); err != nil {
		return nil, err
	}

	r.log.Debugf("Repository: Retrieved %d orders for user ID %d", len(orders), userID)
	return orders, nil
}

func (r *postgresOrderRepository) ListOrders() ([]domain.Order, error) {
	ordersQuery := `
        SELECT o.id, o.user_id, o.status, o.total, COALESCE(o.notification, ''), o.created_at, o.updated_at,
               u.id, u.name, u.email, u.role
        FROM orders o
        JOIN users u ON u.id = o.user_id
        ORDER BY o.id DESC`
	rows, err := r.db.Query(ordersQuery)
	if err != nil {
		r.log.Errorf("Repository: Failed to list all orders: %v", err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	orders, orderIDs, err := r.scanOrders(rows, true)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	if err := r.attachItems(orders, orderIDs); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *postgresOrderRepository) scanOrders(rows *sql.Rows, withUser bool) ([]domain.Order, []int64, error) {
	var orders []domain.Order
	var orderIDs []int64
	for rows.Next() {
		var order domain.Order
		dest := []interface{}{
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.Total,
			&order.Notification,
			&order.CreatedAt,
			&order.UpdatedAt,
		}
		if withUser {
			order.User = &domain.UserProfile{}
			dest = append(dest, &order.User.ID, &order.User.Name, &order.User.Email, &order.User.Role)
		}
		if err := rows.Scan(dest...); err != nil {
			r.log.Errorf("Repository: Failed to scan order row: %v", err)
			return nil, nil, fmt.Errorf("error scanning order data: %w", err)
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, orderIDs, nil
}

func (r *postgresOrderRepository) attachItems(orders []domain.Order, orderIDs []int64) error {
	itemsQuery := `
        SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price_at_purchase
        FROM order_items oi
        LEFT JOIN products p ON p.id = oi.product_id
        WHERE oi.order_id = ANY($1::bigint[])
        ORDER BY oi.order_id, oi.id`
	itemRows, err := r.db.Query(itemsQuery, pq.Array(orderIDs))
	if err != nil {
		r.log.Errorf("Repository: Failed to query items for orders %v: %v", orderIDs, err)
		return fmt.Errorf("could not retrieve order items for list: %w", err)
	}
	defer itemRows.Close()

	items, err := scanOrderItems(itemRows)
	if err != nil {
		return err
	}

	itemsMap := make(map[int64][]domain.OrderItem)
	for _, item := range items {
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}
	for i := range orders {
		if grouped, ok := itemsMap[orders[i].ID]; ok {
			orders[i].Items = grouped
		} else {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return nil
}

func (r *postgresOrderRepository) HasOrderItem(userID, productID int64) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1
            FROM order_items oi
            JOIN orders o ON o.id = oi.order_id
            WHERE o.user_id = $1 AND oi.product_id = $2
        )`
	var purchased bool
	if err := r.db.QueryRow(query, userID, productID).Scan(&purchased); err != nil {
		r.log.Errorf("Repository: Failed purchase check for user %d, product %d: %v", userID, productID, err)
		return false, fmt.Errorf("could not check order items: %w", err)
	}
	return purchased, nil
}

func (r *postgresOrderRepository) CountOrders() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		r.log.Errorf("Repository: Failed to count orders: %v", err)
		return 0, fmt.Errorf("could not count orders: %w", err)
	}
	return count, nil
}
