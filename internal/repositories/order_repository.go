package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	UpdatePaymentState(ctx context.Context, id uuid.UUID, paymentStatus models.PaymentStatus, orderStatus models.OrderStatus, details models.PaymentDetails) error
	GetStats(ctx context.Context) (*models.OrderStats, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `
	id, customer_id, customer_name, customer_email, status, payment_status, payment_method,
	subtotal, shipping_cost, total_amount, shipping, shipping_address, payment_details, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	var shipping []byte

	err := row.Scan(
		&order.ID, &order.CustomerID, &order.CustomerName, &order.CustomerEmail, &order.Status, &order.PaymentStatus,
		&order.PaymentMethod, &order.Subtotal, &order.ShippingCost, &order.TotalAmount, &shipping,
		&order.ShippingAddress, &order.PaymentDetails, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(shipping) > 0 {
		order.Shipping = &models.ShippingSelection{}
		if err := json.Unmarshal(shipping, order.Shipping); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shipping selection: %w", err)
		}
	}

	return order, nil
}

// CreateOrder inserts the order and its items in one transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var shipping any
	if order.Shipping != nil {
		shipping = order.Shipping
	}

	query := `
		INSERT INTO orders (id, customer_id, customer_name, customer_email, status, payment_status, payment_method,
			subtotal, shipping_cost, total_amount, shipping, shipping_address, payment_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = tx.QueryRowContext(dbCtx, query,
		order.ID, order.CustomerID, order.CustomerName, order.CustomerEmail, order.Status, order.PaymentStatus,
		order.PaymentMethod, order.Subtotal, order.ShippingCost, order.TotalAmount, shipping, order.ShippingAddress,
		order.PaymentDetails,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, product_name, selected_size, quantity, unit_price, product_snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	for _, item := range order.Items {
		var snapshot []byte
		if item.Snapshot != nil {
			snapshot, err = json.Marshal(item.Snapshot)
			if err != nil {
				return fmt.Errorf("failed to marshal product snapshot: %w", err)
			}
		}

		_, err := tx.ExecContext(dbCtx, itemQuery, item.ID, order.ID, item.ProductID, item.ProductName, item.SelectedSize,
			item.Quantity, item.UnitPrice, snapshot)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.getOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *orderRepository) GetOrderByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*models.Order, error) {
	return r.getOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE payment_details->>'gateway_payment_id' = $1`, gatewayPaymentID)
}

func (r *orderRepository) getOrder(ctx context.Context, query string, arg any) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order, err := scanOrder(r.DB.QueryRowContext(dbCtx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	items, err := r.loadItems(dbCtx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}

	order.Items = items[order.ID]

	return order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderItem, error) {
	ids := make([]string, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, id.String())
	}

	query := `
		SELECT id, order_id, product_id, product_name, selected_size, quantity, unit_price, product_snapshot, created_at
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]models.OrderItem, len(orderIDs))

	for rows.Next() {
		var item models.OrderItem
		var snapshot []byte

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.SelectedSize,
			&item.Quantity, &item.UnitPrice, &snapshot, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		if len(snapshot) > 0 {
			parsed, err := models.ParseProductSnapshot(snapshot)
			if err != nil {
				slog.Warn("Skipping undecodable product snapshot",
					slog.String("orderItemId", item.ID.String()),
					slog.String("error", err.Error()))
			} else {
				item.Snapshot = &parsed
			}
		}

		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return items, nil
}

// ListOrders filters by status, customer and a free text search over customer name, email and order id.
func (r *orderRepository) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	page, size := models.NormalizePage(filter.Page, filter.PageSize)

	var conditions []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(customer_name ILIKE $%d OR customer_email ILIKE $%d OR id::text ILIKE $%d)", n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	args = append(args, size, models.Offset(page, size))
	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	ids := []uuid.UUID{}

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) == 0 {
		return orders, total, nil
	}

	items, err := r.loadItems(dbCtx, ids)
	if err != nil {
		return nil, 0, err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, total, nil
}

// UpdateOrderStatus is a direct write; no transition graph is enforced here.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update the order: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *orderRepository) UpdatePaymentState(ctx context.Context, id uuid.UUID, paymentStatus models.PaymentStatus, orderStatus models.OrderStatus, details models.PaymentDetails) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET payment_status = $1, status = $2, payment_details = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(dbCtx, query, paymentStatus, orderStatus, details, id)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update the order: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *orderRepository) GetStats(ctx context.Context) (*models.OrderStats, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	stats := &models.OrderStats{ByStatus: map[models.OrderStatus]int{}, ApprovedRevenue: decimal.Zero}

	rows, err := r.DB.QueryContext(dbCtx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status models.OrderStatus
		var count int

		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan order stats: %w", err)
		}

		stats.ByStatus[status] = count
		stats.TotalOrders += count
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'approved'), 0),
		       COUNT(*) FILTER (WHERE payment_status = 'pending')
		FROM orders
	`

	if err := r.DB.QueryRowContext(dbCtx, query).Scan(&stats.ApprovedRevenue, &stats.PendingPayments); err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}

	return stats, nil
}
