package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "customer_id", "customer_name", "customer_email", "status", "payment_status", "payment_method",
	"subtotal", "shipping_cost", "total_amount", "shipping", "shipping_address", "payment_details", "created_at", "updated_at",
}

var orderItemColumns = []string{
	"id", "order_id", "product_id", "product_name", "selected_size", "quantity", "unit_price", "product_snapshot", "created_at",
}

func TestOrderRepository_CreateOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewOrderRepository(db)
	now := time.Now()

	order := &models.Order{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		CustomerName:  "Ana Souza",
		CustomerEmail: "ana@example.com",
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodPix,
		Subtotal:      decimal.NewFromInt(200),
		ShippingCost:  decimal.NewFromInt(15),
		TotalAmount:   decimal.NewFromInt(215),
		Shipping:      &models.ShippingSelection{ServiceID: "1", Name: "PAC", Price: decimal.NewFromInt(15)},
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "Capacete", Quantity: 2, UnitPrice: decimal.NewFromInt(100),
				Snapshot: &models.ProductSnapshot{Name: "Capacete", Price: decimal.NewFromInt(100)}},
		},
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
			WithArgs(order.Items[0].ID, order.ID, order.Items[0].ProductID, "Capacete", "", 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		// Act
		err := repo.CreateOrder(t.Context(), order)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, now, order.CreatedAt, time.Second)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - item insert rolls back", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("fk violation")
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).WillReturnError(dbErr)
		mock.ExpectRollback()

		// Act
		err := repo.CreateOrder(t.Context(), order)

		// Assert
		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetOrderByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewOrderRepository(db)
	orderID := uuid.New()
	now := time.Now()

	t.Run("Success - snapshot stored as JSON string", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(orderRowColumns).AddRow(
				orderID.String(), uuid.NewString(), "Ana", "ana@example.com", "pending", "approved", "card",
				"200.00", "15.00", "215.00", []byte(`{"service_id":"1","name":"PAC","price":"15"}`),
				[]byte(`{"street":"Av. Paulista","postal_code":"01310100"}`), []byte(`{"provider":"mercadopago","gateway_payment_id":"123"}`),
				now, now,
			))
		mock.ExpectQuery(regexp.QuoteMeta("FROM order_items WHERE order_id = ANY($1::uuid[])")).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).
				AddRow(uuid.NewString(), orderID.String(), uuid.NewString(), "Capacete", "58", 2, "100.00",
					[]byte(`"{\"name\":\"Capacete\",\"price\":\"100.00\"}"`), now).
				AddRow(uuid.NewString(), orderID.String(), uuid.NewString(), "Luva", "", 1, "50.00", []byte(`42`), now))

		// Act
		order, err := repo.GetOrderByID(t.Context(), orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "215", order.TotalAmount.String())
		assert.Equal(t, "Av. Paulista", order.ShippingAddress.Street)
		assert.Equal(t, "123", order.PaymentDetails.GatewayPaymentID)
		require.NotNil(t, order.Shipping)
		assert.Equal(t, "PAC", order.Shipping.Name)
		require.Len(t, order.Items, 2)
		require.NotNil(t, order.Items[0].Snapshot)
		assert.Equal(t, "Capacete", order.Items[0].Snapshot.Name)
		assert.Nil(t, order.Items[1].Snapshot, "undecodable snapshot is skipped")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).WithArgs(orderID).WillReturnError(sql.ErrNoRows)

		// Act
		order, err := repo.GetOrderByID(t.Context(), orderID)

		// Assert
		assert.Nil(t, order)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_ListOrders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewOrderRepository(db)

	// Arrange
	filter := models.OrderFilter{Status: models.OrderStatusPending, Search: "ana"}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM orders WHERE status = $1 AND (customer_name ILIKE $2")).
		WithArgs(models.OrderStatusPending, "%ana%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $3 OFFSET $4")).
		WithArgs(models.OrderStatusPending, "%ana%", models.DefaultPageSize, 0).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	// Act
	orders, total, err := repo.ListOrders(t.Context(), filter)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, orders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateOrderStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewOrderRepository(db)
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1")).
			WithArgs(models.OrderStatusShipped, orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateOrderStatus(t.Context(), orderID, models.OrderStatusShipped))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = $1")).
			WithArgs(models.OrderStatusShipped, orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateOrderStatus(t.Context(), orderID, models.OrderStatusShipped)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewOrderRepository(db)

	// Arrange
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM orders GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("pending", 3).AddRow("delivered", 2))
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(total_amount)")).
		WillReturnRows(sqlmock.NewRows([]string{"revenue", "pending"}).AddRow("430.00", 3))

	// Act
	stats, err := repo.GetStats(t.Context())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalOrders)
	assert.Equal(t, 2, stats.ByStatus[models.OrderStatusDelivered])
	assert.Equal(t, "430", stats.ApprovedRevenue.String())
	assert.Equal(t, 3, stats.PendingPayments)
	require.NoError(t, mock.ExpectationsWereMet())
}
