package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/helmet-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/errors"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/google/uuid"
)

type OrderService interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetCustomerOrder(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, filter models.OrderFilter) (*models.OrderHistoryResponse, error)
	ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
	GetStats(ctx context.Context) (*models.OrderStats, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// CreateOrder persists a pending order. Totals are computed by the caller and stored as given.
func (s *orderService) CreateOrder(ctx context.Context, order *models.Order) error {

	if len(order.Items) == 0 {
		return errors.BadRequestError("Cannot create order with empty cart")
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	order.Status = models.OrderStatusPending
	order.PaymentStatus = models.PaymentStatusPending

	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return errors.DatabaseError("Failed to create order").WithError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Order created",
		slog.String("orderId", order.ID.String()),
		slog.String("total", order.TotalAmount.StringFixed(2)),
		slog.String("paymentMethod", string(order.PaymentMethod)),
	)

	return nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, orderLookupError(err)
	}

	return order, nil
}

// GetCustomerOrder hides orders of other customers behind NOT_FOUND.
func (s *orderService) GetCustomerOrder(ctx context.Context, customerID, id uuid.UUID) (*models.Order, error) {

	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.CustomerID != customerID {
		return nil, errors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter models.OrderFilter) (*models.OrderHistoryResponse, error) {

	filter.Page, filter.PageSize = models.NormalizePage(filter.Page, filter.PageSize)

	orders, total, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return &models.OrderHistoryResponse{Orders: orders, Total: total, Page: filter.Page, Size: filter.PageSize}, nil
}

func (s *orderService) ListCustomerOrders(ctx context.Context, customerID uuid.UUID, page, size int) (*models.OrderHistoryResponse, error) {
	return s.ListOrders(ctx, models.OrderFilter{CustomerID: &customerID, Page: page, PageSize: size})
}

// UpdateOrderStatus writes the status as given. Moves back to an earlier stage are allowed and logged.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, orderLookupError(err)
	}

	previous := order.Status

	if models.IsBackwardTransition(previous, status) {
		logger.Warn("Order status moved backwards",
			slog.String("orderId", id.String()),
			slog.String("from", string(previous)),
			slog.String("to", string(status)),
		)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Order not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	order.Status = status

	logger.Info("Order status updated",
		slog.String("orderId", id.String()),
		slog.String("from", string(previous)),
		slog.String("to", string(status)),
	)

	return order, nil
}

func (s *orderService) GetStats(ctx context.Context) (*models.OrderStats, error) {

	stats, err := s.orderRepo.GetStats(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to compute order stats").WithError(err)
	}

	return stats, nil
}

func orderLookupError(err error) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundError("Order not found").WithError(err)
	}

	return errors.DatabaseError("Failed to fetch order").WithError(err)
}
