package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/codes"

	"storefront-api/internal/jobs"
	"storefront-api/internal/logging"
	"storefront-api/internal/models"
	"storefront-api/internal/ordering"
	"storefront-api/internal/repository"
	"storefront-api/internal/telemetry"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderNotOwned = errors.New("order does not belong to this customer")
	ErrEmptyOrder    = errors.New("order must contain at least one item")
)

// OrderService orchestrates order placement, cancellation and status
// changes around the pricing and inventory engine. All stock movement
// happens inside a single transaction with the order write it belongs to.
type OrderService struct {
	orderRepo *repository.OrderRepository
	userRepo  *repository.UserRepository
	engine    *ordering.Engine
	jobClient *jobs.Client
	taxRate   decimal.Decimal
}

func NewOrderService(orderRepo *repository.OrderRepository, userRepo *repository.UserRepository, jobClient *jobs.Client, taxRate float64) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		engine:    ordering.NewEngine(orderRepo),
		jobClient: jobClient,
		taxRate:   decimal.NewFromFloat(taxRate),
	}
}

type OrderItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	VariantID string `json:"variant_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	Items       []OrderItemInput    `json:"items" validate:"required,min=1,dive"`
	DeliveryFee decimal.NullDecimal `json:"delivery_fee"`
	Notes       string              `json:"notes"`
}

// Create places an order for a customer: price the lines, compute totals,
// then insert the order and reserve inventory atomically. The confirmation
// email job is enqueued after commit and never fails the order.
func (s *OrderService) Create(ctx context.Context, customerID string, input CreateOrderInput) (*models.Order, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "order.create")
	defer span.End()

	customer, err := s.userRepo.FindByID(ctx, customerID, models.UserTypeCustomer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		logging.Error(ctx, "failed to load customer", "customerId", customerID, "error", err)
		return nil, err
	}

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	requests := make([]ordering.LineItemRequest, len(input.Items))
	for i, item := range input.Items {
		requests[i] = ordering.LineItemRequest{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		}
	}

	prepared, err := s.engine.PrepareLineItems(ctx, requests)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "line item preparation failed")
		return nil, err
	}

	deliveryFee := decimal.Zero
	if input.DeliveryFee.Valid {
		deliveryFee = input.DeliveryFee.Decimal
	}
	totals := ordering.CalculateTotals(prepared, deliveryFee, s.taxRate)

	order := &models.Order{
		ID:          uuid.NewString(),
		OrderNumber: newOrderNumber(),
		CustomerID:  customerID,
		Status:      ordering.StatusPending,
		Subtotal:    totals.Subtotal,
		DeliveryFee: totals.DeliveryFee,
		VATAmount:   totals.VATAmount,
		Total:       totals.Total,
		Notes:       input.Notes,
	}
	order.Items = make([]*models.OrderItem, len(prepared))
	for i, line := range prepared {
		order.Items[i] = &models.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		}
	}

	err = s.orderRepo.InTransaction(ctx, func(tx *repository.OrderTx) error {
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}
		if err := tx.InsertItems(ctx, order.Items); err != nil {
			return err
		}
		return ordering.ReserveInventory(ctx, tx, prepared)
	})
	if err != nil {
		var stockErr *ordering.InsufficientStockError
		if errors.As(err, &stockErr) {
			telemetry.StockReservationFailures.Add(ctx, 1)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "order transaction failed")
		logging.Error(ctx, "failed to place order", "customerId", customerID, "error", err)
		return nil, err
	}

	telemetry.OrdersCreated.Add(ctx, 1)
	span.SetStatus(codes.Ok, "order placed")
	logging.Info(ctx, "order placed",
		"orderId", order.ID, "orderNumber", order.OrderNumber,
		"customerId", customerID, "total", order.Total.String())

	if err := s.jobClient.EnqueueOrderConfirmation(ctx, order.ID, order.OrderNumber, customer.Email, order.Total.StringFixed(2)); err != nil {
		logging.Warn(ctx, "order placed but confirmation not enqueued", "orderId", order.ID, "error", err)
	}

	return order, nil
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%d-%s", time.Now().Unix(), suffix)
}

// FindForUser fetches one order, enforcing that customers only see their
// own orders. Admins see everything.
func (s *OrderService) FindForUser(ctx context.Context, orderID, userID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !isAdmin && order.CustomerID != userID {
		return nil, ErrOrderNotOwned
	}
	return order, nil
}

// ListForCustomer pages through one customer's orders, optionally
// narrowed to a status.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID string, status ordering.Status, page, limit int) ([]*models.Order, PageMeta, error) {
	return s.list(ctx, repository.OrderFilter{CustomerID: customerID, Status: status}, page, limit)
}

// List is the admin view, optionally filtered by status and customer.
func (s *OrderService) List(ctx context.Context, status ordering.Status, customerID string, page, limit int) ([]*models.Order, PageMeta, error) {
	return s.list(ctx, repository.OrderFilter{CustomerID: customerID, Status: status}, page, limit)
}

func (s *OrderService) list(ctx context.Context, filter repository.OrderFilter, page, limit int) ([]*models.Order, PageMeta, error) {
	page, limit = NormalizePage(page, limit)

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, PageMeta{}, err
	}

	orders, err := s.orderRepo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return orders, NewPageMeta(total, page, limit), nil
}

// Cancel lets a customer cancel their own PENDING order. Inventory comes
// back in the same transaction that flips the status, so a crash between
// the two can never leave stock restored on a live order.
func (s *OrderService) Cancel(ctx context.Context, orderID, customerID, reason string) (*models.Order, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "order.cancel")
	defer span.End()

	order, err := s.FindForUser(ctx, orderID, customerID, false)
	if err != nil {
		return nil, err
	}

	if err := ordering.CheckCancellable(order.Status); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	err = s.orderRepo.InTransaction(ctx, func(tx *repository.OrderTx) error {
		if err := ordering.RestoreInventory(ctx, tx, orderID); err != nil {
			return err
		}
		if err := tx.UpdateStatus(ctx, orderID, ordering.StatusCancelled); err != nil {
			return err
		}
		if reason != "" {
			return tx.AppendNotes(ctx, orderID, "Cancelled: "+reason)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancel transaction failed")
		logging.Error(ctx, "failed to cancel order", "orderId", orderID, "error", err)
		return nil, err
	}

	telemetry.OrdersCancelled.Add(ctx, 1)
	span.SetStatus(codes.Ok, "order cancelled")
	logging.Info(ctx, "order cancelled", "orderId", orderID, "customerId", customerID)

	return s.orderRepo.FindByID(ctx, orderID)
}

// UpdateStatus applies an admin status change. Setting the current status
// again is a no-op that returns the order unchanged; moving to CANCELLED
// is only allowed from PENDING and restores inventory atomically.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status ordering.Status) (*models.Order, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "order.update_status")
	defer span.End()

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.Status == status {
		return order, nil
	}

	if err := ordering.CheckTransition(order.Status, status); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	err = s.orderRepo.InTransaction(ctx, func(tx *repository.OrderTx) error {
		if status == ordering.StatusCancelled {
			if err := ordering.RestoreInventory(ctx, tx, orderID); err != nil {
				return err
			}
		}
		return tx.UpdateStatus(ctx, orderID, status)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "status transaction failed")
		logging.Error(ctx, "failed to update order status", "orderId", orderID, "error", err)
		return nil, err
	}

	if status == ordering.StatusCancelled {
		telemetry.OrdersCancelled.Add(ctx, 1)
	}
	span.SetStatus(codes.Ok, "order status updated")
	logging.Info(ctx, "order status updated", "orderId", orderID, "from", string(order.Status), "to", string(status))

	return s.orderRepo.FindByID(ctx, orderID)
}
