package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/repository"
	"github.com/EgehanKilicarslan/bookstore/internal/events"
	"github.com/EgehanKilicarslan/bookstore/internal/metrics"
)

// OrderLineInput is one requested {book, quantity} pair.
type OrderLineInput struct {
	BookID   uint
	Quantity int
}

// OrderService defines the interface for order business logic
type OrderService interface {
	// Create validates every line against the catalog and persists the
	// order with all its items in one transaction.
	Create(ctx context.Context, userID uint, lines []OrderLineInput) (*models.Order, error)
	ListMine(ctx context.Context, userID uint) ([]models.Order, error)
	// UpdateStatus applies an admin transition; only legal moves succeed.
	UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error)
}

type orderService struct {
	txManager  repository.TransactionManager
	orderRepo  repository.OrderRepository
	maxPerLine int
	publisher  events.Publisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// DefaultMaxQuantityPerLine applies when a non-positive cap is configured.
const DefaultMaxQuantityPerLine = 100

// NewOrderService creates a new order service instance
func NewOrderService(
	txManager repository.TransactionManager,
	orderRepo repository.OrderRepository,
	maxPerLine int,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) OrderService {
	if maxPerLine < 1 {
		maxPerLine = DefaultMaxQuantityPerLine
	}
	return &orderService{
		txManager:  txManager,
		orderRepo:  orderRepo,
		maxPerLine: maxPerLine,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
	}
}

func (s *orderService) Create(ctx context.Context, userID uint, lines []OrderLineInput) (*models.Order, error) {
	s.logger.Info("🛒 [OrderService] Creating order", "user_id", userID, "lines", len(lines))

	if len(lines) == 0 {
		return nil, apperror.ErrEmptyOrder
	}

	var order *models.Order
	err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		books := repos.NewBookRepository()

		items := make([]models.OrderItem, 0, len(lines))
		var total int64
		for i, line := range lines {
			if line.Quantity < 1 {
				return apperror.ErrInvalidInput.WithDetails(map[string]string{
					fmt.Sprintf("items[%d].quantity", i): "must be at least 1",
				})
			}

			book, err := books.FindByID(ctx, line.BookID)
			if err != nil {
				if errors.Is(err, repository.ErrBookNotFound) {
					return apperror.ErrBookNotFound.WithMessage(fmt.Sprintf("Book %d not found.", line.BookID))
				}
				return apperror.Wrap(err, "load book")
			}

			if line.Quantity > s.maxPerLine {
				return apperror.ErrOutOfStock.WithDetails(map[string]string{
					fmt.Sprintf("items[%d].quantity", i): fmt.Sprintf("must be at most %d", s.maxPerLine),
				})
			}

			if book.Price > 0 && int64(line.Quantity) > (math.MaxInt64-total)/book.Price {
				return apperror.ErrInvalidInput.WithDetails(map[string]string{
					fmt.Sprintf("items[%d].quantity", i): "order total is too large",
				})
			}

			items = append(items, models.OrderItem{
				BookID:   book.ID,
				Quantity: line.Quantity,
				Price:    book.Price,
			})
			total += book.Price * int64(line.Quantity)
		}

		order = &models.Order{
			UserID:      userID,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
			Items:       items,
		}
		if err := repos.NewOrderRepository().Create(ctx, order); err != nil {
			return apperror.Wrap(err, "persist order")
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("⚠️ [OrderService] Order rejected", "user_id", userID, "error", err)
		return nil, err
	}

	s.metrics.OrderCreated(order.TotalAmount)
	s.publish(ctx, events.OrderCreatedKey, orderCreatedEvent(order))

	s.logger.Info("✅ [OrderService] Order created", "order_id", order.ID, "total_amount", order.TotalAmount)
	return order, nil
}

func (s *orderService) ListMine(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("❌ [OrderService] Failed to list orders", "user_id", userID, "error", err)
		return nil, apperror.Wrap(err, "list orders")
	}
	return orders, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	next, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, apperror.ErrInvalidInput.WithDetails(map[string]string{
			"status": "must be one of [PENDING PAID SHIPPED CANCELLED]",
		})
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, apperror.ErrResourceNotFound.WithMessage("Order not found.")
		}
		return nil, apperror.Wrap(err, "load order")
	}

	current := order.Status
	if !current.CanTransition(next) {
		s.logger.Warn("⚠️ [OrderService] Illegal status transition",
			"order_id", orderID, "from", current, "to", next)
		return nil, apperror.ErrIllegalTransition.WithMessage(
			fmt.Sprintf("Cannot move order from %s to %s.", current, next))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, current, next); err != nil {
		if errors.Is(err, repository.ErrOrderStatusChanged) {
			return nil, apperror.ErrIllegalTransition.WithMessage("Order status changed concurrently; reload and retry.")
		}
		return nil, apperror.Wrap(err, "update order status")
	}
	order.Status = next

	s.metrics.OrderStatusChanged(string(current), string(next))
	s.publish(ctx, events.OrderStatusChangedKey, events.OrderStatusChanged{
		OrderID:    order.ID,
		From:       string(current),
		To:         string(next),
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info("✅ [OrderService] Order status updated", "order_id", orderID, "from", current, "to", next)
	return order, nil
}

func (s *orderService) publish(ctx context.Context, key string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, payload); err != nil {
		s.metrics.EventPublishFailed(key)
		s.logger.Warn("⚠️ [OrderService] Event not published", "routing_key", key, "error", err)
	}
}

func orderCreatedEvent(order *models.Order) events.OrderCreated {
	lines := make([]events.OrderLine, len(order.Items))
	for i, item := range order.Items {
		lines[i] = events.OrderLine{BookID: item.BookID, Quantity: item.Quantity, Price: item.Price}
	}
	return events.OrderCreated{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       lines,
		OccurredAt:  time.Now().UTC(),
	}
}
