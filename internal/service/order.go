package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electroshop/internal/events"
	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/Skotchmaster/electroshop/internal/repo"
	"github.com/Skotchmaster/electroshop/pkg/logging"
	"github.com/Skotchmaster/electroshop/pkg/tokens"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// snapshotCart copies every line with the product's current price.
func snapshotCart(userID uuid.UUID, shippingAddress string, cart *models.Cart) (*models.Order, error) {
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		ShippingAddress: shippingAddress,
		TotalAmount:     decimal.Zero,
		Items:           make([]models.OrderItem, 0, len(cart.Items)),
	}
	for _, it := range cart.Items {
		if it.Product == nil {
			return nil, fmt.Errorf("product %s in cart no longer exists: %w", it.ProductID, ErrProductNotFound)
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
		order.TotalAmount = order.TotalAmount.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return order, nil
}

// CreateOrder turns the user's cart into a pending order and empties the cart
// in the same transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, shippingAddress string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		return nil, fmt.Errorf("shippingAddress is required: %w", ErrValidation)
	}

	order, err := s.Repo.CreateOrderFromCart(ctx, userID, func(cart *models.Cart) (*models.Order, error) {
		return snapshotCart(userID, shippingAddress, cart)
	})
	if err != nil {
		if errors.Is(err, repo.ErrCartConflict) {
			return nil, fmt.Errorf("%v: %w", err, ErrConflict)
		}
		if !errors.Is(err, ErrValidation) && !errors.Is(err, ErrNotFound) {
			l.Error("create_order_failed", "status", 500, "error", err)
		}
		return nil, err
	}

	l.Info("order_created", "order_id", order.ID, "total", order.TotalAmount.String())
	events.Emit(ctx, s.Events, events.TopicOrders, userID.String(), "order_created", order)
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID)
}

func (s *OrderService) GetOrderByID(ctx context.Context, id, requesterID uuid.UUID, requesterRole string) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	if order.UserID != requesterID && requesterRole != tokens.RoleAdmin {
		return nil, fmt.Errorf("not authorized to view this order: %w", ErrForbidden)
	}
	return order, nil
}

// UpdateStatus overwrites the order status. Any transition between known
// statuses is accepted; backward moves are only logged.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, requesterRole string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status", "order_id", id)

	if requesterRole != tokens.RoleAdmin {
		return nil, fmt.Errorf("not authorized to update order status: %w", ErrForbidden)
	}
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, fmt.Errorf("unknown order status %q: %w", status, ErrValidation)
	}

	order, prev, err := s.Repo.SetOrderStatus(ctx, id, next)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if prev != next && !prev.Precedes(next) {
		l.Warn("order_status_backward", "from", prev, "to", next)
	}
	l.Info("order_status_changed", "from", prev, "to", next)
	events.Emit(ctx, s.Events, events.TopicOrders, order.UserID.String(), "order_status_changed", map[string]any{
		"order_id": order.ID,
		"from":     prev,
		"to":       next,
	})
	return order, nil
}
