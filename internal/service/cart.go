package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electroshop/internal/events"
	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/Skotchmaster/electroshop/internal/repo"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

// MaxLineQuantity bounds one cart line so order totals stay within the money column.
const MaxLineQuantity = 10_000

var errQuantityTooLarge = fmt.Errorf("quantity cannot exceed %d: %w", MaxLineQuantity, ErrValidation)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.Repo.GetOrCreateCart(ctx, userID)
}

// AddItem adds quantity units of a product, merging with an existing line.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add_item", "user_id", userID, "product_id", productID)

	if productID == uuid.Nil {
		return nil, fmt.Errorf("productId is required: %w", ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}
	if quantity > MaxLineQuantity {
		return nil, errQuantityTooLarge
	}

	exists, err := s.Repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		l.Warn("add_item_failed", "status", 404, "reason", "product not found")
		return nil, ErrProductNotFound
	}

	cart, err := s.Repo.MutateCart(ctx, userID, true, func(items []models.CartItem) ([]models.CartItem, error) {
		for i := range items {
			if items[i].ProductID == productID {
				if items[i].Quantity+uint(quantity) > MaxLineQuantity {
					return nil, errQuantityTooLarge
				}
				items[i].Quantity += uint(quantity)
				return items, nil
			}
		}
		return append(items, models.CartItem{ProductID: productID, Quantity: uint(quantity)}), nil
	})
	if err != nil {
		return nil, s.mutationError(err)
	}

	s.emit(ctx, userID, "cart_item_added", map[string]any{"product_id": productID, "quantity": quantity})
	return cart, nil
}

// RemoveItem drops the product's line. A missing line is not an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.MutateCart(ctx, userID, false, func(items []models.CartItem) ([]models.CartItem, error) {
		kept := items[:0]
		for _, it := range items {
			if it.ProductID != productID {
				kept = append(kept, it)
			}
		}
		return kept, nil
	})
	if err != nil {
		return nil, s.mutationError(err)
	}

	s.emit(ctx, userID, "cart_item_removed", map[string]any{"product_id": productID})
	return cart, nil
}

// UpdateQuantity overwrites the quantity of an existing line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}
	if quantity > MaxLineQuantity {
		return nil, errQuantityTooLarge
	}

	cart, err := s.Repo.MutateCart(ctx, userID, false, func(items []models.CartItem) ([]models.CartItem, error) {
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = uint(quantity)
				return items, nil
			}
		}
		return nil, ErrItemNotFound
	})
	if err != nil {
		return nil, s.mutationError(err)
	}

	s.emit(ctx, userID, "cart_item_updated", map[string]any{"product_id": productID, "quantity": quantity})
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.MutateCart(ctx, userID, false, func([]models.CartItem) ([]models.CartItem, error) {
		return nil, nil
	})
	if err != nil {
		return nil, s.mutationError(err)
	}
	s.emit(ctx, userID, "cart_cleared", nil)
	return cart, nil
}

func (s *CartService) mutationError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrCartNotFound
	case errors.Is(err, repo.ErrCartConflict):
		return fmt.Errorf("%v: %w", err, ErrConflict)
	default:
		return err
	}
}

func (s *CartService) emit(ctx context.Context, userID uuid.UUID, eventType string, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	payload["user_id"] = userID
	events.Emit(ctx, s.Events, events.TopicCart, userID.String(), eventType, payload)
}
