package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderBuilder turns a cart with populated products into the order to insert.
type OrderBuilder func(cart *models.Cart) (*models.Order, error)

// CreateOrderFromCart builds an order from the user's cart, inserts it and
// empties the cart in one transaction. A missing cart is passed to build as nil.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, userID uuid.UUID, build OrderBuilder) (*models.Order, error) {
	var order *models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID, true)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = nil
		}

		order, err = build(cart)
		if err != nil {
			return err
		}

		if err := tx.Omit("Items.Product").Create(order).Error; err != nil {
			return err
		}
		if cart == nil {
			return nil
		}
		return replaceCartItems(tx, cart, nil)
	})
	if err != nil {
		if errors.Is(err, errStaleCart) {
			return nil, ErrCartConflict
		}
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// SetOrderStatus overwrites the status and returns the order with its previous status.
func (r *GormRepo) SetOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, models.OrderStatus, error) {
	var (
		order    models.Order
		previous models.OrderStatus
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}
		previous = order.Status
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Preload("Items").Where("id = ?", id).First(&order).Error
	})
	if err != nil {
		return nil, "", err
	}
	return &order, previous, nil
}
