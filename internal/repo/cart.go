package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxCartAttempts = 5

var (
	ErrCartConflict = errors.New("cart modified concurrently")

	errStaleCart = errors.New("stale cart version")
)

// CartMutation receives the current lines and returns the lines to store.
type CartMutation func(items []models.CartItem) ([]models.CartItem, error)

func (r *GormRepo) FindCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return findCart(r.DB.WithContext(ctx), userID, true)
}

func findCart(db *gorm.DB, userID uuid.UUID, withProducts bool) (*models.Cart, error) {
	var cart models.Cart
	q := db.Where("user_id = ?", userID)
	if withProducts {
		q = q.Preload("Items.Product")
	} else {
		q = q.Preload("Items")
	}
	if err := q.First(&cart).Error; err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// GetOrCreateCart returns the user's cart, creating an empty one on first access.
// A concurrent creation loses on the unique user_id and re-reads the winner.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	db := r.DB.WithContext(ctx)
	cart, err := findCart(db, userID, true)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := models.Cart{UserID: userID}
	if err := db.Omit(clause.Associations).Create(&fresh).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	return findCart(db, userID, true)
}

// MutateCart runs a read-modify-write on the whole cart aggregate. The write is
// conditional on the version read, and a lost race is retried from a fresh read.
// With create set, a missing cart is created; otherwise gorm.ErrRecordNotFound is returned.
func (r *GormRepo) MutateCart(ctx context.Context, userID uuid.UUID, create bool, mutate CartMutation) (*models.Cart, error) {
	for attempt := 0; attempt < maxCartAttempts; attempt++ {
		err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return mutateCartTx(tx, userID, create, mutate)
		})
		switch {
		case err == nil:
			return r.FindCart(ctx, userID)
		case errors.Is(err, errStaleCart), errors.Is(err, gorm.ErrDuplicatedKey):
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		default:
			return nil, err
		}
	}
	return nil, ErrCartConflict
}

func mutateCartTx(tx *gorm.DB, userID uuid.UUID, create bool, mutate CartMutation) error {
	cart, err := findCart(tx, userID, false)
	if errors.Is(err, gorm.ErrRecordNotFound) && create {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
		if err := tx.Omit(clause.Associations).Create(cart).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	items, err := mutate(cart.Items)
	if err != nil {
		return err
	}
	return replaceCartItems(tx, cart, items)
}

// replaceCartItems bumps the cart version if it still matches and swaps the
// stored lines for items.
func replaceCartItems(tx *gorm.DB, cart *models.Cart, items []models.CartItem) error {
	res := tx.Model(&models.Cart{}).
		Where("id = ? AND version = ?", cart.ID, cart.Version).
		Updates(map[string]any{
			"version":    gorm.Expr("version + 1"),
			"updated_at": tx.NowFunc(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStaleCart
	}

	if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	rows := make([]models.CartItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, models.CartItem{
			ID:        it.ID,
			CartID:    cart.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}
