package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrValidation      = errors.New("validation")      // 400
	ErrUnauthenticated = errors.New("unauthenticated") // 401
	ErrForbidden       = errors.New("forbidden")       // 403
	ErrNotFound        = errors.New("not found")       // 404
	ErrConflict        = errors.New("conflict")        // 400
)

var (
	ErrEmptyCart          = fmt.Errorf("cart is empty: %w", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthenticated)
	ErrUserExists         = fmt.Errorf("user already exists: %w", ErrConflict)

	ErrUserNotFound    = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product not found: %w", ErrNotFound)
	ErrCartNotFound    = fmt.Errorf("cart not found: %w", ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("item not found in cart: %w", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("order not found: %w", ErrNotFound)
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// notFound maps gorm's missing-record error to the given sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
