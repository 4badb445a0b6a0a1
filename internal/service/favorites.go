package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/Skotchmaster/electroshop/internal/repo"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

type FavoritesService struct {
	Repo *repo.GormRepo
}

func (s *FavoritesService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		return notFound(err, ErrUserNotFound)
	}
	return nil
}

// Toggle adds the product to the user's favorites, or removes it when present.
func (s *FavoritesService) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return false, err
	}
	exists, err := s.Repo.ProductExists(ctx, productID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, ErrProductNotFound
	}

	added, err := s.Repo.ToggleFavorite(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	logging.FromContext(ctx).Info("favorite_toggled", "user_id", userID, "product_id", productID, "added", added)
	return added, nil
}

// List returns the user's favorite products that still exist.
func (s *FavoritesService) List(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.Repo.FavoriteProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ProductsByIDs(ctx, ids)
}
