package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxToggleAttempts = 3

// ToggleFavorite removes the (user, product) pair when present and inserts it
// otherwise. A concurrent insert of the same pair fails on the primary key and
// is retried, which then removes it.
func (r *GormRepo) ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		added, err := r.toggleFavoriteOnce(ctx, userID, productID)
		if err == nil {
			return added, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, err
		}
		lastErr = err
	}
	return false, lastErr
}

func (r *GormRepo) toggleFavoriteOnce(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	added := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		if err := tx.Create(&models.Favorite{UserID: userID, ProductID: productID}).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// FavoriteProductIDs lists a user's favorites, oldest first.
func (r *GormRepo) FavoriteProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if err := r.DB.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// FavoritesByUser groups favorite product ids by user for the given users.
func (r *GormRepo) FavoritesByUser(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []models.Favorite
	if err := r.DB.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, f := range rows {
		out[f.UserID] = append(out[f.UserID], f.ProductID)
	}
	return out, nil
}
