package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/Skotchmaster/electroshop/internal/repo"
	"github.com/Skotchmaster/electroshop/internal/transport"
)

type AdminService struct {
	Repo *repo.GormRepo
}

// ListUsers returns every user with favorites expanded and no password hash.
func (s *AdminService) ListUsers(ctx context.Context) ([]transport.AdminUser, error) {
	users, err := s.Repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	favs, err := s.Repo.FavoritesByUser(ctx, ids)
	if err != nil {
		return nil, err
	}

	var allIDs []uuid.UUID
	for _, pids := range favs {
		allIDs = append(allIDs, pids...)
	}
	products, err := s.Repo.ProductsByIDs(ctx, allIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]transport.AdminUser, 0, len(users))
	for _, u := range users {
		au := transport.AdminUser{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
			Favorites: []models.Product{},
		}
		for _, pid := range favs[u.ID] {
			if p, ok := byID[pid]; ok {
				au.Favorites = append(au.Favorites, p)
			}
		}
		out = append(out, au)
	}
	return out, nil
}
