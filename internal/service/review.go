package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/Skotchmaster/electroshop/internal/repo"
	"github.com/Skotchmaster/electroshop/internal/transport"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func (s *ReviewService) Create(ctx context.Context, userID, productID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("productId is required: %w", ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}
	exists, err := s.Repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	review := &models.Review{UserID: userID, ProductID: productID, Rating: rating, Comment: comment}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]transport.ReviewResponse, error) {
	reviews, err := s.Repo.ListReviews(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, transport.NewReviewResponse(r))
	}
	return out, nil
}
