package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/google/uuid"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

type StoreReviews struct {
	Reviews []models.Review    `json:"reviews"`
	Summary repo.RatingSummary `json:"summary"`
}

// Submit stores the user's review of a store, replacing any earlier one.
func (s *ReviewService) Submit(ctx context.Context, userID, storeID uuid.UUID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if _, err := s.Repo.GetStore(ctx, storeID); err != nil {
		return nil, notFound(err, "store")
	}

	return s.Repo.UpsertReview(ctx, &models.Review{
		UserID:  userID,
		StoreID: storeID,
		Rating:  rating,
		Comment: strings.TrimSpace(comment),
	})
}

func (s *ReviewService) ListForStore(ctx context.Context, storeID uuid.UUID) (*StoreReviews, error) {
	if _, err := s.Repo.GetStore(ctx, storeID); err != nil {
		return nil, notFound(err, "store")
	}
	reviews, err := s.Repo.ListStoreReviews(ctx, storeID)
	if err != nil {
		return nil, err
	}
	summary, err := s.Repo.StoreRating(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return &StoreReviews{Reviews: reviews, Summary: summary}, nil
}
