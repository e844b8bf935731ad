package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// UpsertReview keeps one review per (user, store); a repeat submission replaces rating and comment.
func (r *GormRepo) UpsertReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.UpdatedAt = time.Now().UTC()
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(review).Error
	if err != nil {
		return nil, err
	}

	var saved models.Review
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND store_id = ?", review.UserID, review.StoreID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *GormRepo) ListStoreReviews(ctx context.Context, storeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.DB.WithContext(ctx).Where("store_id = ?", storeID).Order("updated_at DESC").Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormRepo) StoreRating(ctx context.Context, storeID uuid.UUID) (RatingSummary, error) {
	var sum RatingSummary
	err := r.DB.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Scan(&sum).Error
	return sum, err
}
