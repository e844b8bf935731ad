package repo

import (
	"context"

	"github.com/Skotchmaster/medistock/internal/geo"
	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateStore(ctx context.Context, store *models.Store) error {
	return r.DB.WithContext(ctx).Create(store).Error
}

func (r *GormRepo) GetStore(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *GormRepo) GetStoreByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *GormRepo) UpdateStore(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Store, error) {
	res := r.DB.WithContext(ctx).Model(&models.Store{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetStore(ctx, id)
}

// StoresInBox returns the stores whose coordinates fall inside box.
// Callers still need the exact distance check; the box only narrows candidates.
func (r *GormRepo) StoresInBox(ctx context.Context, box geo.Box) ([]models.Store, error) {
	q := r.DB.WithContext(ctx).Model(&models.Store{}).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if box.FilterLng {
		q = q.Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	var stores []models.Store
	if err := q.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}
