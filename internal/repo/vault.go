package repo

import (
	"context"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateVaultItem(ctx context.Context, item *models.VaultItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) ListVaultItems(ctx context.Context, userID uuid.UUID) ([]models.VaultItem, error) {
	var items []models.VaultItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetUserVaultItem(ctx context.Context, userID, id uuid.UUID) (*models.VaultItem, error) {
	var item models.VaultItem
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SaveVaultItem(ctx context.Context, item *models.VaultItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteUserVaultItem(ctx context.Context, userID, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.VaultItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
