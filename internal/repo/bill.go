package repo

import (
	"context"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/google/uuid"
)

func (r *GormRepo) CreateBill(ctx context.Context, bill *models.Bill) error {
	return r.DB.WithContext(ctx).Create(bill).Error
}

func (r *GormRepo) GetStoreBill(ctx context.Context, storeID, id uuid.UUID) (*models.Bill, error) {
	var bill models.Bill
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ? AND store_id = ?", id, storeID).First(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *GormRepo) ListStoreBills(ctx context.Context, storeID uuid.UUID, offset, limit int) (int64, []models.Bill, error) {
	q := r.DB.WithContext(ctx).Model(&models.Bill{}).Where("store_id = ?", storeID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var bills []models.Bill
	if err := q.Preload("Items").Order("created_at DESC").Order("id ASC").Offset(offset).Limit(limit).Find(&bills).Error; err != nil {
		return 0, nil, err
	}
	return total, bills, nil
}
