package repo

import (
	"context"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateMedicine(ctx context.Context, med *models.Medicine) error {
	return r.DB.WithContext(ctx).Create(med).Error
}

func (r *GormRepo) GetStoreMedicine(ctx context.Context, storeID, id uuid.UUID) (*models.Medicine, error) {
	var med models.Medicine
	if err := r.DB.WithContext(ctx).Where("id = ? AND store_id = ?", id, storeID).First(&med).Error; err != nil {
		return nil, err
	}
	return &med, nil
}

// UpdateMedicine writes only the given columns of one store's medicine and returns the fresh row.
// Stock decrements made concurrently survive unless fields carries "quantity".
func (r *GormRepo) UpdateMedicine(ctx context.Context, storeID, id uuid.UUID, fields map[string]any) (*models.Medicine, error) {
	if len(fields) > 0 {
		err := r.DB.WithContext(ctx).Model(&models.Medicine{}).
			Where("id = ? AND store_id = ?", id, storeID).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	// a missing row surfaces here as gorm.ErrRecordNotFound
	return r.GetStoreMedicine(ctx, storeID, id)
}

func (r *GormRepo) DeleteStoreMedicine(ctx context.Context, storeID, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND store_id = ?", id, storeID).Delete(&models.Medicine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListStoreMedicines(ctx context.Context, storeID uuid.UUID, offset, limit int) (int64, []models.Medicine, error) {
	q := r.DB.WithContext(ctx).Model(&models.Medicine{}).Where("store_id = ?", storeID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Medicine
	if err := q.Order("name ASC").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// MedicinesByIDs loads the listed medicines of one store, keyed by id.
func (r *GormRepo) MedicinesByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]models.Medicine, error) {
	out := make(map[uuid.UUID]models.Medicine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var meds []models.Medicine
	if err := r.DB.WithContext(ctx).Where("store_id = ? AND id IN ?", storeID, ids).Find(&meds).Error; err != nil {
		return nil, err
	}
	for _, m := range meds {
		out[m.ID] = m
	}
	return out, nil
}

// InStockMatches returns in-stock medicines of the given stores whose name contains query.
func (r *GormRepo) InStockMatches(ctx context.Context, storeIDs []uuid.UUID, query string) ([]models.Medicine, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}

	var meds []models.Medicine
	err := r.DB.WithContext(ctx).
		Where("store_id IN ?", storeIDs).
		Where("quantity > 0").
		Where("LOWER(name) LIKE ? ESCAPE '!'", likePattern(query)).
		Order("name ASC").
		Find(&meds).Error
	if err != nil {
		return nil, err
	}
	return meds, nil
}

func (r *GormRepo) SearchMedicines(ctx context.Context, query string, offset, limit int) (int64, []models.Medicine, error) {
	pattern := likePattern(query)
	q := r.DB.WithContext(ctx).Model(&models.Medicine{}).
		Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(brand) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Medicine
	if err := q.Order("name ASC").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// DecrementStock subtracts qty only while enough stock remains. It reports whether a row changed.
func (r *GormRepo) DecrementStock(ctx context.Context, storeID, medicineID uuid.UUID, qty int64) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Medicine{}).
		Where("id = ? AND store_id = ? AND quantity >= ?", medicineID, storeID, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
