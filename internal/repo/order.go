package repo

import (
	"context"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID uuid.UUID, offset, limit int) (int64, []models.Order, error) {
	return r.listOrders(ctx, r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID), offset, limit)
}

func (r *GormRepo) ListStoreOrders(ctx context.Context, storeID uuid.UUID, status models.OrderStatus, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("store_id = ?", storeID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return r.listOrders(ctx, q, offset, limit)
}

func (r *GormRepo) listOrders(ctx context.Context, q *gorm.DB, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").Order("id ASC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// TransitionOrder applies fields only if the order belongs to storeID and is currently in one of from.
// The returned count is 0 when the guard did not match.
func (r *GormRepo) TransitionOrder(ctx context.Context, id, storeID uuid.UUID, from []models.OrderStatus, fields map[string]any) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND store_id = ? AND status IN ?", id, storeID, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *GormRepo) ListApprovedOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Where("status = ?", models.OrderStatusApproved).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// DeleteOrder hard-deletes the order and its items when it belongs to storeID and is in one of from.
func (r *GormRepo) DeleteOrder(ctx context.Context, id, storeID uuid.UUID, from []models.OrderStatus) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND store_id = ? AND status IN ?", id, storeID, from).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
	})
	return affected, err
}
