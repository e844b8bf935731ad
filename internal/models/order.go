package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

type Order struct {
	ID                    uuid.UUID       `gorm:"size:36;primaryKey"                               json:"id"`
	UserID                uuid.UUID       `gorm:"size:36;index;not null"                           json:"user_id"`
	StoreID               uuid.UUID       `gorm:"size:36;index;not null"                           json:"store_id"`
	Status                OrderStatus     `gorm:"size:16;index;not null"                           json:"status"`
	TotalAmount           decimal.Decimal `gorm:"type:decimal(12,2);not null"                      json:"total_amount"`
	Items                 []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"   json:"items"`
	PreservationExpiresAt *time.Time      `                                                        json:"preservation_expires_at,omitempty"`
	ApprovedAt            *time.Time      `                                                        json:"approved_at,omitempty"`
	ConfirmedAt           *time.Time      `                                                        json:"confirmed_at,omitempty"`
	CancelledAt           *time.Time      `                                                        json:"cancelled_at,omitempty"`
	CancelReason          string          `                                                        json:"cancel_reason,omitempty"`
	CreatedAt             time.Time       `                                                        json:"created_at"`
	UpdatedAt             time.Time       `                                                        json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// PreservationElapsed reports whether an approved order's pickup window has passed.
func (o *Order) PreservationElapsed(now time.Time) bool {
	return o.Status == OrderStatusApproved &&
		o.PreservationExpiresAt != nil &&
		!now.Before(*o.PreservationExpiresAt)
}

type OrderItem struct {
	ID         uuid.UUID       `gorm:"size:36;primaryKey"          json:"id"`
	OrderID    uuid.UUID       `gorm:"size:36;index;not null"      json:"order_id"`
	MedicineID uuid.UUID       `gorm:"size:36;not null"            json:"medicine_id"`
	Name       string          `gorm:"not null"                    json:"name"`
	Quantity   int64           `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
