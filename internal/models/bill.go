package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentUPI  = "upi"
)

// Bill is a point-of-sale record. It has no update path once written.
type Bill struct {
	ID            uuid.UUID       `gorm:"size:36;primaryKey"                             json:"id"`
	StoreID       uuid.UUID       `gorm:"size:36;index;not null"                         json:"store_id"`
	Items         []BillItem      `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"  json:"items"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"                    json:"total_amount"`
	PaymentMethod string          `gorm:"size:16;not null"                               json:"payment_method"`
	CustomerName  string          `                                                      json:"customer_name,omitempty"`
	CustomerPhone string          `                                                      json:"customer_phone,omitempty"`
	CreatedAt     time.Time       `                                                      json:"created_at"`
}

func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type BillItem struct {
	ID         uuid.UUID       `gorm:"size:36;primaryKey"          json:"id"`
	BillID     uuid.UUID       `gorm:"size:36;index;not null"      json:"bill_id"`
	MedicineID *uuid.UUID      `gorm:"size:36"                     json:"medicine_id,omitempty"`
	Name       string          `gorm:"not null"                    json:"name"`
	Quantity   int64           `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

func (i *BillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
