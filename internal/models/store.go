package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Store struct {
	ID             uuid.UUID `gorm:"size:36;primaryKey"                 json:"id"`
	OwnerID        uuid.UUID `gorm:"size:36;uniqueIndex;not null"       json:"owner_id"`
	Name           string    `gorm:"not null;index"                     json:"name"`
	OwnerName      string    `                                          json:"owner_name"`
	Address        string    `                                          json:"address"`
	Latitude       float64   `gorm:"not null;index:idx_store_location"  json:"latitude"`
	Longitude      float64   `gorm:"not null;index:idx_store_location"  json:"longitude"`
	IsOpen         bool      `gorm:"not null"                           json:"is_open"`
	OperatingHours string    `                                          json:"operating_hours"`
	LicenseNumber  string    `                                          json:"license_number"`
	GSTNumber      string    `                                          json:"gst_number"`
	Phone          string    `                                          json:"phone"`
	CreatedAt      time.Time `                                          json:"created_at"`
	UpdatedAt      time.Time `                                          json:"updated_at"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

const (
	MedicineTypeMedicine   = "Medicine"
	MedicineTypeInstrument = "Instrument"
)

type Medicine struct {
	ID         uuid.UUID       `gorm:"size:36;primaryKey"           json:"id"`
	StoreID    uuid.UUID       `gorm:"size:36;index;not null"       json:"store_id"`
	Name       string          `gorm:"not null;index"               json:"name"`
	Brand      string          `                                    json:"brand"`
	Category   string          `                                    json:"category"`
	Quantity   int64           `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"  json:"price"`
	ExpiryDate *time.Time      `                                    json:"expiry_date,omitempty"`
	Type       string          `gorm:"size:20;not null"             json:"type"`
	CreatedAt  time.Time       `                                    json:"created_at"`
	UpdatedAt  time.Time       `                                    json:"updated_at"`
}

func (m *Medicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Type == "" {
		m.Type = MedicineTypeMedicine
	}
	return nil
}

func ValidMedicineType(t string) bool {
	return t == MedicineTypeMedicine || t == MedicineTypeInstrument
}

type Review struct {
	ID        uuid.UUID `gorm:"size:36;primaryKey"                             json:"id"`
	UserID    uuid.UUID `gorm:"size:36;uniqueIndex:idx_review_user_store"      json:"user_id"`
	StoreID   uuid.UUID `gorm:"size:36;uniqueIndex:idx_review_user_store;index" json:"store_id"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"          json:"rating"`
	Comment   string    `                                                      json:"comment"`
	CreatedAt time.Time `                                                      json:"created_at"`
	UpdatedAt time.Time `                                                      json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
