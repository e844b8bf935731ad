package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VaultItem is a personal medication schedule entry. It never references store inventory.
type VaultItem struct {
	ID        uuid.UUID  `gorm:"size:36;primaryKey"       json:"id"`
	UserID    uuid.UUID  `gorm:"size:36;index;not null"   json:"user_id"`
	Name      string     `gorm:"not null"                 json:"name"`
	Dosage    string     `                                json:"dosage"`
	Frequency string     `                                json:"frequency"`
	Timings   []string   `gorm:"serializer:json"          json:"timings"`
	StartDate time.Time  `gorm:"not null"                 json:"start_date"`
	EndDate   *time.Time `                                json:"end_date,omitempty"`
	Notes     string     `                                json:"notes"`
	CreatedAt time.Time  `                                json:"created_at"`
	UpdatedAt time.Time  `                                json:"updated_at"`
}

func (v *VaultItem) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// ActiveAt reports whether the schedule still runs at t (no end date, or ending today or later).
func (v *VaultItem) ActiveAt(t time.Time) bool {
	if v.EndDate == nil {
		return true
	}
	y, m, d := t.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !v.EndDate.UTC().Before(today)
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Store{},
		&Medicine{},
		&Order{},
		&OrderItem{},
		&Bill{},
		&BillItem{},
		&VaultItem{},
		&Review{},
	}
}
