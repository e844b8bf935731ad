package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RegisterStoreRequest struct {
	Name           string   `json:"name"            validate:"required,max=200"`
	OwnerName      string   `json:"owner_name"      validate:"max=200"`
	Address        string   `json:"address"         validate:"max=500"`
	Latitude       *float64 `json:"latitude"        validate:"required"`
	Longitude      *float64 `json:"longitude"       validate:"required"`
	IsOpen         *bool    `json:"is_open"`
	OperatingHours string   `json:"operating_hours" validate:"max=200"`
	LicenseNumber  string   `json:"license_number"  validate:"max=100"`
	GSTNumber      string   `json:"gst_number"      validate:"max=100"`
	Phone          string   `json:"phone"           validate:"max=30"`
}

type UpdateStoreRequest struct {
	Name           *string `json:"name"            validate:"omitempty,min=1,max=200"`
	OwnerName      *string `json:"owner_name"      validate:"omitempty,max=200"`
	OperatingHours *string `json:"operating_hours" validate:"omitempty,max=200"`
	LicenseNumber  *string `json:"license_number"  validate:"omitempty,max=100"`
	GSTNumber      *string `json:"gst_number"      validate:"omitempty,max=100"`
	Phone          *string `json:"phone"           validate:"omitempty,max=30"`
}

type SetOpenRequest struct {
	IsOpen *bool `json:"is_open" validate:"required"`
}

type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude"  validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
	Address   *string  `json:"address"   validate:"omitempty,max=500"`
}

type MedicineRequest struct {
	Name       string          `json:"name"        validate:"required,max=200"`
	Brand      string          `json:"brand"       validate:"max=200"`
	Category   string          `json:"category"    validate:"max=100"`
	Quantity   int64           `json:"quantity"    validate:"gte=0"`
	Price      decimal.Decimal `json:"price"`
	ExpiryDate *time.Time      `json:"expiry_date"`
	Type       string          `json:"type"        validate:"omitempty,oneof=Medicine Instrument"`
}

type PatchMedicineRequest struct {
	Name       *string          `json:"name"        validate:"omitempty,min=1,max=200"`
	Brand      *string          `json:"brand"       validate:"omitempty,max=200"`
	Category   *string          `json:"category"    validate:"omitempty,max=100"`
	Quantity   *int64           `json:"quantity"    validate:"omitempty,gte=0"`
	Price      *decimal.Decimal `json:"price"`
	ExpiryDate *time.Time       `json:"expiry_date"`
	Type       *string          `json:"type"        validate:"omitempty,oneof=Medicine Instrument"`
}

// BulkImportRequest rows are checked one by one; a bad row never rejects the batch.
type BulkImportRequest struct {
	Rows []MedicineRequest `json:"rows" validate:"required,min=1,max=1000"`
}

type OrderItemRequest struct {
	MedicineID uuid.UUID `json:"medicine_id" validate:"required"`
	Quantity   int64     `json:"quantity"    validate:"gt=0"`
}

type CreateOrderRequest struct {
	StoreID uuid.UUID          `json:"store_id" validate:"required"`
	Items   []OrderItemRequest `json:"items"    validate:"required,min=1,dive"`
}

type ApproveOrderRequest struct {
	Minutes *int `json:"preservation_minutes"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type UpdateOrderStatusRequest struct {
	Status  string `json:"status"               validate:"required"`
	Minutes *int   `json:"preservation_minutes"`
	Reason  string `json:"reason"               validate:"max=500"`
}

type BillItemRequest struct {
	MedicineID *uuid.UUID      `json:"medicine_id"`
	Name       string          `json:"name"       validate:"required,max=200"`
	Quantity   int64           `json:"quantity"   validate:"gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type CreateBillRequest struct {
	Items         []BillItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card upi"`
	CustomerName  string            `json:"customer_name"  validate:"max=200"`
	CustomerPhone string            `json:"customer_phone" validate:"max=30"`
}

type VaultItemRequest struct {
	Name      string     `json:"name"       validate:"required,max=200"`
	Dosage    string     `json:"dosage"     validate:"max=100"`
	Frequency string     `json:"frequency"  validate:"max=100"`
	Timings   []string   `json:"timings"    validate:"max=24,dive,max=20"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes"      validate:"max=2000"`
}

type PatchVaultItemRequest struct {
	Name      *string    `json:"name"       validate:"omitempty,min=1,max=200"`
	Dosage    *string    `json:"dosage"     validate:"omitempty,max=100"`
	Frequency *string    `json:"frequency"  validate:"omitempty,max=100"`
	Timings   []string   `json:"timings"    validate:"omitempty,max=24,dive,max=20"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Notes     *string    `json:"notes"      validate:"omitempty,max=2000"`

	// ClearEndDate turns the item back into an open-ended course.
	ClearEndDate bool `json:"clear_end_date"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}
