package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillService records point-of-sale bills. Bills never change stock.
type BillService struct {
	Repo *repo.GormRepo
}

func validPayment(m string) bool {
	switch m {
	case models.PaymentCash, models.PaymentCard, models.PaymentUPI:
		return true
	}
	return false
}

func (s *BillService) CreateBill(ctx context.Context, ownerID uuid.UUID, req transport.CreateBillRequest) (*models.Bill, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if !validPayment(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}

	store, err := s.Repo.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "store")
	}

	total := decimal.Zero
	items := make([]models.BillItem, 0, len(req.Items))
	for i, it := range req.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: item %d: name required", ErrValidation, i+1)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d: quantity must be > 0", ErrValidation, i+1)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d: price must be >= 0", ErrValidation, i+1)
		}

		price := it.UnitPrice.Round(2)
		subtotal := price.Mul(decimal.NewFromInt(it.Quantity))
		total = total.Add(subtotal)
		items = append(items, models.BillItem{
			MedicineID: it.MedicineID,
			Name:       name,
			Quantity:   it.Quantity,
			UnitPrice:  price,
			Subtotal:   subtotal,
		})
	}

	bill := &models.Bill{
		StoreID:       store.ID,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: method,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
	}
	if err := s.Repo.CreateBill(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *BillService) ListBills(ctx context.Context, ownerID uuid.UUID, offset, limit int) (int64, []models.Bill, error) {
	store, err := s.Repo.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		return 0, nil, notFound(err, "store")
	}
	return s.Repo.ListStoreBills(ctx, store.ID, offset, limit)
}

func (s *BillService) GetBill(ctx context.Context, ownerID, id uuid.UUID) (*models.Bill, error) {
	store, err := s.Repo.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "store")
	}
	bill, err := s.Repo.GetStoreBill(ctx, store.ID, id)
	if err != nil {
		return nil, notFound(err, "bill")
	}
	return bill, nil
}
