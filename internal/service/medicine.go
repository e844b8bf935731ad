package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/Skotchmaster/medistock/pkg/logging"
	"github.com/google/uuid"
)

// MedicineIndex is the optional full-text index kept in step with inventory.
type MedicineIndex interface {
	IndexMedicine(ctx context.Context, m models.Medicine) error
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
	SearchMedicines(ctx context.Context, query string, from, size int) (int64, []models.Medicine, error)
}

type MedicineService struct {
	Repo  *repo.GormRepo
	Index MedicineIndex
}

type ImportResult struct {
	Row     int        `json:"row"`
	Success bool       `json:"success"`
	ID      *uuid.UUID `json:"id,omitempty"`
	Error   string     `json:"error,omitempty"`
}

func (s *MedicineService) ownerStore(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	store, err := s.Repo.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "store")
	}
	return store, nil
}

func medicineFromRequest(storeID uuid.UUID, req transport.MedicineRequest) (*models.Medicine, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	typ := req.Type
	if typ == "" {
		typ = models.MedicineTypeMedicine
	}
	if !models.ValidMedicineType(typ) {
		return nil, fmt.Errorf("%w: unknown type %q", ErrValidation, req.Type)
	}

	return &models.Medicine{
		StoreID:    storeID,
		Name:       name,
		Brand:      strings.TrimSpace(req.Brand),
		Category:   strings.TrimSpace(req.Category),
		Quantity:   req.Quantity,
		Price:      req.Price.Round(2),
		ExpiryDate: req.ExpiryDate,
		Type:       typ,
	}, nil
}

func (s *MedicineService) Create(ctx context.Context, ownerID uuid.UUID, req transport.MedicineRequest) (*models.Medicine, error) {
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	med, err := medicineFromRequest(store.ID, req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreateMedicine(ctx, med); err != nil {
		return nil, err
	}
	s.syncIndex(ctx, med)
	return med, nil
}

// Patch changes only the fields present in req. Stock is written only when quantity is given.
func (s *MedicineService) Patch(ctx context.Context, ownerID, id uuid.UUID, req transport.PatchMedicineRequest) (*models.Medicine, error) {
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		fields["name"] = name
	}
	if req.Brand != nil {
		fields["brand"] = strings.TrimSpace(*req.Brand)
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must be >= 0", ErrValidation)
		}
		fields["quantity"] = *req.Quantity
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		fields["price"] = req.Price.Round(2)
	}
	if req.ExpiryDate != nil {
		fields["expiry_date"] = *req.ExpiryDate
	}
	if req.Type != nil {
		if !models.ValidMedicineType(*req.Type) {
			return nil, fmt.Errorf("%w: unknown type %q", ErrValidation, *req.Type)
		}
		fields["type"] = *req.Type
	}

	med, err := s.Repo.UpdateMedicine(ctx, store.ID, id, fields)
	if err != nil {
		return nil, notFound(err, "medicine")
	}
	s.syncIndex(ctx, med)
	return med, nil
}

func (s *MedicineService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteStoreMedicine(ctx, store.ID, id); err != nil {
		return notFound(err, "medicine")
	}
	if s.Index != nil {
		if err := s.Index.DeleteMedicine(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("index_delete_failed", "medicine_id", id, "error", err)
		}
	}
	return nil
}

func (s *MedicineService) ListMine(ctx context.Context, ownerID uuid.UUID, offset, limit int) (int64, []models.Medicine, error) {
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return 0, nil, err
	}
	return s.Repo.ListStoreMedicines(ctx, store.ID, offset, limit)
}

// BulkImport inserts each valid row and reports every row's outcome. Rows are numbered from 1.
func (s *MedicineService) BulkImport(ctx context.Context, ownerID uuid.UUID, rows []transport.MedicineRequest) ([]ImportResult, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrValidation)
	}
	store, err := s.ownerStore(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	l := logging.FromContext(ctx)
	results := make([]ImportResult, len(rows))
	for i, row := range rows {
		results[i].Row = i + 1

		med, err := medicineFromRequest(store.ID, row)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}
		if err := s.Repo.CreateMedicine(ctx, med); err != nil {
			l.Warn("bulk_import_row_failed", "row", i+1, "error", err)
			results[i].Error = "cannot save row"
			continue
		}
		s.syncIndex(ctx, med)

		id := med.ID
		results[i].Success = true
		results[i].ID = &id
	}
	return results, nil
}

// Search uses the full-text index when one is configured, else a substring match over the database.
func (s *MedicineService) Search(ctx context.Context, query string, offset, limit int) (int64, []models.Medicine, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	if s.Index != nil {
		return s.Index.SearchMedicines(ctx, query, offset, limit)
	}
	return s.Repo.SearchMedicines(ctx, query, offset, limit)
}

func (s *MedicineService) syncIndex(ctx context.Context, med *models.Medicine) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexMedicine(ctx, *med); err != nil {
		logging.FromContext(ctx).Warn("index_sync_failed", "medicine_id", med.ID, "error", err)
	}
}
