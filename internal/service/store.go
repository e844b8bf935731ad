package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Skotchmaster/medistock/internal/geo"
	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultRadiusKm = 10.0

type StoreService struct {
	Repo            *repo.GormRepo
	DefaultRadiusKm float64
}

type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	// RadiusKm nil means the configured default.
	RadiusKm *float64
	Medicine string
}

type MedicineMatch struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Type     string          `json:"type"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type NearbyStore struct {
	models.Store
	DistanceKm float64         `json:"distance_km"`
	Distance   string          `json:"distance"`
	Medicines  []MedicineMatch `json:"medicines,omitempty"`
}

type StoreDetails struct {
	models.Store
	Rating repo.RatingSummary `json:"rating"`
}

func (s *StoreService) radius(r *float64) (float64, error) {
	if r == nil {
		if s.DefaultRadiusKm > 0 {
			return s.DefaultRadiusKm, nil
		}
		return DefaultRadiusKm, nil
	}
	v := *r
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%w: radius must be a positive number of kilometers", ErrValidation)
	}
	return v, nil
}

// Nearby returns stores within the radius, nearest first. With a medicine query only
// stores holding a matching in-stock medicine are kept, with those medicines attached.
func (s *StoreService) Nearby(ctx context.Context, q NearbyQuery) ([]NearbyStore, error) {
	origin, err := geo.ValidateCoordinates(q.Latitude, q.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	radius, err := s.radius(q.RadiusKm)
	if err != nil {
		return nil, err
	}

	candidates, err := s.Repo.StoresInBox(ctx, geo.BoundingBox(origin, radius))
	if err != nil {
		return nil, err
	}

	out := make([]NearbyStore, 0, len(candidates))
	for _, st := range candidates {
		d := origin.DistanceTo(geo.Point{Latitude: st.Latitude, Longitude: st.Longitude})
		if d <= radius {
			out = append(out, NearbyStore{Store: st, DistanceKm: d, Distance: geo.FormatDistance(d)})
		}
	}

	if query := strings.TrimSpace(q.Medicine); query != "" {
		out, err = s.attachMatches(ctx, out, query)
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *StoreService) attachMatches(ctx context.Context, stores []NearbyStore, query string) ([]NearbyStore, error) {
	ids := make([]uuid.UUID, len(stores))
	for i := range stores {
		ids[i] = stores[i].ID
	}

	meds, err := s.Repo.InStockMatches(ctx, ids, query)
	if err != nil {
		return nil, err
	}

	byStore := make(map[uuid.UUID][]MedicineMatch)
	for _, m := range meds {
		byStore[m.StoreID] = append(byStore[m.StoreID], MedicineMatch{
			ID:       m.ID,
			Name:     m.Name,
			Brand:    m.Brand,
			Type:     m.Type,
			Price:    m.Price,
			Quantity: m.Quantity,
		})
	}

	kept := stores[:0]
	for _, st := range stores {
		if matches := byStore[st.ID]; len(matches) > 0 {
			st.Medicines = matches
			kept = append(kept, st)
		}
	}
	return kept, nil
}

func (s *StoreService) Register(ctx context.Context, ownerID uuid.UUID, req transport.RegisterStoreRequest) (*models.Store, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, fmt.Errorf("%w: coordinates required", ErrInvalidLocation)
	}
	p, err := geo.ValidateCoordinates(*req.Latitude, *req.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}

	if _, err := s.Repo.GetStoreByOwner(ctx, ownerID); err == nil {
		return nil, ErrStoreExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	open := true
	if req.IsOpen != nil {
		open = *req.IsOpen
	}

	store := &models.Store{
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(req.Name),
		OwnerName:      req.OwnerName,
		Address:        req.Address,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		IsOpen:         open,
		OperatingHours: req.OperatingHours,
		LicenseNumber:  req.LicenseNumber,
		GSTNumber:      req.GSTNumber,
		Phone:          req.Phone,
	}
	if err := s.Repo.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// Mine returns the store owned by the principal.
func (s *StoreService) Mine(ctx context.Context, ownerID uuid.UUID) (*models.Store, error) {
	store, err := s.Repo.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "store")
	}
	return store, nil
}

func (s *StoreService) Get(ctx context.Context, id uuid.UUID) (*StoreDetails, error) {
	store, err := s.Repo.GetStore(ctx, id)
	if err != nil {
		return nil, notFound(err, "store")
	}
	rating, err := s.Repo.StoreRating(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StoreDetails{Store: *store, Rating: rating}, nil
}

func (s *StoreService) SetOpen(ctx context.Context, ownerID uuid.UUID, open bool) (*models.Store, error) {
	return s.update(ctx, ownerID, map[string]any{"is_open": open})
}

func (s *StoreService) UpdateLocation(ctx context.Context, ownerID uuid.UUID, req transport.UpdateLocationRequest) (*models.Store, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return nil, fmt.Errorf("%w: coordinates required", ErrInvalidLocation)
	}
	p, err := geo.ValidateCoordinates(*req.Latitude, *req.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}

	fields := map[string]any{"latitude": p.Latitude, "longitude": p.Longitude}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	return s.update(ctx, ownerID, fields)
}

func (s *StoreService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, req transport.UpdateStoreRequest) (*models.Store, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		fields["name"] = name
	}
	if req.OwnerName != nil {
		fields["owner_name"] = *req.OwnerName
	}
	if req.OperatingHours != nil {
		fields["operating_hours"] = *req.OperatingHours
	}
	if req.LicenseNumber != nil {
		fields["license_number"] = *req.LicenseNumber
	}
	if req.GSTNumber != nil {
		fields["gst_number"] = *req.GSTNumber
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if len(fields) == 0 {
		return s.Mine(ctx, ownerID)
	}
	return s.update(ctx, ownerID, fields)
}

func (s *StoreService) update(ctx context.Context, ownerID uuid.UUID, fields map[string]any) (*models.Store, error) {
	store, err := s.Mine(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	updated, err := s.Repo.UpdateStore(ctx, store.ID, fields)
	if err != nil {
		return nil, notFound(err, "store")
	}
	return updated, nil
}
