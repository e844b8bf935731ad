package service

import (
	"context"
	"testing"
	"time"

	"github.com/Skotchmaster/medistock/internal/events"
	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/repo"
	pkgdb "github.com/Skotchmaster/medistock/pkg/db"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	t      *testing.T
	ctx    context.Context
	repo   *repo.GormRepo
	events *events.Recorder
	now    time.Time

	stores    *StoreService
	orders    *OrderService
	medicines *MedicineService
	vault     *VaultService
	bills     *BillService
	reviews   *ReviewService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := pkgdb.Open(ctx, pkgdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.AutoMigrate(ctx))

	f := &fixture{t: t, ctx: ctx, repo: r, events: &events.Recorder{}, now: testNow}
	clock := func() time.Time { return f.now }

	f.stores = &StoreService{Repo: r, DefaultRadiusKm: DefaultRadiusKm}
	f.orders = &OrderService{Repo: r, Events: f.events, Now: clock}
	f.medicines = &MedicineService{Repo: r}
	f.vault = &VaultService{Repo: r, Now: clock}
	f.bills = &BillService{Repo: r}
	f.reviews = &ReviewService{Repo: r}
	return f
}

func (f *fixture) store(name string, lat, lng float64, open bool) (*models.Store, uuid.UUID) {
	f.t.Helper()
	owner := uuid.New()
	st := &models.Store{OwnerID: owner, Name: name, Latitude: lat, Longitude: lng, IsOpen: open}
	require.NoError(f.t, f.repo.CreateStore(f.ctx, st))
	return st, owner
}

func (f *fixture) medicine(storeID uuid.UUID, name string, qty int64, price string) *models.Medicine {
	f.t.Helper()
	m := &models.Medicine{
		StoreID:  storeID,
		Name:     name,
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
		Type:     models.MedicineTypeMedicine,
	}
	require.NoError(f.t, f.repo.CreateMedicine(f.ctx, m))
	return m
}

func (f *fixture) stock(storeID, id uuid.UUID) int64 {
	f.t.Helper()
	m, err := f.repo.GetStoreMedicine(f.ctx, storeID, id)
	require.NoError(f.t, err)
	return m.Quantity
}

func (f *fixture) status(id uuid.UUID) models.OrderStatus {
	f.t.Helper()
	o, err := f.repo.GetOrder(f.ctx, id)
	require.NoError(f.t, err)
	return o.Status
}

func ptr[T any](v T) *T { return &v }
