package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	indexed map[uuid.UUID]models.Medicine
	deleted []uuid.UUID
	queries []string
	failAll bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[uuid.UUID]models.Medicine{}}
}

func (f *fakeIndex) IndexMedicine(_ context.Context, m models.Medicine) error {
	if f.failAll {
		return errors.New("index unavailable")
	}
	f.indexed[m.ID] = m
	return nil
}

func (f *fakeIndex) DeleteMedicine(_ context.Context, id uuid.UUID) error {
	if f.failAll {
		return errors.New("index unavailable")
	}
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) SearchMedicines(_ context.Context, q string, _, _ int) (int64, []models.Medicine, error) {
	f.queries = append(f.queries, q)
	var out []models.Medicine
	for _, m := range f.indexed {
		out = append(out, m)
	}
	return int64(len(out)), out, nil
}

func TestMedicineCRUD(t *testing.T) {
	f := newFixture(t)
	_, owner := f.store("Corner", 19.07, 72.87, true)
	ix := newFakeIndex()
	f.medicines.Index = ix

	expiry := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	med, err := f.medicines.Create(f.ctx, owner, transport.MedicineRequest{
		Name: " Paracetamol ", Brand: "Calpol", Quantity: 50, Price: decimal.RequireFromString("12.499"), ExpiryDate: &expiry,
	})
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol", med.Name)
	assert.Equal(t, models.MedicineTypeMedicine, med.Type)
	assert.Equal(t, "12.50", med.Price.StringFixed(2))
	assert.Contains(t, ix.indexed, med.ID)

	patched, err := f.medicines.Patch(f.ctx, owner, med.ID, transport.PatchMedicineRequest{
		Quantity: ptr(int64(20)), Type: ptr(models.MedicineTypeInstrument),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), patched.Quantity)
	assert.Equal(t, "Calpol", patched.Brand)
	assert.Equal(t, int64(20), ix.indexed[med.ID].Quantity)

	total, items, err := f.medicines.ListMine(f.ctx, owner, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, models.MedicineTypeInstrument, items[0].Type)

	require.NoError(t, f.medicines.Delete(f.ctx, owner, med.ID))
	assert.Equal(t, []uuid.UUID{med.ID}, ix.deleted)
	require.ErrorIs(t, f.medicines.Delete(f.ctx, owner, med.ID), ErrNotFound)
}

func TestMedicine_Validation(t *testing.T) {
	f := newFixture(t)
	_, owner := f.store("Corner", 19.07, 72.87, true)

	tests := []struct {
		name string
		req  transport.MedicineRequest
	}{
		{"empty name", transport.MedicineRequest{Name: "  ", Quantity: 1}},
		{"negative quantity", transport.MedicineRequest{Name: "x", Quantity: -1}},
		{"negative price", transport.MedicineRequest{Name: "x", Price: decimal.NewFromInt(-1)}},
		{"unknown type", transport.MedicineRequest{Name: "x", Type: "Gadget"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.medicines.Create(f.ctx, owner, tt.req)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := f.medicines.Create(f.ctx, uuid.New(), transport.MedicineRequest{Name: "x"})
	require.ErrorIs(t, err, ErrNotFound, "principal without a store")
}

func TestMedicine_OtherStoreIsNotFound(t *testing.T) {
	f := newFixture(t)
	_, owner := f.store("Mine", 19.07, 72.87, true)
	theirs, _ := f.store("Theirs", 19.08, 72.88, true)
	med := f.medicine(theirs.ID, "Ibuprofen", 10, "5")

	_, err := f.medicines.Patch(f.ctx, owner, med.ID, transport.PatchMedicineRequest{Quantity: ptr(int64(0))})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.medicines.Delete(f.ctx, owner, med.ID), ErrNotFound)
	assert.Equal(t, int64(10), f.stock(theirs.ID, med.ID))
}

func TestPatch_PriceOnlyKeepsConcurrentDecrement(t *testing.T) {
	f := newFixture(t)
	st, owner := f.store("Corner", 19.07, 72.87, true)
	med := f.medicine(st.ID, "Paracetamol", 50, "12")

	// stock moves after the seller loaded the row but before the edit lands
	loaded, err := f.repo.GetStoreMedicine(f.ctx, st.ID, med.ID)
	require.NoError(t, err)
	changed, err := f.repo.DecrementStock(f.ctx, st.ID, med.ID, 10)
	require.NoError(t, err)
	require.True(t, changed)

	patched, err := f.medicines.Patch(f.ctx, owner, loaded.ID, transport.PatchMedicineRequest{
		Price: ptr(decimal.RequireFromString("15")),
	})
	require.NoError(t, err)
	assert.Equal(t, "15.00", patched.Price.StringFixed(2))
	assert.Equal(t, int64(40), patched.Quantity)
	assert.Equal(t, int64(40), f.stock(st.ID, med.ID))
}

func TestBulkImport_ReportsEveryRow(t *testing.T) {
	f := newFixture(t)
	st, owner := f.store("Corner", 19.07, 72.87, true)

	rows := []transport.MedicineRequest{
		{Name: "Paracetamol", Quantity: 10, Price: decimal.NewFromInt(2)},
		{Name: "", Quantity: 5},
		{Name: "Thermometer", Quantity: 2, Price: decimal.NewFromInt(150), Type: models.MedicineTypeInstrument},
		{Name: "Bad", Quantity: -3},
		{Name: "Gauze", Type: "Cloth"},
	}
	results, err := f.medicines.BulkImport(f.ctx, owner, rows)
	require.NoError(t, err)
	require.Len(t, results, 5)

	var ok []int
	for _, r := range results {
		if r.Success {
			ok = append(ok, r.Row)
			require.NotNil(t, r.ID)
			assert.Empty(t, r.Error)
		} else {
			assert.NotEmpty(t, r.Error)
			assert.Nil(t, r.ID)
		}
	}
	assert.Equal(t, []int{1, 3}, ok)

	total, _, err := f.repo.ListStoreMedicines(f.ctx, st.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	_, err = f.medicines.BulkImport(f.ctx, owner, nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestSearch_DatabaseFallback(t *testing.T) {
	f := newFixture(t)
	st, _ := f.store("Corner", 19.07, 72.87, true)
	f.medicine(st.ID, "Paracetamol", 10, "2")
	f.medicine(st.ID, "Amoxicillin", 10, "40")
	m := f.medicine(st.ID, "Vitamin C", 10, "1")
	_, err := f.repo.UpdateMedicine(f.ctx, st.ID, m.ID, map[string]any{"brand": "Paracare"})
	require.NoError(t, err)

	total, got, err := f.medicines.Search(f.ctx, "PARA", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, got, 2)

	_, _, err = f.medicines.Search(f.ctx, "  ", 0, 10)
	require.ErrorIs(t, err, ErrValidation)
}

func TestSearch_UsesIndexWhenConfigured(t *testing.T) {
	f := newFixture(t)
	_, owner := f.store("Corner", 19.07, 72.87, true)
	ix := newFakeIndex()
	f.medicines.Index = ix

	_, err := f.medicines.Create(f.ctx, owner, transport.MedicineRequest{Name: "Paracetamol", Quantity: 1})
	require.NoError(t, err)

	total, got, err := f.medicines.Search(f.ctx, "paracetmol", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"paracetmol"}, ix.queries)
}

func TestIndexFailuresDoNotFailWrites(t *testing.T) {
	f := newFixture(t)
	_, owner := f.store("Corner", 19.07, 72.87, true)
	f.medicines.Index = &fakeIndex{indexed: map[uuid.UUID]models.Medicine{}, failAll: true}

	med, err := f.medicines.Create(f.ctx, owner, transport.MedicineRequest{Name: "Paracetamol", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, f.medicines.Delete(f.ctx, owner, med.ID))
}
