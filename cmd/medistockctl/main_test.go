package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/medistock/internal/events"
	"github.com/Skotchmaster/medistock/internal/models"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/pkg/db"
)

func TestPrintStores(t *testing.T) {
	var buf bytes.Buffer
	printStores(&buf, []service.NearbyStore{
		{
			Store:     models.Store{Name: "Apollo", Address: "MG Road"},
			Distance:  "850 m",
			Medicines: []service.MedicineMatch{{Name: "Paracetamol", Quantity: 40}},
		},
		{Store: models.Store{Name: "Medplus"}, Distance: "2.4 km"},
	})

	out := buf.String()
	assert.Contains(t, out, "DISTANCE")
	assert.Contains(t, out, "Paracetamol (40)")
	assert.Contains(t, out, "2.4 km")
}

func TestSweep_PublishesCancellations(t *testing.T) {
	ctx := context.Background()
	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	r := &repo.GormRepo{DB: gdb}
	require.NoError(t, r.AutoMigrate(ctx))

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Minute)
	later := now.Add(time.Hour)
	overdue := &models.Order{
		UserID: uuid.New(), StoreID: uuid.New(), Status: models.OrderStatusApproved,
		TotalAmount: decimal.NewFromInt(4), PreservationExpiresAt: &expired,
	}
	waiting := &models.Order{
		UserID: uuid.New(), StoreID: uuid.New(), Status: models.OrderStatusApproved,
		TotalAmount: decimal.NewFromInt(4), PreservationExpiresAt: &later,
	}
	require.NoError(t, r.CreateOrder(ctx, overdue))
	require.NoError(t, r.CreateOrder(ctx, waiting))

	rec := &events.Recorder{}
	n, err := sweep(ctx, r, rec, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{events.OrderCancelled}, rec.Types())

	got := rec.Events()
	require.Len(t, got, 1)
	assert.Equal(t, events.TopicOrderEvents, got[0].Topic)
	assert.Equal(t, overdue.ID.String(), got[0].Key)
	assert.Equal(t, service.ExpiredCancelReason, got[0].Event.(events.OrderEvent).Reason)
}

func TestRunNearby_RequiresCoordinates(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no flags", nil},
		{"missing lng", []string{"-lat", "19.07"}},
		{"missing lat", []string{"-lng", "72.87", "-radius", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runNearby(context.Background(), &buf, nil, tt.args)
			require.ErrorContains(t, err, "-lat and -lng are required")
			assert.Empty(t, buf.String())
		})
	}
}
