package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/medistock/internal/events"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/service"
	pkgdb "github.com/Skotchmaster/medistock/pkg/db"
	"github.com/Skotchmaster/medistock/pkg/tokens"
)

var testSecret = []byte("test-access-secret")

type testEnv struct {
	t      *testing.T
	E      *echo.Echo
	Repo   *repo.GormRepo
	Events *events.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := pkgdb.Open(ctx, pkgdb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(db) })

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.AutoMigrate(ctx))

	rec := &events.Recorder{}
	e := echo.New()
	Configure(e)
	Register(e, &Deps{
		StoreHandler:    &StoreHTTP{Svc: &service.StoreService{Repo: r, DefaultRadiusKm: service.DefaultRadiusKm}},
		MedicineHandler: &MedicineHTTP{Svc: &service.MedicineService{Repo: r}},
		OrderHandler:    &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: rec}},
		VaultHandler:    &VaultHTTP{Svc: &service.VaultService{Repo: r}},
		BillHandler:     &BillHTTP{Svc: &service.BillService{Repo: r}},
		ReviewHandler:   &ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		JWTSecret:       testSecret,
		DB:              r,
	})

	return &testEnv{t: t, E: e, Repo: r, Events: rec}
}

func (env *testEnv) token(subject uuid.UUID, role string) string {
	env.t.Helper()
	tok, err := tokens.NewAccessToken(subject.String(), role, time.Now().Add(time.Hour), testSecret)
	require.NoError(env.t, err)
	return tok
}

// doJSONRequest runs a request through the full router and decodes the envelope.
func (env *testEnv) doJSONRequest(method, path string, body any, token string) (*httptest.ResponseRecorder, map[string]any) {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

// registerStore creates a store through the API and returns its id with the owner token.
func (env *testEnv) registerStore(name string, lat, lng float64) (string, string) {
	env.t.Helper()
	tok := env.token(uuid.New(), tokens.RoleStore)
	rec, resp := env.doJSONRequest(http.MethodPost, "/api/v1/stores", map[string]any{
		"name":      name,
		"latitude":  lat,
		"longitude": lng,
		"is_open":   true,
	}, tok)
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
	return resp["store"].(map[string]any)["id"].(string), tok
}

func (env *testEnv) addMedicine(storeTok, name string, qty int, price string) string {
	env.t.Helper()
	rec, resp := env.doJSONRequest(http.MethodPost, "/api/v1/medicines", map[string]any{
		"name":     name,
		"quantity": qty,
		"price":    price,
	}, storeTok)
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
	return resp["medicine"].(map[string]any)["id"].(string)
}
