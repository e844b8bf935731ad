package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/medistock/pkg/tokens"
)

func TestNearby_InvalidCoordinatesIs400(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []string{"lat=abc&lng=77", "lat=91&lng=0", "lng=77", "lat=12&lng=77&radius=-1", "lat=12&lng=77&radius=wide"} {
		rec, resp := env.doJSONRequest(http.MethodGet, "/api/v1/stores/nearby?"+q, nil, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Equal(t, false, resp["success"], q)
	}
}

func TestNearby_SortsByDistanceWithMatches(t *testing.T) {
	env := newTestEnv(t)

	farID, farTok := env.registerStore("Far Pharmacy", 12.99, 77.59)
	nearID, nearTok := env.registerStore("Near Pharmacy", 12.971, 77.591)
	env.addMedicine(farTok, "Paracetamol 650", 5, "20.00")
	env.addMedicine(nearTok, "Paracetamol 500", 3, "15.00")

	rec, resp := env.doJSONRequest(http.MethodGet, "/api/v1/stores/search?medicine=paracetamol&lat=12.97&lng=77.59&radius=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	stores := resp["stores"].([]any)
	require.Len(t, stores, 2)
	assert.Equal(t, nearID, stores[0].(map[string]any)["id"])
	assert.Equal(t, farID, stores[1].(map[string]any)["id"])
	assert.NotEmpty(t, stores[0].(map[string]any)["medicines"])
}

func TestSearchByMedicine_RequiresMedicine(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.doJSONRequest(http.MethodGet, "/api/v1/stores/search?lat=12.97&lng=77.59", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterStore_SecondIsConflict(t *testing.T) {
	env := newTestEnv(t)

	tok := env.token(uuid.New(), tokens.RoleStore)
	body := map[string]any{"name": "Apollo", "latitude": 12.9, "longitude": 77.6}

	rec, _ := env.doJSONRequest(http.MethodPost, "/api/v1/stores", body, tok)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = env.doJSONRequest(http.MethodPost, "/api/v1/stores", body, tok)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterStore_MissingCoordinatesIs400(t *testing.T) {
	env := newTestEnv(t)

	tok := env.token(uuid.New(), tokens.RoleStore)
	rec, _ := env.doJSONRequest(http.MethodPost, "/api/v1/stores", map[string]any{"name": "Apollo"}, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreStatusAndDetails(t *testing.T) {
	env := newTestEnv(t)

	id, tok := env.registerStore("Apollo", 12.9, 77.6)

	rec, resp := env.doJSONRequest(http.MethodPatch, "/api/v1/stores/me/status", map[string]any{"is_open": false}, tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, resp["store"].(map[string]any)["is_open"])

	rec, _ = env.doJSONRequest(http.MethodPatch, "/api/v1/stores/me/status", map[string]any{}, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = env.doJSONRequest(http.MethodGet, "/api/v1/stores/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Apollo", resp["store"].(map[string]any)["name"])

	rec, _ = env.doJSONRequest(http.MethodGet, "/api/v1/stores/"+uuid.NewString(), nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = env.doJSONRequest(http.MethodGet, "/api/v1/stores/not-a-uuid", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyStore_WithoutRegistrationIs404(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.doJSONRequest(http.MethodGet, "/api/v1/stores/me", nil, env.token(uuid.New(), tokens.RoleStore))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
