package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medistock/internal/geo"
	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/Skotchmaster/medistock/pkg/logging"
)

type StoreHTTP struct {
	Svc *service.StoreService
}

// nearbyQuery reads lat, lng, radius and medicine from the query string.
func nearbyQuery(c echo.Context) (service.NearbyQuery, error) {
	p, err := geo.ParseCoordinates(c.QueryParam("lat"), c.QueryParam("lng"))
	if err != nil {
		return service.NearbyQuery{}, fmt.Errorf("%w: %v", service.ErrInvalidLocation, err)
	}

	q := service.NearbyQuery{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Medicine:  c.QueryParam("medicine"),
	}
	if raw := strings.TrimSpace(c.QueryParam("radius")); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return service.NearbyQuery{}, fmt.Errorf("%w: radius must be numeric", service.ErrValidation)
		}
		q.RadiusKm = &r
	}
	return q, nil
}

func (h *StoreHTTP) nearby(c echo.Context, handler string, requireMedicine bool) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", handler)

	q, err := nearbyQuery(c)
	if err != nil {
		return serviceError(l, "nearby_error", err)
	}
	if requireMedicine && strings.TrimSpace(q.Medicine) == "" {
		l.Warn("nearby_error", "status", 400, "reason", "medicine required")
		return echo.NewHTTPError(http.StatusBadRequest, "medicine query required")
	}

	stores, err := h.Svc.Nearby(ctx, q)
	if err != nil {
		return serviceError(l, "nearby_error", err)
	}

	l.Info("nearby_success", "count", len(stores))
	return respond(c, http.StatusOK, map[string]any{"count": len(stores), "stores": stores})
}

func (h *StoreHTTP) Nearby(c echo.Context) error {
	return h.nearby(c, "store.nearby", false)
}

func (h *StoreHTTP) SearchByMedicine(c echo.Context) error {
	return h.nearby(c, "store.search", true)
}

func (h *StoreHTTP) GetStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.get")

	id, err := pathID(c, l, "get_store_error", "id")
	if err != nil {
		return err
	}
	store, err := h.Svc.Get(ctx, id)
	if err != nil {
		return serviceError(l, "get_store_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"store": store})
}

func (h *StoreHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.register")

	ownerID, err := principal(c, l, "register_store_error")
	if err != nil {
		return err
	}
	var req transport.RegisterStoreRequest
	if err := bindAndValidate(c, l, "register_store_error", &req); err != nil {
		return err
	}

	store, err := h.Svc.Register(ctx, ownerID, req)
	if err != nil {
		return serviceError(l, "register_store_error", err)
	}

	l.Info("register_store_success", "store_id", store.ID)
	return respond(c, http.StatusCreated, map[string]any{"store": store})
}

func (h *StoreHTTP) Mine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.mine")

	ownerID, err := principal(c, l, "my_store_error")
	if err != nil {
		return err
	}
	store, err := h.Svc.Mine(ctx, ownerID)
	if err != nil {
		return serviceError(l, "my_store_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"store": store})
}

func (h *StoreHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.update_profile")

	ownerID, err := principal(c, l, "update_store_error")
	if err != nil {
		return err
	}
	var req transport.UpdateStoreRequest
	if err := bindAndValidate(c, l, "update_store_error", &req); err != nil {
		return err
	}

	store, err := h.Svc.UpdateProfile(ctx, ownerID, req)
	if err != nil {
		return serviceError(l, "update_store_error", err)
	}
	l.Info("update_store_success")
	return respond(c, http.StatusOK, map[string]any{"store": store})
}

func (h *StoreHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.set_status")

	ownerID, err := principal(c, l, "store_status_error")
	if err != nil {
		return err
	}
	var req transport.SetOpenRequest
	if err := bindAndValidate(c, l, "store_status_error", &req); err != nil {
		return err
	}

	store, err := h.Svc.SetOpen(ctx, ownerID, *req.IsOpen)
	if err != nil {
		return serviceError(l, "store_status_error", err)
	}
	l.Info("store_status_success", "is_open", store.IsOpen)
	return respond(c, http.StatusOK, map[string]any{"store": store})
}

func (h *StoreHTTP) UpdateLocation(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "store.update_location")

	ownerID, err := principal(c, l, "store_location_error")
	if err != nil {
		return err
	}
	var req transport.UpdateLocationRequest
	if err := bindAndValidate(c, l, "store_location_error", &req); err != nil {
		return err
	}

	store, err := h.Svc.UpdateLocation(ctx, ownerID, req)
	if err != nil {
		return serviceError(l, "store_location_error", err)
	}
	l.Info("store_location_success")
	return respond(c, http.StatusOK, map[string]any{"store": store})
}
