package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/Skotchmaster/medistock/pkg/logging"
)

type MedicineHTTP struct {
	Svc *service.MedicineService
}

func (h *MedicineHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.search")

	p := pageFromQuery(c)
	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), p.Offset, p.Limit)
	if err != nil {
		return serviceError(l, "search_medicines_error", err)
	}

	l.Info("search_medicines_success", "total", total)
	return respond(c, http.StatusOK, map[string]any{"data": items, "meta": p.meta(total)})
}

func (h *MedicineHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.list_mine")

	ownerID, err := principal(c, l, "list_medicines_error")
	if err != nil {
		return err
	}
	p := pageFromQuery(c)
	total, items, err := h.Svc.ListMine(ctx, ownerID, p.Offset, p.Limit)
	if err != nil {
		return serviceError(l, "list_medicines_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"data": items, "meta": p.meta(total)})
}

func (h *MedicineHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.create")

	ownerID, err := principal(c, l, "create_medicine_error")
	if err != nil {
		return err
	}
	var req transport.MedicineRequest
	if err := bindAndValidate(c, l, "create_medicine_error", &req); err != nil {
		return err
	}

	med, err := h.Svc.Create(ctx, ownerID, req)
	if err != nil {
		return serviceError(l, "create_medicine_error", err)
	}

	l.Info("create_medicine_success", "medicine_id", med.ID)
	return respond(c, http.StatusCreated, map[string]any{"medicine": med})
}

func (h *MedicineHTTP) BulkImport(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.bulk_import")

	ownerID, err := principal(c, l, "bulk_import_error")
	if err != nil {
		return err
	}
	var req transport.BulkImportRequest
	if err := bindAndValidate(c, l, "bulk_import_error", &req); err != nil {
		return err
	}

	results, err := h.Svc.BulkImport(ctx, ownerID, req.Rows)
	if err != nil {
		return serviceError(l, "bulk_import_error", err)
	}

	imported := 0
	for _, r := range results {
		if r.Success {
			imported++
		}
	}
	l.Info("bulk_import_success", "imported", imported, "failed", len(results)-imported)
	return respond(c, http.StatusOK, map[string]any{
		"imported": imported,
		"failed":   len(results) - imported,
		"results":  results,
	})
}

func (h *MedicineHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.patch")

	ownerID, err := principal(c, l, "patch_medicine_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "patch_medicine_error", "id")
	if err != nil {
		return err
	}
	var req transport.PatchMedicineRequest
	if err := bindAndValidate(c, l, "patch_medicine_error", &req); err != nil {
		return err
	}

	med, err := h.Svc.Patch(ctx, ownerID, id, req)
	if err != nil {
		return serviceError(l, "patch_medicine_error", err)
	}

	l.Info("patch_medicine_success", "medicine_id", med.ID)
	return respond(c, http.StatusOK, map[string]any{"medicine": med})
}

func (h *MedicineHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.delete")

	ownerID, err := principal(c, l, "delete_medicine_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "delete_medicine_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, ownerID, id); err != nil {
		return serviceError(l, "delete_medicine_error", err)
	}

	l.Info("delete_medicine_success", "medicine_id", id)
	return respond(c, http.StatusOK, map[string]any{"message": "medicine deleted"})
}
