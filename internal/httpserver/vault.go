package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/Skotchmaster/medistock/pkg/logging"
)

type VaultHTTP struct {
	Svc *service.VaultService
}

func (h *VaultHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vault.add")

	userID, err := principal(c, l, "vault_add_error")
	if err != nil {
		return err
	}
	var req transport.VaultItemRequest
	if err := bindAndValidate(c, l, "vault_add_error", &req); err != nil {
		return err
	}

	item, err := h.Svc.Add(ctx, userID, req)
	if err != nil {
		return serviceError(l, "vault_add_error", err)
	}
	l.Info("vault_add_success", "item_id", item.ID)
	return respond(c, http.StatusCreated, map[string]any{"item": item})
}

func (h *VaultHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vault.list")

	userID, err := principal(c, l, "vault_list_error")
	if err != nil {
		return err
	}
	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		return serviceError(l, "vault_list_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"count": len(items), "items": items})
}

func (h *VaultHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vault.update")

	userID, err := principal(c, l, "vault_update_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "vault_update_error", "id")
	if err != nil {
		return err
	}
	var req transport.PatchVaultItemRequest
	if err := bindAndValidate(c, l, "vault_update_error", &req); err != nil {
		return err
	}

	item, err := h.Svc.Update(ctx, userID, id, req)
	if err != nil {
		return serviceError(l, "vault_update_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"item": item})
}

func (h *VaultHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vault.delete")

	userID, err := principal(c, l, "vault_delete_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "vault_delete_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(ctx, userID, id); err != nil {
		return serviceError(l, "vault_delete_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"message": "vault item deleted"})
}

func (h *VaultHTTP) Interactions(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vault.interactions")

	userID, err := principal(c, l, "vault_interactions_error")
	if err != nil {
		return err
	}
	rep, err := h.Svc.Interactions(ctx, userID)
	if err != nil {
		return serviceError(l, "vault_interactions_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"safe": rep.Safe, "alerts": rep.Alerts})
}
