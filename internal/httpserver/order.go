package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/Skotchmaster/medistock/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Request(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.request")

	userID, err := principal(c, l, "create_order_error")
	if err != nil {
		return err
	}
	var req transport.CreateOrderRequest
	if err := bindAndValidate(c, l, "create_order_error", &req); err != nil {
		return err
	}

	order, err := h.Svc.CreateOrder(ctx, userID, req)
	if err != nil {
		return serviceError(l, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", order.ID)
	return respond(c, http.StatusCreated, map[string]any{"order": order})
}

func (h *OrderHTTP) ListMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	userID, err := principal(c, l, "list_orders_error")
	if err != nil {
		return err
	}
	p := pageFromQuery(c)
	total, orders, err := h.Svc.ListForUser(ctx, userID, p.Offset, p.Limit)
	if err != nil {
		return serviceError(l, "list_orders_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"data": orders, "meta": p.meta(total)})
}

func (h *OrderHTTP) GetMine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_mine")

	userID, err := principal(c, l, "get_order_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "get_order_error", "id")
	if err != nil {
		return err
	}
	order, err := h.Svc.GetForUser(ctx, userID, id)
	if err != nil {
		return serviceError(l, "get_order_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"order": order})
}

func (h *OrderHTTP) ListStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_store")

	ownerID, err := principal(c, l, "list_store_orders_error")
	if err != nil {
		return err
	}
	p := pageFromQuery(c)
	total, orders, err := h.Svc.ListForStore(ctx, ownerID, c.QueryParam("status"), p.Offset, p.Limit)
	if err != nil {
		return serviceError(l, "list_store_orders_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"data": orders, "meta": p.meta(total)})
}

func (h *OrderHTTP) Approve(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.approve")

	ownerID, err := principal(c, l, "approve_order_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "approve_order_error", "id")
	if err != nil {
		return err
	}
	var req transport.ApproveOrderRequest
	// body is optional
	if err := bindAndValidate(c, l, "approve_order_error", &req); err != nil {
		return err
	}

	order, err := h.Svc.Approve(ctx, ownerID, id, req.Minutes)
	if err != nil {
		return serviceError(l, "approve_order_error", err)
	}

	l.Info("approve_order_success", "order_id", order.ID)
	return respond(c, http.StatusOK, map[string]any{"order": order})
}

func (h *OrderHTTP) Confirm(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.confirm")

	ownerID, err := principal(c, l, "confirm_order_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "confirm_order_error", "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.Confirm(ctx, ownerID, id)
	if err != nil {
		return serviceError(l, "confirm_order_error", err)
	}

	l.Info("confirm_order_success", "order_id", order.ID)
	return respond(c, http.StatusOK, map[string]any{"order": order})
}

func (h *OrderHTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	ownerID, err := principal(c, l, "cancel_order_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "cancel_order_error", "id")
	if err != nil {
		return err
	}
	var req transport.CancelOrderRequest
	// body is optional
	if err := bindAndValidate(c, l, "cancel_order_error", &req); err != nil {
		return err
	}

	order, err := h.Svc.Cancel(ctx, ownerID, id, req.Reason)
	if err != nil {
		return serviceError(l, "cancel_order_error", err)
	}

	l.Info("cancel_order_success", "order_id", order.ID)
	return respond(c, http.StatusOK, map[string]any{"order": order})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	ownerID, err := principal(c, l, "update_order_status_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "update_order_status_error", "id")
	if err != nil {
		return err
	}
	var req transport.UpdateOrderStatusRequest
	if err := bindAndValidate(c, l, "update_order_status_error", &req); err != nil {
		return err
	}

	order, err := h.Svc.UpdateStatus(ctx, ownerID, id, req.Status, req.Minutes, req.Reason)
	if err != nil {
		return serviceError(l, "update_order_status_error", err)
	}

	l.Info("update_order_status_success", "order_id", order.ID, "order_status", order.Status)
	return respond(c, http.StatusOK, map[string]any{"order": order})
}

func (h *OrderHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	ownerID, err := principal(c, l, "delete_order_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "delete_order_error", "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteOrder(ctx, ownerID, id); err != nil {
		return serviceError(l, "delete_order_error", err)
	}

	l.Info("delete_order_success", "order_id", id)
	return respond(c, http.StatusOK, map[string]any{"message": "order deleted"})
}
