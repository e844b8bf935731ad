package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/Skotchmaster/medistock/pkg/logging"
)

type BillHTTP struct {
	Svc *service.BillService
}

func (h *BillHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bill.create")

	ownerID, err := principal(c, l, "create_bill_error")
	if err != nil {
		return err
	}
	var req transport.CreateBillRequest
	if err := bindAndValidate(c, l, "create_bill_error", &req); err != nil {
		return err
	}

	bill, err := h.Svc.CreateBill(ctx, ownerID, req)
	if err != nil {
		return serviceError(l, "create_bill_error", err)
	}
	l.Info("create_bill_success", "bill_id", bill.ID)
	return respond(c, http.StatusCreated, map[string]any{"bill": bill})
}

func (h *BillHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bill.list")

	ownerID, err := principal(c, l, "list_bills_error")
	if err != nil {
		return err
	}
	p := pageFromQuery(c)
	total, bills, err := h.Svc.ListBills(ctx, ownerID, p.Offset, p.Limit)
	if err != nil {
		return serviceError(l, "list_bills_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"data": bills, "meta": p.meta(total)})
}

func (h *BillHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bill.get")

	ownerID, err := principal(c, l, "get_bill_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "get_bill_error", "id")
	if err != nil {
		return err
	}
	bill, err := h.Svc.GetBill(ctx, ownerID, id)
	if err != nil {
		return serviceError(l, "get_bill_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"bill": bill})
}
