package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/internal/transport"
	"github.com/Skotchmaster/medistock/pkg/logging"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.submit")

	userID, err := principal(c, l, "submit_review_error")
	if err != nil {
		return err
	}
	storeID, err := pathID(c, l, "submit_review_error", "id")
	if err != nil {
		return err
	}
	var req transport.ReviewRequest
	if err := bindAndValidate(c, l, "submit_review_error", &req); err != nil {
		return err
	}

	review, err := h.Svc.Submit(ctx, userID, storeID, req.Rating, req.Comment)
	if err != nil {
		return serviceError(l, "submit_review_error", err)
	}
	l.Info("submit_review_success", "store_id", storeID)
	return respond(c, http.StatusOK, map[string]any{"review": review})
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list")

	storeID, err := pathID(c, l, "list_reviews_error", "id")
	if err != nil {
		return err
	}
	res, err := h.Svc.ListForStore(ctx, storeID)
	if err != nil {
		return serviceError(l, "list_reviews_error", err)
	}
	return respond(c, http.StatusOK, map[string]any{"reviews": res.Reviews, "summary": res.Summary})
}
