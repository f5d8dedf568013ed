package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) AllPayments(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.admin_list")

	limit, offset := pageParams(c)
	items, err := h.Svc.AllPayments(ctx, limit, offset)
	if err != nil {
		return serviceError(l, "admin_list", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PaymentHTTP) SellerPayments(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.seller_list")

	sellerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := pageParams(c)

	items, err := h.Svc.SellerPayments(ctx, sellerID, limit, offset)
	if err != nil {
		return serviceError(l, "seller_list", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PaymentHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.update_status")

	id, err := pathID(c)
	if err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.Svc.UpdateStatus(ctx, id, req.Status, req.TransactionID)
	if err != nil {
		return serviceError(l, "update_status", err)
	}

	l.Info("update_status_success", "payment_id", p.ID, "payment_status", p.Status)
	return c.JSON(http.StatusOK, p)
}
