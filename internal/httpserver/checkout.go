package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.place_order")

	buyerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.Svc.PlaceOrder(ctx, buyerID, req)
	if err != nil {
		return serviceError(l, "place_order", err)
	}

	l.Info("place_order_success", "orders", len(res.Orders), "total", res.TotalAmount)
	return c.JSON(http.StatusCreated, res)
}
