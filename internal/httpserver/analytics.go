package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

type AnalyticsHTTP struct {
	Svc *service.AnalyticsService
}

func (h *AnalyticsHTTP) Revenue(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.revenue")

	report, err := h.Svc.RevenueReport(ctx)
	if err != nil {
		return serviceError(l, "revenue", err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHTTP) SellerSales(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "analytics.seller_sales")

	sellerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	report, err := h.Svc.SellerSalesReport(ctx, sellerID)
	if err != nil {
		return serviceError(l, "seller_sales", err)
	}
	return c.JSON(http.StatusOK, report)
}
