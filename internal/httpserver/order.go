package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

// Get serves a single order to any party on it: the buyer, the seller,
// the assigned agent, or an admin.
func (h *OrderHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c)
	if err != nil {
		l.Warn("get_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return serviceError(l, "get", err)
	}

	role, _ := c.Get("role").(string)
	if !canViewOrder(order, uid, role) {
		l.Warn("get_error", "status", 404, "reason", "not a party to order")
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return c.JSON(http.StatusOK, order)
}

func canViewOrder(order *models.Order, uid uuid.UUID, role string) bool {
	if role == string(models.RoleAdmin) {
		return true
	}
	if order.BuyerID == uid || order.SellerID == uid {
		return true
	}
	return order.AgentID != nil && *order.AgentID == uid
}

func (h *OrderHTTP) BuyerOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.buyer_list")

	buyerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := pageParams(c)

	orders, err := h.Svc.BuyerOrders(ctx, buyerID, limit, offset)
	if err != nil {
		return serviceError(l, "buyer_list", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) SellerOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.seller_list")

	sellerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := pageParams(c)

	orders, err := h.Svc.SellerOrders(ctx, sellerID, limit, offset)
	if err != nil {
		return serviceError(l, "seller_list", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) AllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.admin_list")

	limit, offset := pageParams(c)
	orders, err := h.Svc.AllOrders(ctx, limit, offset)
	if err != nil {
		return serviceError(l, "admin_list", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	sellerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c)
	if err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.Svc.UpdateStatus(ctx, id, sellerID, req.Status)
	if err != nil {
		return serviceError(l, "update_status", err)
	}

	l.Info("update_status_success", "order_id", order.ID, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}
