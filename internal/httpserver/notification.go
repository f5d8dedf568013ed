package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

type NotificationHTTP struct {
	Svc *service.NotificationService
}

func (h *NotificationHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.list")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))

	items, err := h.Svc.List(ctx, uid, page)
	if err != nil {
		return serviceError(l, "list", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NotificationHTTP) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "notification.mark_read")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c)
	if err != nil {
		l.Warn("mark_read_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.MarkRead(ctx, id, uid); err != nil {
		return serviceError(l, "mark_read", err)
	}
	return c.NoContent(http.StatusNoContent)
}
