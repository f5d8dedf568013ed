package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

type ProfileHTTP struct {
	Svc *service.ProfileService
}

func (h *ProfileHTTP) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.me")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := h.Svc.Get(ctx, uid)
	if err != nil {
		return serviceError(l, "me", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.list_users")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	total, items, err := h.Svc.ListUsers(ctx, page)
	if err != nil {
		return serviceError(l, "list_users", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": items})
}

func (h *ProfileHTTP) ListAgents(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.list_agents")

	agents, err := h.Svc.ActiveAgents(ctx)
	if err != nil {
		return serviceError(l, "list_agents", err)
	}
	return c.JSON(http.StatusOK, agents)
}

func (h *ProfileHTTP) SetActive(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile.set_active")

	id, err := pathID(c)
	if err != nil {
		l.Warn("set_active_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		l.Warn("set_active_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		return serviceError(l, "set_active", err)
	}

	l.Info("set_active_success", "user_id", p.ID, "is_active", p.IsActive)
	return c.JSON(http.StatusOK, p)
}
