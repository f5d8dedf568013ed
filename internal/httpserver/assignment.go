package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

type AssignmentHTTP struct {
	Svc *service.AssignmentService
}

func (h *AssignmentHTTP) Assign(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "assignment.assign")

	var req transport.AssignAgentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("assign_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.Svc.Assign(ctx, req.OrderID, req.AgentID)
	if err != nil {
		return serviceError(l, "assign", err)
	}

	l.Info("assign_success", "assignment_id", a.ID, "order_id", a.OrderID, "agent_id", a.AgentID)
	return c.JSON(http.StatusCreated, a)
}

func (h *AssignmentHTTP) MyAssignments(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "assignment.my_list")

	agentID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.AgentAssignments(ctx, agentID)
	if err != nil {
		return serviceError(l, "my_list", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AssignmentHTTP) Transition(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "assignment.transition")

	agentID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := pathID(c)
	if err != nil {
		l.Warn("transition_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req transport.AssignmentTransitionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("transition_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	a, err := h.Svc.Transition(ctx, id, agentID, req)
	if err != nil {
		return serviceError(l, "transition", err)
	}

	l.Info("transition_success", "assignment_id", a.ID, "assignment_status", a.Status)
	return c.JSON(http.StatusOK, a)
}
