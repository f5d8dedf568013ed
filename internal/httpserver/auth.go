package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashewtrade/marketplace/internal/service"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/logging"
	"github.com/cashewtrade/marketplace/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.Svc.Register(ctx, req)
	if err != nil {
		return serviceError(l, "register", err)
	}

	l.Info("register_success", "user_id", profile.ID, "role", profile.Role)
	return c.JSON(http.StatusCreated, profile)
}

func (h *AuthHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.Svc.CreateUser(ctx, req)
	if err != nil {
		return serviceError(l, "create_user", err)
	}

	l.Info("create_user_success", "user_id", profile.ID, "role", profile.Role)
	return c.JSON(http.StatusCreated, profile)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return serviceError(l, "login", err)
	}

	h.setAuthCookies(c, pair)
	l.Info("login_success", "role", pair.Role)
	return c.JSON(http.StatusOK, echo.Map{"role": pair.Role})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil || refreshCookie.Value == "" {
		l.Warn("refresh_error", "status", 401, "reason", "missing cookie")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	pair, err := h.Svc.Refresh(ctx, refreshCookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrPermission) {
			c.SetCookie(tokens.DeleteCookie("accessToken", "/"))
			c.SetCookie(tokens.DeleteCookie("refreshToken", "/"))
			l.Warn("refresh_rejected", "status", 401, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		return serviceError(l, "refresh", err)
	}

	h.setAuthCookies(c, pair)
	l.Info("refresh_success", "role", pair.Role)
	return c.JSON(http.StatusOK, echo.Map{"role": pair.Role})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if refreshCookie, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Svc.Logout(ctx, refreshCookie.Value); err != nil {
			l.Error("logout_failed", "status", 500, "error", err)
			c.SetCookie(tokens.DeleteCookie("accessToken", "/"))
			c.SetCookie(tokens.DeleteCookie("refreshToken", "/"))
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	c.SetCookie(tokens.DeleteCookie("accessToken", "/"))
	c.SetCookie(tokens.DeleteCookie("refreshToken", "/"))
	l.Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) setAuthCookies(c echo.Context, pair *transport.TokenPair) {
	c.SetCookie(tokens.CreateCookie("accessToken", pair.AccessToken, "/", pair.AccessExp))
	c.SetCookie(tokens.CreateCookie("refreshToken", pair.RefreshToken, "/", pair.RefreshExp))
}
