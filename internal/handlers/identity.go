package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/postbook/postbook/internal/events"
	"github.com/postbook/postbook/internal/identity"
	"github.com/postbook/postbook/internal/logging"
	"github.com/postbook/postbook/internal/pagination"
)

type IdentityHandler struct {
	Svc      *identity.Service
	Producer *events.Producer
}

func (h *IdentityHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, events.Topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_failed", "error", err)
	}
}

func (h *IdentityHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "identity.register")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_bad_body", "error", err)
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("invalid request body"))
	}

	res, err := h.Svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		l.Error("register_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse(res.Errors...))
	}

	h.publish(c, req.Email, map[string]any{
		"type":  "user_registered",
		"email": req.Email,
	})

	return c.JSON(http.StatusOK, res)
}

func (h *IdentityHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "identity.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_bad_body", "error", err)
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("invalid request body"))
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Error("login_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, pagination.NewErrorResponse(res.Errors...))
	}

	return c.JSON(http.StatusOK, res)
}

func (h *IdentityHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "identity.refresh")

	var req struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("refresh_bad_body", "error", err)
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse("invalid request body"))
	}

	res, err := h.Svc.Refresh(ctx, req.Token, req.RefreshToken)
	if err != nil {
		l.Error("refresh_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "refresh failed")
	}
	if !res.Success {
		return c.JSON(http.StatusBadRequest, pagination.NewErrorResponse(res.Errors...))
	}

	return c.JSON(http.StatusOK, res)
}
