package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electroshop/internal/service"
	"github.com/Skotchmaster/electroshop/internal/transport"
	"github.com/Skotchmaster/electroshop/pkg/logging"
	authmw "github.com/Skotchmaster/electroshop/pkg/middleware/auth"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return err
	}

	res, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return toHTTPError(l, "register_error", err)
	}

	return c.JSON(http.StatusCreated, transport.AuthResponse{Token: res.Token, UserID: res.UserID, Role: res.Role})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return err
	}

	res, err := h.Svc.Login(ctx, req.EmailOrUsername, req.Password)
	if err != nil {
		return toHTTPError(l, "login_failed", err)
	}

	l.Info("login_successful", "user_id", res.UserID)
	return c.JSON(http.StatusOK, transport.AuthResponse{Token: res.Token, UserID: res.UserID, Role: res.Role})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	userID, _ := authmw.UserID(c)
	return c.JSON(http.StatusOK, transport.ProfileResponse{
		Message: "You have access to this protected route",
		UserID:  userID,
	})
}
