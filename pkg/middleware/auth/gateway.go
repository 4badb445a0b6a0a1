package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Skotchmaster/electroshop/pkg/logging"
	"github.com/Skotchmaster/electroshop/pkg/tokens"
	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// UserLookup resolves the role currently stored for a user. found is false
// when the user no longer exists.
type UserLookup interface {
	CurrentRole(ctx context.Context, userID string) (role string, found bool, err error)
}

type Gateway struct {
	Tokens *tokens.Service
	Users  UserLookup
}

func NewGateway(tokenSvc *tokens.Service, users UserLookup) *Gateway {
	return &Gateway{Tokens: tokenSvc, Users: users}
}

type ValidatorFunc func(c echo.Context, claims *tokens.AccessClaims) error

func (g *Gateway) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return g.requireAuthWithValidator(next, nil)
}

func (g *Gateway) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.requireAuthWithValidator(next, g.adminOnly)
}

func (g *Gateway) adminOnly(c echo.Context, claims *tokens.AccessClaims) error {
	l := logging.FromContext(c.Request().Context()).With("middleware", "auth.admin")

	if claims.Role != tokens.RoleAdmin {
		l.Warn("admin_denied", "status", 403, "reason", "token role is not admin", "user_id", claims.Subject)
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}
	if g.Users == nil {
		return nil
	}

	role, found, err := g.Users.CurrentRole(c.Request().Context(), claims.Subject)
	if err != nil {
		l.Error("admin_lookup_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !found || role != tokens.RoleAdmin {
		l.Warn("admin_denied", "status", 403, "reason", "stored role is not admin", "user_id", claims.Subject)
		return echo.NewHTTPError(http.StatusForbidden, "admin access required")
	}
	return nil
}

func (g *Gateway) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context()).With("middleware", "auth")

		raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			l.Warn("auth_failed", "status", 401, "reason", "missing token")
			return echo.NewHTTPError(http.StatusUnauthorized, "no token, authorization denied")
		}

		claims, err := g.Tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, tokens.ErrExpiredToken) {
				l.Warn("auth_failed", "status", 401, "reason", "token expired")
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			l.Warn("auth_failed", "status", 401, "reason", "invalid token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "token is not valid")
		}

		if validator != nil {
			if err := validator(c, claims); err != nil {
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(ContextUserID, claims.Subject)
	c.Set(ContextRole, claims.Role)
}

// UserID returns the authenticated subject stored by the gateway.
func UserID(c echo.Context) (string, bool) {
	s, ok := c.Get(ContextUserID).(string)
	return s, ok && s != ""
}

func Role(c echo.Context) string {
	s, _ := c.Get(ContextRole).(string)
	return s
}
