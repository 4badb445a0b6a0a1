package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electroshop/internal/service"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

type AdminHTTP struct {
	Svc     *service.AdminService
	Catalog *service.CatalogService
}

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return toHTTPError(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHTTP) Reindex(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.reindex")

	n, err := h.Catalog.Reindex(ctx)
	if err != nil {
		return toHTTPError(l, "reindex_error", err)
	}
	l.Info("reindex_done", "indexed", n)
	return c.JSON(http.StatusOK, echo.Map{"indexed": n})
}
