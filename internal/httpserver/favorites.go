package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electroshop/internal/service"
	"github.com/Skotchmaster/electroshop/internal/transport"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

type FavoritesHTTP struct {
	Svc *service.FavoritesService
}

func (h *FavoritesHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.list")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.List(ctx, userID)
	if err != nil {
		return toHTTPError(l, "list_favorites_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *FavoritesHTTP) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorites.toggle")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	added, err := h.Svc.Toggle(ctx, userID, productID)
	if err != nil {
		return toHTTPError(l, "toggle_favorite_error", err)
	}
	return c.JSON(http.StatusOK, transport.ToggleFavoriteResponse{
		Message: "Favorites updated successfully",
		Added:   added,
	})
}
