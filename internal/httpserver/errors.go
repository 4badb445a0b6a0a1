package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electroshop/internal/service"
)

var errorStatus = []struct {
	sentinel error
	code     int
}{
	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrConflict, http.StatusBadRequest},
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
}

// toHTTPError maps a service error to an echo error and logs it under event.
// Unknown errors become a 500 with a generic message.
func toHTTPError(l *slog.Logger, event string, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.sentinel) {
			msg := strings.TrimSuffix(err.Error(), ": "+m.sentinel.Error())
			l.Warn(event, "status", m.code, "reason", msg)
			return echo.NewHTTPError(m.code, msg)
		}
	}

	l.Error(event, "status", http.StatusInternalServerError, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
