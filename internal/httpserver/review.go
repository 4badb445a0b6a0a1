package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electroshop/internal/service"
	"github.com/Skotchmaster/electroshop/internal/transport"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

type ReviewHTTP struct {
	Svc *service.ReviewService
}

func (h *ReviewHTTP) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		l.Warn("create_review_error", "status", 400, "error", err)
		return err
	}

	review, err := h.Svc.Create(ctx, userID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		return toHTTPError(l, "create_review_error", err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHTTP) ListForProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list")

	productID, err := pathUUID(c, "productId")
	if err != nil {
		return err
	}

	reviews, err := h.Svc.ListForProduct(ctx, productID)
	if err != nil {
		return toHTTPError(l, "list_reviews_error", err)
	}
	return c.JSON(http.StatusOK, reviews)
}
