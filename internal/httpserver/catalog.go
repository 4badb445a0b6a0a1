package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/electroshop/internal/service"
	"github.com/Skotchmaster/electroshop/internal/transport"
	"github.com/Skotchmaster/electroshop/internal/util"
	"github.com/Skotchmaster/electroshop/pkg/config"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page, err := h.Svc.ListProducts(ctx, service.ListParams{
		Page:       util.ParseIntDefault(c.QueryParam("page"), 1),
		Limit:      util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		Brands:     config.CSV(c.QueryParam("brands")),
		Categories: config.CSV(c.QueryParam("categories")),
		Brand:      c.QueryParam("brand"),
	})
	if err != nil {
		return toHTTPError(l, "list_products_error", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHTTP) Brands(c echo.Context) error {
	ctx := c.Request().Context()
	brands, err := h.Svc.Brands(ctx)
	if err != nil {
		return toHTTPError(logging.FromContext(ctx).With("handler", "product.brands"), "brands_error", err)
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	categories, err := h.Svc.Categories(ctx)
	if err != nil {
		return toHTTPError(logging.FromContext(ctx).With("handler", "product.categories"), "categories_error", err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := pathUUID(c, "id")
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a uuid")
		return err
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return toHTTPError(l, "get_product_failed", err)
	}
	return c.JSON(http.StatusOK, product)
}

func parsePrice(raw, name string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return &d, nil
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	minPrice, err := parsePrice(c.QueryParam("minPrice"), "minPrice")
	if err != nil {
		return err
	}
	maxPrice, err := parsePrice(c.QueryParam("maxPrice"), "maxPrice")
	if err != nil {
		return err
	}

	items, err := h.Svc.Search(ctx, service.SearchParams{
		Query:    c.QueryParam("query"),
		Category: c.QueryParam("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		return toHTTPError(l, "search_products_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		l.Warn("product_create_error", "status", 400, "error", err)
		return err
	}

	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return toHTTPError(l, "product_create_error", err)
	}

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return toHTTPError(l, "product_update_error", err)
	}

	l.Info("update_product_success", "product_id", id)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return toHTTPError(l, "product_delete_error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product deleted successfully"})
}
