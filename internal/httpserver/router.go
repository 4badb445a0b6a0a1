package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/electroshop/pkg/middleware/auth"
)

type Deps struct {
	Gateway *authmw.Gateway

	AuthHandler      *AuthHTTP
	CatalogHandler   *CatalogHTTP
	CartHandler      *CartHTTP
	OrderHandler     *OrderHTTP
	FavoritesHandler *FavoritesHTTP
	ReviewHandler    *ReviewHTTP
	AdminHandler     *AdminHTTP

	// Ready reports whether backing stores answer; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")
	requireAuth, requireAdmin := d.Gateway.RequireAuth, d.Gateway.RequireAdmin

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	api.GET("/user/profile", d.AuthHandler.Profile, requireAuth)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/brands", d.CatalogHandler.Brands)
	products.GET("/categories", d.CatalogHandler.Categories)
	products.GET("/search", d.CatalogHandler.Search)
	products.GET("/details/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct, requireAdmin)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct, requireAdmin)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, requireAdmin)

	cart := api.Group("/cart", requireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.DELETE("/remove/:productId", d.CartHandler.RemoveFromCart)
	cart.PUT("/update/:productId", d.CartHandler.UpdateCartItem)
	cart.DELETE("/clear", d.CartHandler.ClearCart)

	favorites := api.Group("/favorites", requireAuth)
	favorites.GET("", d.FavoritesHandler.List)
	favorites.POST("/:productId", d.FavoritesHandler.Toggle)

	orders := api.Group("/orders", requireAuth)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetUserOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	api.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus, requireAdmin)

	reviews := api.Group("/reviews")
	reviews.POST("", d.ReviewHandler.CreateReview, requireAuth)
	reviews.GET("/product/:productId", d.ReviewHandler.ListForProduct)

	admin := api.Group("/admin", requireAdmin)
	admin.GET("/users", d.AdminHandler.ListUsers)
	admin.POST("/search/reindex", d.AdminHandler.Reindex)
}
