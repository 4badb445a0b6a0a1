package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/electroshop/internal/models"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername" validate:"required"`
	Password        string `json:"password"        validate:"required"`
}

type AuthResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}

type ProfileResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type CreateProductRequest struct {
	Name        string          `json:"name"        validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Brand       string          `json:"brand"       validate:"required"`
	Category    string          `json:"category"    validate:"required"`
	Image       string          `json:"image"       validate:"required"`
	InStock     *bool           `json:"inStock"`
}

// UpdateProductRequest changes only the fields that are present.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Brand       *string          `json:"brand"`
	Category    *string          `json:"category"`
	Image       *string          `json:"image"`
	InStock     *bool            `json:"inStock"`
}

type ProductPage struct {
	Products      []models.Product `json:"products"`
	CurrentPage   int              `json:"currentPage"`
	TotalPages    int64            `json:"totalPages"`
	TotalProducts int64            `json:"totalProducts"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ToggleFavoriteResponse struct {
	Message string `json:"message"`
	Added   bool   `json:"added"`
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Rating    int       `json:"rating"  validate:"min=1,max=5"`
	Comment   string    `json:"comment"`
}

type ReviewUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type ReviewResponse struct {
	ID        uuid.UUID   `json:"id"`
	ProductID uuid.UUID   `json:"productId"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
	User      *ReviewUser `json:"user"`
}

func NewReviewResponse(r models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.User != nil {
		resp.User = &ReviewUser{ID: r.User.ID, Username: r.User.Username}
	}
	return resp
}

// AdminUser is a user as listed to admins: no password hash, favorites expanded.
type AdminUser struct {
	ID        uuid.UUID        `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	Role      string           `json:"role"`
	Favorites []models.Product `json:"favorites"`
	CreatedAt time.Time        `json:"createdAt"`
}
