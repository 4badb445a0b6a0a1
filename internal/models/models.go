package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// prices travel as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
	OrderStatusCancelled:  4,
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// Precedes reports whether moving from s to next goes forward in the lifecycle.
func (s OrderStatus) Precedes(next OrderStatus) bool {
	return orderStatusRank[s] < orderStatusRank[next]
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"          json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                      json:"-"`
	Role         string    `gorm:"not null;default:user"         json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"  json:"userId"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"  json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"          json:"id"`
	Name        string          `gorm:"not null"                      json:"name"`
	Description string          `gorm:"not null"                      json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"   json:"price"`
	Brand       string          `gorm:"index;not null"                json:"brand"`
	Category    string          `gorm:"index;not null"                json:"category"`
	Image       string          `gorm:"not null"                      json:"image"`
	InStock     bool            `gorm:"not null;default:true"         json:"inStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"              json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"    json:"userId"`
	Version   int64      `gorm:"not null;default:0"                json:"-"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE"       json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                           json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"-"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"productId"`
	Quantity  uint      `gorm:"not null;check:quantity>0"                      json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:-"          json:"product"`
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"          json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"      json:"userId"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE"   json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null"   json:"totalAmount"`
	Status          OrderStatus     `gorm:"type:varchar(16);not null"     json:"status"`
	ShippingAddress string          `gorm:"not null"                      json:"shippingAddress"`
	CreatedAt       time.Time       `gorm:"index"                         json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"                  json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"              json:"-"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"                    json:"productId"`
	Quantity  uint            `gorm:"not null;check:quantity>0"             json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"           json:"price"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:-" json:"product,omitempty"`
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"        json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"    json:"userId"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"    json:"productId"`
	Rating    int       `gorm:"not null"                    json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	User      *User     `gorm:"foreignKey:UserID;constraint:-" json:"-"`
}

func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error      { newID(&u.ID); return nil }
func (p *Product) BeforeCreate(tx *gorm.DB) error   { newID(&p.ID); return nil }
func (c *Cart) BeforeCreate(tx *gorm.DB) error      { newID(&c.ID); return nil }
func (i *CartItem) BeforeCreate(tx *gorm.DB) error  { newID(&i.ID); return nil }
func (o *Order) BeforeCreate(tx *gorm.DB) error     { newID(&o.ID); return nil }
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error { newID(&i.ID); return nil }
func (r *Review) BeforeCreate(tx *gorm.DB) error    { newID(&r.ID); return nil }

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &Favorite{}, &Product{}, &Cart{}, &CartItem{}, &Order{}, &OrderItem{}, &Review{},
	}
}
