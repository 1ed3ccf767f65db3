package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is unique per user; the unique index backs the service-level check.
type Cart struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CartItem.Price is the catalog price at the moment the item was added.
type CartItem struct {
	ID        string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	CartID    string          `json:"cart_id" gorm:"type:varchar(36);index;not null"`
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Quantity  int             `json:"quantity" gorm:"not null;default:1"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// CartItemInfo is a cart item joined with the product's display fields.
type CartItemInfo struct {
	ID        string          `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
}

type AddToCartDTO struct {
	Quantity int `json:"quantity" binding:"omitempty,min=1"`
}

type BatchAddDTO struct {
	ProductIDs []uint `json:"productIds" binding:"required,min=1"`
}
