package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type ProductStatus string

const (
	ProductInStock    ProductStatus = "IN_STOCK"
	ProductOutOfStock ProductStatus = "OUT_OF_STOCK"
)

func (s ProductStatus) Valid() bool {
	return s == ProductInStock || s == ProductOutOfStock
}

type Category struct {
	ID    string `json:"id" gorm:"type:varchar(36);primaryKey"`
	Cname string `json:"cname" gorm:"size:100;not null"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description"`
	Status      ProductStatus   `json:"status" gorm:"type:varchar(20);not null;default:'IN_STOCK'"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Categories  []Category      `json:"categories" gorm:"many2many:product_categories;"`
}

type CreateProductDTO struct {
	Title       string          `json:"title" binding:"required"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CategoryIDs []string        `json:"categoryIds"`
}

// UpdateProductDTO carries only the fields to change; nil means keep.
type UpdateProductDTO struct {
	Title       *string          `json:"title"`
	Image       *string          `json:"image"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Status      *ProductStatus   `json:"status" binding:"omitempty,product_status"`
	CategoryIDs *[]string        `json:"categoryIds"`
}

const MaxPage = 100000

type ProductFilter struct {
	Status     ProductStatus `form:"status" binding:"omitempty,product_status"`
	Search     string        `form:"search"`
	CategoryID string        `form:"category"`
	Page       int           `form:"page" binding:"omitempty,min=1,max=100000"`
	Limit      int           `form:"limit" binding:"omitempty,min=1,max=100"`
}

type CategoryDTO struct {
	Cname string `json:"cname" binding:"required,max=100"`
}

type CategoryFilter struct {
	Search string `form:"search"`
}
