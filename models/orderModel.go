package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderProcessing OrderStatus = "PROCESSING"
	OrderPaid       OrderStatus = "PAID"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderProcessing, OrderPaid, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

type Order struct {
	ID         string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID     string          `json:"user_id" gorm:"type:varchar(36);index;not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Address    string          `json:"address"`
	Country    string          `json:"country"`
	City       string          `json:"city"`
	PostalCode string          `json:"postalcode"`
	Status     OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'PROCESSING'"`
	Date       time.Time       `json:"date" gorm:"autoCreateTime"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// ProductSnapshot keeps what the product looked like when the order was placed.
type ProductSnapshot struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

// OrderItem is written once when the order is created and never mutated.
type OrderItem struct {
	ID        string                              `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderID   string                              `json:"order_id" gorm:"type:varchar(36);index;not null"`
	Order     *Order                              `json:"-" gorm:"foreignKey:OrderID"`
	ProductID uint                                `json:"product_id" gorm:"not null"`
	Quantity  int                                 `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal                     `json:"price" gorm:"type:decimal(10,2);not null"`
	Snapshot  datatypes.JSONType[ProductSnapshot] `json:"snapshot"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type OrderItemInfo struct {
	OrderID   string          `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
}

type CreateOrderDTO struct {
	Address    string `json:"address" binding:"required"`
	Country    string `json:"country" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalcode" binding:"required"`
}

// UpdateOrderDTO is a partial update; status transitions are not restricted.
type UpdateOrderDTO struct {
	Status     *OrderStatus     `json:"status" binding:"omitempty,order_status"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	Address    *string          `json:"address"`
	Country    *string          `json:"country"`
	City       *string          `json:"city"`
	PostalCode *string          `json:"postalcode"`
}

type OrderFilter struct {
	Status OrderStatus `form:"status" binding:"omitempty,order_status"`
	Search string      `form:"search"`
}
