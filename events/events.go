package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/shopspring/decimal"
)

const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductRemoved = "product.removed"

	TopicCartItemAdded   = "cart.item.added"
	TopicCartItemRemoved = "cart.item.removed"
	TopicCartCleared     = "cart.cleared"

	TopicOrderCreated = "order.created"
	TopicOrderUpdated = "order.updated"
	TopicOrderRemoved = "order.removed"
)

// Publisher delivers domain events. Callers publish after their transaction commits.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, payload any) error
}

type ProductEvent struct {
	ProductID uint            `json:"product_id"`
	Title     string          `json:"title,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Status    string          `json:"status,omitempty"`
}

type CartEvent struct {
	UserID    string `json:"user_id"`
	CartID    string `json:"cart_id"`
	ProductID uint   `json:"product_id,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	Affected  int64  `json:"affected,omitempty"`
}

type OrderEvent struct {
	OrderID    string          `json:"order_id"`
	UserID     string          `json:"user_id"`
	Status     string          `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Items      int             `json:"items"`
}

// LogPublisher writes events to the log. It stands in when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, topic string, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	log.Printf("Event %s [%s]: %s", topic, key, data)
	return nil
}
