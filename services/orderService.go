package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kariqs/confectionary-api/events"
	"github.com/Kariqs/confectionary-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Events   events.Publisher
	Invoices InvoiceRenderer
}

func NewOrderService(db *gorm.DB, publisher events.Publisher, invoices InvoiceRenderer) *OrderService {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &OrderService{DB: db, Events: publisher, Invoices: invoices}
}

func (s *OrderService) Fetch(ctx context.Context, filter models.OrderFilter, user *models.User) ([]models.Order, error) {
	query := s.DB.WithContext(ctx).Where("user_id = ?", user.ID).Order("date DESC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(address) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ? OR id LIKE ?)", term, term, term, term)
	}

	orders := []models.Order{}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) FetchAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.DB.WithContext(ctx).Order("date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FetchByID only finds orders owned by the user.
func (s *OrderService) FetchByID(ctx context.Context, id string, user *models.User) (*models.Order, error) {
	return findUserOrder(s.DB.WithContext(ctx), id, user.ID)
}

func findUserOrder(tx *gorm.DB, id, userID string) (*models.Order, error) {
	var order models.Order
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return nil, lookupError(err, "order %s not found", id)
	}
	return &order, nil
}

type orderItemRow struct {
	models.OrderItemInfo
	Snapshot datatypes.JSONType[models.ProductSnapshot]
}

// FetchOrderItems prefers live product data and falls back to the snapshot once a product is gone.
func (s *OrderService) FetchOrderItems(ctx context.Context, orderID string) ([]models.OrderItemInfo, error) {
	var rows []orderItemRow
	err := s.DB.WithContext(ctx).Table("order_items").
		Select("order_items.order_id, order_items.product_id, order_items.price, order_items.quantity, "+
			"COALESCE(products.title, '') AS title, COALESCE(products.image, '') AS image, order_items.snapshot").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItemInfo, 0, len(rows))
	for _, row := range rows {
		info := row.OrderItemInfo
		snapshot := row.Snapshot.Data()
		if info.Title == "" {
			info.Title = snapshot.Title
		}
		if info.Image == "" {
			info.Image = snapshot.Image
		}
		items = append(items, info)
	}
	return items, nil
}

func sumItems(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// moveCartItems copies cart items into the order with a product snapshot and removes them from the cart.
func moveCartItems(tx *gorm.DB, orderID string, items []models.CartItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	productIDs := make([]uint, 0, len(items))
	itemIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
		itemIDs = append(itemIDs, item.ID)
	}

	var products []models.Product
	if err := tx.Select("id", "title", "image").Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return 0, err
	}
	snapshots := make(map[uint]models.ProductSnapshot, len(products))
	for _, product := range products {
		snapshots[product.ID] = models.ProductSnapshot{Title: product.Title, Image: product.Image}
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Snapshot:  datatypes.NewJSONType(snapshots[item.ProductID]),
		})
	}
	if err := tx.Create(&orderItems).Error; err != nil {
		return 0, err
	}

	if err := tx.Where("id IN ?", itemIDs).Delete(&models.CartItem{}).Error; err != nil {
		return 0, err
	}
	return len(orderItems), nil
}

// Create turns the user's cart into an order in one transaction. The total comes from the cart prices.
func (s *OrderService) Create(ctx context.Context, dto models.CreateOrderDTO, user *models.User) (*models.Order, error) {
	var order models.Order
	var count int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, user.ID)
		if err != nil {
			return err
		}
		items, err := findCartItems(tx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrUnprocessable)
		}

		order = models.Order{
			UserID:     user.ID,
			TotalPrice: sumItems(items),
			Address:    dto.Address,
			Country:    dto.Country,
			City:       dto.City,
			PostalCode: dto.PostalCode,
			Status:     models.OrderProcessing,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		count, err = moveCartItems(tx, order.ID, items)
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrderCreated, order.ID, orderEvent(&order, count))
	return &order, nil
}

// AddOrderItems moves whatever is in the cart into an existing order and adds it to the total.
func (s *OrderService) AddOrderItems(ctx context.Context, orderID string, user *models.User) (int, error) {
	var count int
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := findUserOrder(tx, orderID, user.ID)
		if err != nil {
			return err
		}
		cart, err := findCart(tx, user.ID)
		if err != nil {
			return err
		}
		items, err := findCartItems(tx, cart.ID)
		if err != nil {
			return err
		}

		count, err = moveCartItems(tx, order.ID, items)
		if err != nil || count == 0 {
			return err
		}
		return tx.Model(order).Update("total_price", order.TotalPrice.Add(sumItems(items))).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update applies a partial change. Any valid status may follow any other.
func (s *OrderService) Update(ctx context.Context, dto models.UpdateOrderDTO, id string) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return lookupError(err, "order %s not found", id)
		}

		if dto.Status != nil {
			if !dto.Status.Valid() {
				return fmt.Errorf("%w: unknown order status %q", ErrValidation, *dto.Status)
			}
			order.Status = *dto.Status
		}
		if dto.TotalPrice != nil {
			if dto.TotalPrice.IsNegative() {
				return fmt.Errorf("%w: total price cannot be negative", ErrValidation)
			}
			order.TotalPrice = *dto.TotalPrice
		}
		if dto.Address != nil {
			order.Address = *dto.Address
		}
		if dto.Country != nil {
			order.Country = *dto.Country
		}
		if dto.City != nil {
			order.City = *dto.City
		}
		if dto.PostalCode != nil {
			order.PostalCode = *dto.PostalCode
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrderUpdated, order.ID, orderEvent(&order, 0))
	return &order, nil
}

// RemoveOrder deletes the order items first, then the order.
func (s *OrderService) RemoveOrder(ctx context.Context, id string) error {
	var order models.Order
	var count int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return lookupError(err, "order %s not found", id)
		}
		result := tx.Where("order_id = ?", id).Delete(&models.OrderItem{})
		if result.Error != nil {
			return result.Error
		}
		count = result.RowsAffected
		return tx.Delete(&order).Error
	})
	if err != nil {
		return err
	}

	publish(ctx, s.Events, events.TopicOrderRemoved, order.ID, orderEvent(&order, int(count)))
	return nil
}

func (s *OrderService) CreateInvoice(ctx context.Context, user *models.User, order *models.Order) ([]byte, error) {
	items, err := s.FetchOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return s.Invoices.Render(user, order, items)
}

func orderEvent(order *models.Order, items int) events.OrderEvent {
	return events.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		Items:      items,
	}
}
