package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/confectionary-api/events"
	"github.com/Kariqs/confectionary-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errCartExists = fmt.Errorf("%w: cart already exists", ErrPreconditionFailed)

type CartService struct {
	DB     *gorm.DB
	Events events.Publisher
}

func NewCartService(db *gorm.DB, publisher events.Publisher) *CartService {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &CartService{DB: db, Events: publisher}
}

func findCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, lookupError(err, "cart not found")
	}
	return &cart, nil
}

func findCartItems(tx *gorm.DB, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := tx.Where("cart_id = ?", cartID).Order("created_at").Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func productPrice(tx *gorm.DB, productID uint) (decimal.Decimal, error) {
	var product models.Product
	if err := tx.Select("id", "price").First(&product, productID).Error; err != nil {
		return decimal.Zero, lookupError(err, "product %d not found", productID)
	}
	return product.Price, nil
}

func (s *CartService) FetchCart(ctx context.Context, user *models.User) (*models.Cart, error) {
	return findCart(s.DB.WithContext(ctx), user.ID)
}

func (s *CartService) FetchItems(ctx context.Context, user *models.User) ([]models.CartItem, error) {
	db := s.DB.WithContext(ctx)
	cart, err := findCart(db, user.ID)
	if err != nil {
		return nil, err
	}
	return findCartItems(db, cart.ID)
}

// FetchCartItems returns the cart items joined with product title and image.
func (s *CartService) FetchCartItems(ctx context.Context, user *models.User) ([]models.CartItemInfo, error) {
	db := s.DB.WithContext(ctx)
	cart, err := findCart(db, user.ID)
	if err != nil {
		return nil, err
	}

	items := []models.CartItemInfo{}
	err = db.Table("cart_items").
		Select("cart_items.id, cart_items.product_id, cart_items.quantity, cart_items.price, cart_items.created_at, products.title, products.image").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cart.ID).
		Order("cart_items.created_at").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CartService) FetchProductPrice(ctx context.Context, productID uint) (decimal.Decimal, error) {
	return productPrice(s.DB.WithContext(ctx), productID)
}

func (s *CartService) CreateCart(ctx context.Context, user *models.User) (*models.Cart, error) {
	cart := models.Cart{UserID: user.ID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errCartExists
		}
		return insertCart(tx, &cart)
	})
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// insertCart relies on the unique user_id index when a concurrent insert won the race.
func insertCart(tx *gorm.DB, cart *models.Cart) error {
	if err := tx.Create(cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errCartExists
		}
		return err
	}
	return nil
}

// AddToCart records the product at its current catalog price.
func (s *CartService) AddToCart(ctx context.Context, productID uint, user *models.User, dto models.AddToCartDTO) (*models.CartItem, error) {
	quantity := dto.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	var item models.CartItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, user.ID)
		if err != nil {
			return err
		}
		price, err := productPrice(tx, productID)
		if err != nil {
			return err
		}
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			Price:     price,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicCartItemAdded, user.ID, events.CartEvent{
		UserID:    user.ID,
		CartID:    item.CartID,
		ProductID: productID,
		Quantity:  quantity,
	})
	return &item, nil
}

// BatchAddProducts adds one item per id, repeats included, in a single insert.
func (s *CartService) BatchAddProducts(ctx context.Context, productIDs []uint, user *models.User) ([]models.CartItem, error) {
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("%w: no products given", ErrValidation)
	}

	var items []models.CartItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, user.ID)
		if err != nil {
			return err
		}

		prices := make(map[uint]decimal.Decimal, len(productIDs))
		for _, id := range productIDs {
			if _, ok := prices[id]; ok {
				continue
			}
			price, err := productPrice(tx, id)
			if err != nil {
				return err
			}
			prices[id] = price
		}

		items = make([]models.CartItem, 0, len(productIDs))
		for _, id := range productIDs {
			items = append(items, models.CartItem{
				CartID:    cart.ID,
				ProductID: id,
				Quantity:  1,
				Price:     prices[id],
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		publish(ctx, s.Events, events.TopicCartItemAdded, user.ID, events.CartEvent{
			UserID:    user.ID,
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return items, nil
}

// RemoveCartItem deletes the oldest item for the product.
func (s *CartService) RemoveCartItem(ctx context.Context, productID uint, user *models.User) error {
	var item models.CartItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, user.ID)
		if err != nil {
			return err
		}
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Order("created_at").Order("id").
			First(&item).Error
		if err != nil {
			return lookupError(err, "product %d is not in the cart", productID)
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return err
	}

	publish(ctx, s.Events, events.TopicCartItemRemoved, user.ID, events.CartEvent{
		UserID:    user.ID,
		CartID:    item.CartID,
		ProductID: productID,
		Quantity:  item.Quantity,
	})
	return nil
}

// ClearCart empties the cart and reports how many items were removed.
func (s *CartService) ClearCart(ctx context.Context, user *models.User) (int64, error) {
	db := s.DB.WithContext(ctx)
	cart, err := findCart(db, user.ID)
	if err != nil {
		return 0, err
	}

	result := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}

	publish(ctx, s.Events, events.TopicCartCleared, user.ID, events.CartEvent{
		UserID:   user.ID,
		CartID:   cart.ID,
		Affected: result.RowsAffected,
	})
	return result.RowsAffected, nil
}
