package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/Kariqs/confectionary-api/cache"
	"github.com/Kariqs/confectionary-api/events"
	"github.com/Kariqs/confectionary-api/models"
	"gorm.io/gorm"
)

type ProductService struct {
	DB     *gorm.DB
	Cache  cache.ProductCache
	Events events.Publisher
}

func NewProductService(db *gorm.DB, productCache cache.ProductCache, publisher events.Publisher) *ProductService {
	if productCache == nil {
		productCache = cache.NopProductCache{}
	}
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	return &ProductService{DB: db, Cache: productCache, Events: publisher}
}

func (s *ProductService) Fetch(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := s.DB.WithContext(ctx).Preload("Categories").Order("id")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.CategoryID != "" {
		inCategory := s.DB.Table("product_categories").Select("product_id").Where("category_id = ?", filter.CategoryID)
		query = query.Where("id IN (?)", inCategory)
	}
	if filter.Limit > 0 {
		page := min(max(filter.Page, 1), models.MaxPage)
		query = query.Limit(filter.Limit).Offset((page - 1) * filter.Limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) FetchByID(ctx context.Context, id uint) (*models.Product, error) {
	cached, err := s.Cache.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Product cache read failed for %d: %v", id, err)
	}

	var product models.Product
	if err := s.DB.WithContext(ctx).Preload("Categories").First(&product, id).Error; err != nil {
		return nil, lookupError(err, "product %d not found", id)
	}

	if err := s.Cache.Set(ctx, &product); err != nil {
		log.Printf("Product cache write failed for %d: %v", id, err)
	}
	return &product, nil
}

func resolveCategories(tx *gorm.DB, ids []string) ([]models.Category, error) {
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return []models.Category{}, nil
	}

	var categories []models.Category
	if err := tx.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		return nil, notFound("one or more categories do not exist")
	}
	return categories, nil
}

func validatePrice(product *models.Product) error {
	if !product.Price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, dto models.CreateProductDTO) (*models.Product, error) {
	product := models.Product{
		Title:       strings.TrimSpace(dto.Title),
		Image:       dto.Image,
		Price:       dto.Price,
		Description: dto.Description,
		Status:      models.ProductInStock,
	}
	if product.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := validatePrice(&product); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := resolveCategories(tx, dto.CategoryIDs)
		if err != nil {
			return err
		}
		product.Categories = categories
		return tx.Create(&product).Error
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicProductCreated, productEventKey(product.ID), productEvent(&product))
	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, dto models.UpdateProductDTO) (*models.Product, error) {
	var product models.Product
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Categories").First(&product, id).Error; err != nil {
			return lookupError(err, "product %d not found", id)
		}

		if dto.Title != nil {
			product.Title = strings.TrimSpace(*dto.Title)
			if product.Title == "" {
				return fmt.Errorf("%w: title is required", ErrValidation)
			}
		}
		if dto.Image != nil {
			product.Image = *dto.Image
		}
		if dto.Price != nil {
			product.Price = *dto.Price
			if err := validatePrice(&product); err != nil {
				return err
			}
		}
		if dto.Description != nil {
			product.Description = *dto.Description
		}
		if dto.Status != nil {
			if !dto.Status.Valid() {
				return fmt.Errorf("%w: unknown product status %q", ErrValidation, *dto.Status)
			}
			product.Status = *dto.Status
		}

		if err := tx.Omit("Categories").Save(&product).Error; err != nil {
			return err
		}

		if dto.CategoryIDs != nil {
			categories, err := resolveCategories(tx, *dto.CategoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&product).Association("Categories").Replace(categories); err != nil {
				return err
			}
			product.Categories = categories
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, product.ID)
	publish(ctx, s.Events, events.TopicProductUpdated, productEventKey(product.ID), productEvent(&product))
	return &product, nil
}

// Remove deletes the product and drops it from every cart. Order items keep their snapshot.
func (s *ProductService) Remove(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_categories WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("product %d not found", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	publish(ctx, s.Events, events.TopicProductRemoved, productEventKey(id), events.ProductEvent{ProductID: id})
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, ids ...uint) {
	if err := s.Cache.Invalidate(ctx, ids...); err != nil {
		log.Printf("Product cache invalidation failed for %v: %v", ids, err)
	}
}

func productEvent(product *models.Product) events.ProductEvent {
	return events.ProductEvent{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Status:    string(product.Status),
	}
}

func productEventKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
