package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Kariqs/confectionary-api/cache"
	"github.com/Kariqs/confectionary-api/models"
	"gorm.io/gorm"
)

type CategoryService struct {
	DB    *gorm.DB
	Cache cache.ProductCache
}

func NewCategoryService(db *gorm.DB, productCache cache.ProductCache) *CategoryService {
	if productCache == nil {
		productCache = cache.NopProductCache{}
	}
	return &CategoryService{DB: db, Cache: productCache}
}

func (s *CategoryService) Fetch(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	query := s.DB.WithContext(ctx).Order("cname")
	if filter.Search != "" {
		query = query.Where("LOWER(cname) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) FetchByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, lookupError(err, "category %s not found", id)
	}
	return &category, nil
}

func categoryName(dto models.CategoryDTO) (string, error) {
	name := strings.TrimSpace(dto.Cname)
	if name == "" {
		return "", fmt.Errorf("%w: cname is required", ErrValidation)
	}
	return name, nil
}

func (s *CategoryService) Create(ctx context.Context, dto models.CategoryDTO) (*models.Category, error) {
	name, err := categoryName(dto)
	if err != nil {
		return nil, err
	}
	category := models.Category{Cname: name}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, dto models.CategoryDTO) (*models.Category, error) {
	name, err := categoryName(dto)
	if err != nil {
		return nil, err
	}

	var category models.Category
	var productIDs []uint
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return lookupError(err, "category %s not found", id)
		}
		category.Cname = name
		if err := tx.Save(&category).Error; err != nil {
			return err
		}
		var err error
		productIDs, err = productsInCategory(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, productIDs)
	return &category, nil
}

// Remove detaches the category from its products. The products themselves stay.
func (s *CategoryService) Remove(ctx context.Context, id string) error {
	var productIDs []uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		productIDs, err = productsInCategory(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM product_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("category %s not found", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, productIDs)
	return nil
}

func productsInCategory(tx *gorm.DB, categoryID string) ([]uint, error) {
	var ids []uint
	err := tx.Table("product_categories").Where("category_id = ?", categoryID).Pluck("product_id", &ids).Error
	return ids, err
}

// Cached products embed their categories, so renames and removals must evict them.
func (s *CategoryService) invalidate(ctx context.Context, productIDs []uint) {
	if err := s.Cache.Invalidate(ctx, productIDs...); err != nil {
		log.Printf("Product cache invalidation failed for %v: %v", productIDs, err)
	}
}
