package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/storage"
	"gorm.io/gorm"
)

type PromotionService struct {
	DB     *gorm.DB
	Images storage.ImageStore
}

func NewPromotionService(db *gorm.DB, images storage.ImageStore) *PromotionService {
	return &PromotionService{DB: db, Images: images}
}

func validatePromotion(promotion *models.Promotion) error {
	var missing []string
	if strings.TrimSpace(promotion.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(promotion.URL) == "" {
		missing = append(missing, "url")
	}
	if strings.TrimSpace(promotion.Image) == "" {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s must not be empty", ErrUnprocessable, strings.Join(missing, ", "))
	}
	return nil
}

func (s *PromotionService) FetchAll(ctx context.Context) ([]models.Promotion, error) {
	promotions := []models.Promotion{}
	if err := s.DB.WithContext(ctx).Order("id").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

func (s *PromotionService) FetchByID(ctx context.Context, id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := s.DB.WithContext(ctx).First(&promotion, id).Error; err != nil {
		return nil, lookupError(err, "promotion %d not found", id)
	}
	return &promotion, nil
}

func (s *PromotionService) Create(ctx context.Context, dto models.PromotionDTO) (*models.Promotion, error) {
	promotion := models.Promotion{Title: dto.Title, URL: dto.URL, Image: dto.Image}
	if err := validatePromotion(&promotion); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&promotion).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (s *PromotionService) Update(ctx context.Context, id uint, dto models.UpdatePromotionDTO) (*models.Promotion, error) {
	var promotion models.Promotion
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&promotion, id).Error; err != nil {
			return lookupError(err, "promotion %d not found", id)
		}
		if dto.Title != nil {
			promotion.Title = *dto.Title
		}
		if dto.URL != nil {
			promotion.URL = *dto.URL
		}
		if dto.Image != nil {
			promotion.Image = *dto.Image
		}
		if err := validatePromotion(&promotion); err != nil {
			return err
		}
		return tx.Save(&promotion).Error
	})
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (s *PromotionService) Remove(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Promotion{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("promotion %d not found", id)
	}
	return nil
}

func (s *PromotionService) OpenImage(ctx context.Context, filename string) (io.ReadCloser, error) {
	rc, err := s.Images.Open(ctx, filename)
	return rc, imageError(err)
}

func (s *PromotionService) SaveImage(ctx context.Context, filename string, body io.Reader, contentType string) (string, error) {
	location, err := s.Images.Save(ctx, filename, body, contentType)
	return location, imageError(err)
}

func imageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, storage.ErrInvalidName):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	default:
		return err
	}
}
