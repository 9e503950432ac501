package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/pos"
)

// PromotionService resolves promotion codes against the promotions table.
// Invalid and unknown codes are recoverable outcomes, not failures.
type PromotionService struct {
	db *gorm.DB
}

func NewPromotionService(db *gorm.DB) *PromotionService {
	return &PromotionService{db: db}
}

// ResolvePromotion expects an already-normalized code (trimmed, uppercased).
// It enforces the active flag, the validity window and the usage cap.
func (s *PromotionService) ResolvePromotion(ctx context.Context, code string) (*pos.Promotion, error) {
	var promo models.Promotion
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&promo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pos.ErrPromotionNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !promo.Active {
		return nil, pos.ErrPromotionInactive
	}
	if promo.StartsAt != nil && now.Before(*promo.StartsAt) {
		return nil, pos.ErrPromotionInactive
	}
	if promo.EndsAt != nil && now.After(*promo.EndsAt) {
		return nil, pos.ErrPromotionInactive
	}
	if promo.UsageLimit != nil && promo.UsageCount >= *promo.UsageLimit {
		return nil, pos.ErrPromotionInactive
	}

	return &pos.Promotion{
		ID:                 promo.ID,
		Name:               promo.Name,
		Code:               promo.Code,
		DiscountPercentage: promo.DiscountPercentage,
		DiscountAmount:     promo.DiscountAmount,
	}, nil
}
