package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/pos"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

var hundred = decimal.NewFromInt(100)

// PromotionController manages the coded discount rules the POS resolves
// against. Exactly one of percentage/amount must be set per promotion.
type PromotionController struct {
	DB *gorm.DB
}

func NewPromotionController(db *gorm.DB) *PromotionController {
	return &PromotionController{DB: db}
}

// GetAllPromotions
func (pc *PromotionController) GetAllPromotions(c *gin.Context) {
	var promotions []models.Promotion
	if err := pc.DB.Find(&promotions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of promotions", promotions)
}

// CreatePromotion
func (pc *PromotionController) CreatePromotion(c *gin.Context) {
	type reqBody struct {
		Name               string           `json:"name" binding:"required"`
		Code               string           `json:"code" binding:"required"`
		DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
		DiscountAmount     *decimal.Decimal `json:"discount_amount"`
		StartsAt           *time.Time       `json:"starts_at"`
		EndsAt             *time.Time       `json:"ends_at"`
		UsageLimit         *int             `json:"usage_limit"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if (req.DiscountPercentage == nil) == (req.DiscountAmount == nil) {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("exactly one of discount_percentage or discount_amount is required"))
		return
	}
	if req.DiscountPercentage != nil &&
		(req.DiscountPercentage.IsNegative() || req.DiscountPercentage.GreaterThan(hundred)) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("discount_percentage must be between 0 and 100"))
		return
	}
	if req.DiscountAmount != nil && req.DiscountAmount.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("discount_amount must not be negative"))
		return
	}

	promotion := models.Promotion{
		Name:               req.Name,
		Code:               pos.NormalizeCode(req.Code),
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		Active:             true,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		UsageLimit:         req.UsageLimit,
	}
	if err := pc.DB.Create(&promotion).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Promotion created", promotion)
}

// UpdatePromotion -> toggle active flag or adjust window/limit.
func (pc *PromotionController) UpdatePromotion(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("promo_id"))

	var promotion models.Promotion
	if err := pc.DB.First(&promotion, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Name       *string    `json:"name"`
		Active     *bool      `json:"active"`
		StartsAt   *time.Time `json:"starts_at"`
		EndsAt     *time.Time `json:"ends_at"`
		UsageLimit *int       `json:"usage_limit"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		promotion.Name = *req.Name
	}
	if req.Active != nil {
		promotion.Active = *req.Active
	}
	if req.StartsAt != nil {
		promotion.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		promotion.EndsAt = req.EndsAt
	}
	if req.UsageLimit != nil {
		promotion.UsageLimit = req.UsageLimit
	}

	if err := pc.DB.Save(&promotion).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Promotion updated", promotion)
}

// DeletePromotion
func (pc *PromotionController) DeletePromotion(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("promo_id"))

	if err := pc.DB.Delete(&models.Promotion{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Promotion deleted", gin.H{"promotion_id": id})
}
