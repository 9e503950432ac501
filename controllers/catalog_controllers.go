package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/services"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

// CatalogController manages the menu the POS sells from, and answers the
// add-item search used by the terminals.
type CatalogController struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewCatalogController(db *gorm.DB, catalog *services.CatalogService) *CatalogController {
	return &CatalogController{DB: db, Catalog: catalog}
}

// Search -> add-item search for POS terminals; available items only.
func (cc *CatalogController) Search(c *gin.Context) {
	items, err := cc.Catalog.SearchCatalog(c.Request.Context(), c.Query("query"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Catalog search results", items)
}

// GetAllMenus
func (cc *CatalogController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := cc.DB.Preload("Category").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByID
func (cc *CatalogController) GetMenuByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := cc.DB.Preload("Category").First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// CreateMenu
func (cc *CatalogController) CreateMenu(c *gin.Context) {
	type reqBody struct {
		CategoryID  uint            `json:"category_id" binding:"required"`
		Name        string          `json:"name" binding:"required"`
		Price       decimal.Decimal `json:"price"`
		Description string          `json:"description"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !req.Price.IsPositive() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be greater than 0"))
		return
	}

	var category models.MenuCategory
	if err := cc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	menu := models.Menu{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Available:   true,
	}
	if err := cc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu -> partial update; price changes do not touch snapshots in
// already-built carts or persisted order items.
func (cc *CatalogController) UpdateMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := cc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		CategoryID  *uint            `json:"category_id"`
		Name        *string          `json:"name"`
		Price       *decimal.Decimal `json:"price"`
		Description *string          `json:"description"`
		Available   *bool            `json:"available"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		menu.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must be greater than 0"))
			return
		}
		menu.Price = *req.Price
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Available != nil {
		menu.Available = *req.Available
	}

	if err := cc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu
func (cc *CatalogController) DeleteMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	if err := cc.DB.Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}

// GetAllCategories
func (cc *CatalogController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := cc.DB.Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateCategory
func (cc *CatalogController) CreateCategory(c *gin.Context) {
	type reqBody struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{Name: req.Name, Description: req.Description}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// DeleteCategory
func (cc *CatalogController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("cat_id"))

	if err := cc.DB.Delete(&models.MenuCategory{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
