package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

// OrderController is the read/admin side of persisted orders. Creation only
// happens through settlement; edits go through the order-edit surface.
type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetAllOrders -> list orders with items, newest first, optional status
// filter.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	q := oc.DB.Preload("OrderItems").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order with items and settlement context.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	err := oc.DB.
		Preload("OrderItems").
		Preload("Promotion").
		Preload("Reservation").
		Preload("Reservation.Room").
		First(&order, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetPayments -> settlement records, optionally for one order.
func (oc *OrderController) GetPayments(c *gin.Context) {
	var payments []models.Payment
	q := oc.DB.Order("paid_at desc")
	if orderID := c.Query("order_id"); orderID != "" {
		q = q.Where("order_id = ?", orderID)
	}
	if err := q.Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}
