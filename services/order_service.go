package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/pos"
)

// Order statuses
const (
	OrderStatusPlaced    = "placed"
	OrderStatusPreparing = "preparing"
	OrderStatusServed    = "served"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderService is the order-persistence collaborator. Both calls run in a
// single transaction: all-or-nothing at this boundary.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder persists the finalized settlement payload: the order row, its
// item rows, the payment record and the promotion redemption in one
// transaction.
func (s *OrderService) CreateOrder(ctx context.Context, payload pos.OrderPayload) (uint, error) {
	if len(payload.Lines) == 0 {
		return 0, pos.ErrEmptyCart
	}

	var orderID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			Status:      OrderStatusPlaced,
			Subtotal:    payload.Subtotal,
			Discount:    payload.Discount,
			TotalAmount: payload.Total,
			PromotionID: payload.PromotionID,
			TableID:     payload.TableID,
		}
		if payload.Customer != nil {
			order.CustomerName = payload.Customer.Name
			order.CustomerPhone = payload.Customer.Phone
			order.CustomerEmail = payload.Customer.Email
		}
		if payload.Reservation != nil {
			id := payload.Reservation.ReservationID
			order.ReservationID = &id
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range payload.Lines {
			item := models.OrderItem{
				OrderID:   order.ID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				IsCustom:  line.IsCustom,
				Notes:     line.Note,
			}
			if !line.IsCustom {
				menuID := line.SourceItemID
				item.MenuID = &menuID
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		payment := models.Payment{
			OrderID:       order.ID,
			Amount:        payload.Total,
			Method:        string(payload.Method),
			ReservationID: order.ReservationID,
			PaidAt:        time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		if payload.PromotionID != nil {
			err := tx.Model(&models.Promotion{}).
				Where("id = ?", *payload.PromotionID).
				UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
			if err != nil {
				return fmt.Errorf("failed to record promotion redemption: %w", err)
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}

// UpdateOrderItems applies a mid-service edit as per-ID deletes plus
// inserts, then recomputes the order totals from the surviving rows. It
// never overwrites the full item list, so lines touched concurrently by
// another terminal survive.
func (s *OrderService) UpdateOrderItems(ctx context.Context, orderID uint, change pos.ItemChangeSet) error {
	if len(change.ToDelete) == 0 && len(change.ToInsert) == 0 {
		return pos.ErrNoChanges
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return fmt.Errorf("failed to load order %d: %w", orderID, err)
		}

		if len(change.ToDelete) > 0 {
			err := tx.Where("order_id = ? AND id IN ?", orderID, change.ToDelete).
				Delete(&models.OrderItem{}).Error
			if err != nil {
				return fmt.Errorf("failed to delete order items: %w", err)
			}
		}

		for _, line := range change.ToInsert {
			item := models.OrderItem{
				OrderID:   orderID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				IsCustom:  line.IsCustom,
				Notes:     line.Note,
			}
			if !line.IsCustom {
				menuID := line.SourceItemID
				item.MenuID = &menuID
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}

		// Recompute totals from what actually survived the edit.
		var items []models.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to reload order items: %w", err)
		}
		subtotal := decimal.Zero
		for _, it := range items {
			subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		total := subtotal.Sub(order.Discount)
		if total.IsNegative() {
			total = decimal.Zero
		}
		order.Subtotal = subtotal
		order.TotalAmount = total
		order.UpdatedAt = time.Now()
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed to update order totals: %w", err)
		}
		return nil
	})
}
