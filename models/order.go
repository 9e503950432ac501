package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Status        string          `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PromotionID   *uint           `gorm:"index" json:"promotion_id,omitempty"`
	Promotion     *Promotion      `gorm:"foreignKey:PromotionID" json:"promotion,omitempty"`
	TableID       *uint           `gorm:"index" json:"table_id,omitempty"`
	Table         *Table          `gorm:"foreignKey:TableID" json:"table,omitempty"`
	ReservationID *uint           `gorm:"index" json:"reservation_id,omitempty"`
	Reservation   *Reservation    `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	CustomerName  string          `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone string          `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	CustomerEmail string          `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}
