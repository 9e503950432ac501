package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records the settlement of an order at the counter. For room_charge
// the amount is posted to the in-house guest's folio via ReservationID.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"not null;index" json:"order_id"`
	Order         Order           `gorm:"foreignKey:OrderID" json:"-"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method        string          `gorm:"type:varchar(20);not null" json:"method"`
	ReservationID *uint           `gorm:"index" json:"reservation_id,omitempty"`
	PaidAt        time.Time       `gorm:"not null" json:"paid_at"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}
