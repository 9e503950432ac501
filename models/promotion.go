package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a coded discount rule. Exactly one of DiscountPercentage or
// DiscountAmount is set for a given row; the other stays NULL.
type Promotion struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	Name               string           `gorm:"type:varchar(255);not null" json:"name"`
	Code               string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	DiscountPercentage *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_amount,omitempty"`
	Active             bool             `gorm:"not null;default:true" json:"active"`
	StartsAt           *time.Time       `json:"starts_at,omitempty"`
	EndsAt             *time.Time       `json:"ends_at,omitempty"`
	UsageLimit         *int             `json:"usage_limit,omitempty"`
	UsageCount         int              `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt          time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time        `gorm:"not null" json:"updated_at"`
}
