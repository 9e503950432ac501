package models

import "time"

// Table is a POS seating context. RoomID links a table to a hotel room for
// in-house guest detection (room-service tables); NULL for walk-in seating.
type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber string    `gorm:"type:varchar(50);not null" json:"table_number"`
	RoomID      *uint     `gorm:"index" json:"room_id,omitempty"`
	Room        *Room     `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"room,omitempty"`
	Status      string    `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
