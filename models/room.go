package models

import "time"

type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RoomNumber string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"room_number"`
	Name       string    `gorm:"type:varchar(100)" json:"name"`
	Status     string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
