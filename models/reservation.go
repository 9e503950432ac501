package models

import "time"

// Reservation statuses
const (
	ReservationReserved   = "reserved"
	ReservationCheckedIn  = "checked_in"
	ReservationCheckedOut = "checked_out"
	ReservationCancelled  = "cancelled"
)

type Reservation struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	RoomID     uint       `gorm:"not null;index" json:"room_id"`
	Room       Room       `gorm:"foreignKey:RoomID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"room"`
	GuestName  string     `gorm:"type:varchar(255);not null" json:"guest_name"`
	GuestPhone string     `gorm:"type:varchar(50)" json:"guest_phone"`
	Status     string     `gorm:"type:varchar(20);not null;default:'reserved'" json:"status"`
	CheckInAt  *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}
