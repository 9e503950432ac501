package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/pos"
)

// ReservationService detects the in-house guest for a POS table context.
// A nil result simply means room_charge stays off the method list.
type ReservationService struct {
	db *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

// DetectActiveGuest follows table -> room -> checked-in reservation. Tables
// without a room link, and rooms without a checked-in guest, yield nil.
func (s *ReservationService) DetectActiveGuest(ctx context.Context, tableID uint) (*pos.GuestContext, error) {
	var table models.Table
	if err := s.db.WithContext(ctx).First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if table.RoomID == nil {
		return nil, nil
	}

	var reservation models.Reservation
	err := s.db.WithContext(ctx).
		Preload("Room").
		Where("room_id = ? AND status = ?", *table.RoomID, models.ReservationCheckedIn).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	roomName := reservation.Room.Name
	if roomName == "" {
		roomName = reservation.Room.RoomNumber
	}
	return &pos.GuestContext{
		ReservationID: reservation.ID,
		RoomID:        reservation.RoomID,
		RoomName:      roomName,
		GuestName:     reservation.GuestName,
	}, nil
}
