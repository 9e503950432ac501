package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/utils"
)

var ErrRoomOccupied = errors.New("room already has a checked-in guest")

// ReservationController keeps the minimal room/reservation lifecycle the
// in-house guest detection feeds on.
type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// GetAllRooms
func (rc *ReservationController) GetAllRooms(c *gin.Context) {
	var rooms []models.Room
	if err := rc.DB.Find(&rooms).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of rooms", rooms)
}

// CreateRoom
func (rc *ReservationController) CreateRoom(c *gin.Context) {
	type reqBody struct {
		RoomNumber string `json:"room_number" binding:"required"`
		Name       string `json:"name"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	room := models.Room{RoomNumber: req.RoomNumber, Name: req.Name, Status: "available"}
	if err := rc.DB.Create(&room).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Room created", room)
}

// GetAllReservations
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	q := rc.DB.Preload("Room")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// CreateReservation
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	type reqBody struct {
		RoomID     uint   `json:"room_id" binding:"required"`
		GuestName  string `json:"guest_name" binding:"required"`
		GuestPhone string `json:"guest_phone"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var room models.Room
	if err := rc.DB.First(&room, req.RoomID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
		return
	}

	reservation := models.Reservation{
		RoomID:     req.RoomID,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		Status:     models.ReservationReserved,
	}
	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// CheckIn -> reserved => checked_in; at most one checked-in guest per room.
func (rc *ReservationController) CheckIn(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if reservation.Status != models.ReservationReserved {
		utils.RespondError(c, http.StatusBadRequest, errors.New("reservation not in reserved status"))
		return
	}

	var occupied int64
	rc.DB.Model(&models.Reservation{}).
		Where("room_id = ? AND status = ?", reservation.RoomID, models.ReservationCheckedIn).
		Count(&occupied)
	if occupied > 0 {
		utils.RespondError(c, http.StatusConflict, ErrRoomOccupied)
		return
	}

	now := time.Now()
	reservation.Status = models.ReservationCheckedIn
	reservation.CheckInAt = &now
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.DB.Model(&models.Room{}).Where("id = ?", reservation.RoomID).Update("status", "occupied")

	utils.InfoLogger.Printf("Guest %s checked in to room %d", reservation.GuestName, reservation.RoomID)
	utils.RespondJSON(c, http.StatusOK, "Guest checked in", reservation)
}

// CheckOut -> checked_in => checked_out; room_charge stops being offered
// for this room's tables from the next session on.
func (rc *ReservationController) CheckOut(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("reservation_id"))

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if reservation.Status != models.ReservationCheckedIn {
		utils.RespondError(c, http.StatusBadRequest, errors.New("reservation not in checked_in status"))
		return
	}

	now := time.Now()
	reservation.Status = models.ReservationCheckedOut
	reservation.CheckOutAt = &now
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.DB.Model(&models.Room{}).Where("id = ?", reservation.RoomID).Update("status", "available")

	utils.RespondJSON(c, http.StatusOK, "Guest checked out", reservation)
}

// GetAllTables
func (rc *ReservationController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := rc.DB.Preload("Room").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> optionally linked to a room for room-service contexts.
func (rc *ReservationController) CreateTable(c *gin.Context) {
	type reqBody struct {
		TableNumber string `json:"table_number" binding:"required"`
		RoomID      *uint  `json:"room_id"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.RoomID != nil {
		var room models.Room
		if err := rc.DB.First(&room, *req.RoomID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("room not found"))
			return
		}
	}

	table := models.Table{TableNumber: req.TableNumber, RoomID: req.RoomID, Status: "available"}
	if err := rc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}
