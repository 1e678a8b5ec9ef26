package controllers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/events"
	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
)

// ReservationDuration is the fixed booking window length.
const ReservationDuration = 2 * time.Hour

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// MakeReservation books a table for [start, start+2h). The conflict check and
// the insert run inside one serializable transaction so two concurrent
// bookings of the same window cannot both pass the check.
func (rc *ReservationController) MakeReservation(c *gin.Context) {
	principalID := c.GetUint("principal_id")

	type reqBody struct {
		TableID   uint   `json:"table_id" binding:"required"`
		Date      string `json:"date" binding:"required"`
		Time      string `json:"time" binding:"required"`
		PartySize int    `json:"party_size" binding:"required"`
		Notes     string `json:"notes"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", body.Date+" "+body.Time, time.Local)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date or time format"))
		return
	}
	end := start.Add(ReservationDuration)

	if body.PartySize < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("party size must be at least 1"))
		return
	}

	var table models.DiningTable
	if err := rc.DB.First(&table, body.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	if body.PartySize > table.Capacity {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("party size %d exceeds table capacity %d", body.PartySize, table.Capacity))
		return
	}

	tx := rc.DB.Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		utils.RespondInternalError(c, tx.Error)
		return
	}

	// Half-open overlap: an existing Booked reservation collides when it
	// starts before our end and ends after our start. Touching windows
	// ([T,T+2h) against [T+2h,T+4h)) do not collide.
	var count int64
	if err := tx.Model(&models.Reservation{}).
		Where("table_id = ? AND status = ? AND start_date_time < ? AND end_date_time > ?",
			body.TableID, models.ReservationBooked, end, start).
		Count(&count).Error; err != nil {
		tx.Rollback()
		utils.RespondInternalError(c, err)
		return
	}

	if count > 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusConflict,
			errors.New("selected table is not available at the chosen time"))
		return
	}

	reservation := models.Reservation{
		CustomerID:    principalID,
		TableID:       body.TableID,
		StartDateTime: start,
		EndDateTime:   end,
		PartySize:     body.PartySize,
		Notes:         body.Notes,
		Status:        models.ReservationBooked,
	}

	if err := tx.Create(&reservation).Error; err != nil {
		tx.Rollback()
		utils.RespondInternalError(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	events.BroadcastReservationCreate(reservation)

	utils.RespondJSON(c, http.StatusCreated, "Reservation made successfully", reservation)
}

// GetCustomerReservations lists the caller's reservations, newest first.
func (rc *ReservationController) GetCustomerReservations(c *gin.Context) {
	principalID := c.GetUint("principal_id")

	var reservations []models.Reservation
	if err := rc.DB.Preload("Table").
		Where("customer_id = ?", principalID).
		Order("start_date_time DESC").
		Find(&reservations).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Your reservations", reservations)
}

// GetTables lists the dining tables for the booking form.
func (rc *ReservationController) GetTables(c *gin.Context) {
	var tables []models.DiningTable
	if err := rc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetStaffReservations lists reservations from today onward with customer and
// table details.
func (rc *ReservationController) GetStaffReservations(c *gin.Context) {
	today := startOfDay(time.Now())

	var reservations []models.Reservation
	if err := rc.DB.Preload("Customer").Preload("Table").
		Where("start_date_time >= ?", today).
		Order("start_date_time").
		Find(&reservations).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Upcoming reservations", reservations)
}

// UpdateReservationStatus transitions a reservation through its lifecycle
// (Booked, Seated, Completed, Cancelled, NoShow).
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	reservationID := c.Param("reservation_id")

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidReservationStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("unknown reservation status %q", body.Status))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, reservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}

	reservation.Status = body.Status
	reservation.UpdatedAt = time.Now()
	if err := rc.DB.Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Updates(map[string]interface{}{
			"status":     reservation.Status,
			"updated_at": reservation.UpdatedAt,
		}).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	events.BroadcastReservationUpdate(reservation)

	utils.RespondJSON(c, http.StatusOK,
		fmt.Sprintf("Reservation status updated to %s", body.Status), reservation)
}

// startOfDay returns midnight of t's calendar day in t's location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
