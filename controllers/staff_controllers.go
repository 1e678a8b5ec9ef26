package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// Dashboard returns today's active reservations and the Open orders.
func (sc *StaffController) Dashboard(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var reservations []models.Reservation
	if err := sc.DB.Preload("Customer").Preload("Table").
		Where("DATE(start_date_time) = ? AND status IN ?",
			today, []string{models.ReservationBooked, models.ReservationSeated}).
		Order("start_date_time").
		Find(&reservations).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var orders []models.SalesOrder
	if err := sc.DB.Preload("Customer").Preload("OrderItems").
		Where("status = ?", models.OrderOpen).
		Order("order_date_time").
		Find(&orders).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Staff dashboard", gin.H{
		"todays_reservations": reservations,
		"open_orders":         orders,
	})
}
