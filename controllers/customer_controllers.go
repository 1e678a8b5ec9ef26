package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// Dashboard returns the caller's upcoming reservations and five most recent
// orders with the paid amount, if any.
func (cc *CustomerController) Dashboard(c *gin.Context) {
	principalID := c.GetUint("principal_id")
	now := time.Now()

	var reservations []models.Reservation
	if err := cc.DB.Preload("Table").
		Where("customer_id = ? AND status = ? AND start_date_time >= ?",
			principalID, models.ReservationBooked, now).
		Order("start_date_time ASC").
		Find(&reservations).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var orders []models.SalesOrder
	if err := cc.DB.Preload("OrderItems").
		Where("customer_id = ?", principalID).
		Order("order_date_time DESC").
		Limit(5).
		Find(&orders).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	type recentOrder struct {
		Order      models.SalesOrder `json:"order"`
		Total      float64           `json:"total"`
		AmountPaid float64           `json:"amount_paid"`
	}

	recent := make([]recentOrder, 0, len(orders))
	for _, o := range orders {
		row := recentOrder{Order: o, Total: o.Total()}
		var p models.Payment
		if err := cc.DB.Where("order_id = ?", o.ID).First(&p).Error; err == nil {
			row.AmountPaid = p.Amount
		}
		recent = append(recent, row)
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard data", gin.H{
		"upcoming_reservations": reservations,
		"recent_orders":         recent,
	})
}

// Menu returns the available menu items grouped by category.
func (cc *CustomerController) Menu(c *gin.Context) {
	var items []models.MenuItem
	if err := cc.DB.Where("is_available = ?", true).
		Order("category, name").
		Find(&items).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	categorized := make(map[string][]models.MenuItem)
	for _, item := range items {
		categorized[item.Category] = append(categorized[item.Category], item)
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", categorized)
}
