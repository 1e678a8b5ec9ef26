package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/events"
	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

// ProcessPayment captures payment for an Open order and closes it, all in one
// transaction. The captured amount must match the order's derived total, and
// an order can be paid at most once (backed by the unique payments.order_id
// index).
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	orderID := c.Param("order_id")
	staffID := c.GetUint("principal_id")

	type reqBody struct {
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		PaymentMethod string  `json:"payment_method" binding:"required"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tx := pc.DB.Begin()
	if tx.Error != nil {
		utils.RespondInternalError(c, tx.Error)
		return
	}

	var order models.SalesOrder
	if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if order.Status != models.OrderOpen {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("order #%d is not open for payment", order.ID))
		return
	}

	var existing int64
	if err := tx.Model(&models.Payment{}).
		Where("order_id = ?", order.ID).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		utils.RespondInternalError(c, err)
		return
	}
	if existing > 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("payment already captured for order #%d", order.ID))
		return
	}

	total := order.Total()
	if math.Abs(total-body.Amount) > 0.005 {
		tx.Rollback()
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("amount %.2f does not match order total %.2f", body.Amount, total))
		return
	}

	now := time.Now()
	payment := models.Payment{
		OrderID:         order.ID,
		Amount:          body.Amount,
		PaymentMethod:   body.PaymentMethod,
		PaymentDateTime: now,
		Status:          models.PaymentCaptured,
		ReferenceID:     uuid.NewString(),
	}

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondInternalError(c, err)
		return
	}

	// Column-level update so the preloaded lines are never re-saved; captured
	// unit prices stay untouched.
	if err := tx.Model(&models.SalesOrder{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":     models.OrderClosed,
			"staff_id":   staffID,
			"updated_at": now,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondInternalError(c, err)
		return
	}
	order.Status = models.OrderClosed
	order.StaffID = &staffID
	order.UpdatedAt = now

	if err := tx.Commit().Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	events.BroadcastPaymentCaptured(payment, order)
	events.BroadcastStaffNotification(fmt.Sprintf("Payment received for Order #%d", order.ID))

	utils.RespondJSON(c, http.StatusOK, "Payment processed successfully", gin.H{
		"payment": payment,
		"order":   order,
	})
}
