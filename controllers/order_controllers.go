package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/events"
	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

type orderItemReq struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// PlaceOrder creates an Open order with one line per requested item, the menu
// price frozen into UnitPriceAtOrder. The whole order is one transaction: a
// stale item id fails everything instead of silently dropping the line.
//
// Accepts a JSON body {order_items: [{item_id, quantity}]} or a form
// submission with items[]/quantities[]. Responds with the flat
// {status, order_id, message} shape the menu page consumes.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	principalID := c.GetUint("principal_id")

	items, err := oc.parseOrderItems(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	// Drop non-positive quantities before deciding the order is empty.
	filtered := items[:0]
	for _, it := range items {
		if it.Quantity > 0 {
			filtered = append(filtered, it)
		}
	}
	if len(filtered) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "No items in order."})
		return
	}

	tx := oc.DB.Begin()
	if tx.Error != nil {
		utils.ErrorLogger.Printf("begin order transaction: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error placing order."})
		return
	}

	order := models.SalesOrder{
		CustomerID:    principalID,
		OrderDateTime: time.Now(),
		Status:        models.OrderOpen,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error placing order."})
		return
	}

	for _, it := range filtered {
		var menuItem models.MenuItem
		if err := tx.First(&menuItem, it.ItemID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{
					"status":  "error",
					"message": fmt.Sprintf("Menu item %d is no longer available.", it.ItemID),
				})
				return
			}
			utils.ErrorLogger.Printf("lookup menu item %d: %v", it.ItemID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error placing order."})
			return
		}

		line := models.OrderItem{
			OrderID:          order.ID,
			ItemID:           menuItem.ID,
			Quantity:         it.Quantity,
			UnitPriceAtOrder: menuItem.BasePrice,
		}
		if err := tx.Create(&line).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("create order item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error placing order."})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("commit order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error placing order."})
		return
	}

	events.BroadcastOrderCreate(order)

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"order_id": order.ID,
		"message":  fmt.Sprintf("Order #%d placed successfully!", order.ID),
	})
}

func (oc *OrderController) parseOrderItems(c *gin.Context) ([]orderItemReq, error) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var body struct {
			OrderItems []orderItemReq `json:"order_items"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		return body.OrderItems, nil
	}

	// Form submission from the menu page.
	ids := c.PostFormArray("items[]")
	quantities := c.PostFormArray("quantities[]")

	var items []orderItemReq
	for i, idStr := range ids {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q", idStr)
		}
		qty := 0
		if i < len(quantities) {
			qty, _ = strconv.Atoi(quantities[i])
		}
		items = append(items, orderItemReq{ItemID: uint(id), Quantity: qty})
	}
	return items, nil
}

// GetOrderByID returns an order with its lines, derived total and payment.
// Customers can only see their own orders.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.SalesOrder
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Item").Preload("Customer").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	role := c.GetString("role")
	if role == "customer" && order.CustomerID != c.GetUint("principal_id") {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var payment *models.Payment
	var p models.Payment
	if err := oc.DB.Where("order_id = ?", order.ID).First(&p).Error; err == nil {
		payment = &p
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", gin.H{
		"order":   order,
		"total":   order.Total(),
		"payment": payment,
	})
}

// GetStaffOrders lists every order with customer and payment info, newest
// first.
func (oc *OrderController) GetStaffOrders(c *gin.Context) {
	var orders []models.SalesOrder
	if err := oc.DB.Preload("Customer").Preload("OrderItems").
		Order("order_date_time DESC").
		Find(&orders).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var payments []models.Payment
	if err := oc.DB.Find(&payments).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}
	paymentByOrder := make(map[uint]models.Payment, len(payments))
	for _, p := range payments {
		paymentByOrder[p.OrderID] = p
	}

	type orderRow struct {
		Order         models.SalesOrder `json:"order"`
		Total         float64           `json:"total"`
		PaymentAmount float64           `json:"payment_amount"`
		PaymentStatus string            `json:"payment_status,omitempty"`
	}

	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		row := orderRow{Order: o, Total: o.Total()}
		if p, ok := paymentByOrder[o.ID]; ok {
			row.PaymentAmount = p.Amount
			row.PaymentStatus = p.Status
		}
		rows = append(rows, row)
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", rows)
}
