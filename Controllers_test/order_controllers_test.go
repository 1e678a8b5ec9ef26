package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/controllers"
	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
)

func setupOrderDB(t *testing.T, name string) *gorm.DB {
	db := openTestDB(t, name)
	err := db.AutoMigrate(
		&models.Customer{},
		&models.MenuItem{},
		&models.SalesOrder{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.Customer{
		FirstName:    "Dana",
		LastName:     "Putra",
		Email:        "dana@example.com",
		PasswordHash: "x",
	})
	db.Create(&models.MenuItem{
		Name:        "Grilled Salmon",
		Category:    "Mains",
		BasePrice:   9.50,
		IsAvailable: true,
	})
	db.Create(&models.MenuItem{
		Name:        "Iced Tea",
		Category:    "Drinks",
		BasePrice:   2.25,
		IsAvailable: true,
	})
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := controllers.NewOrderController(db)
	r.POST("/customer/orders", authAs(1, "customer"), ctrl.PlaceOrder)
	r.GET("/customer/orders/:order_id", authAs(1, "customer"), ctrl.GetOrderByID)
	return r
}

func placeOrderJSON(t *testing.T, r *gin.Engine, items []map[string]interface{}) *httptest.ResponseRecorder {
	payload := map[string]interface{}{"order_items": items}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/customer/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderFreezesPriceAndFiltersZeroQty(t *testing.T) {
	utils.InitLogger()
	db := setupOrderDB(t, "order_freeze")
	r := setupOrderRouter(db)

	w := placeOrderJSON(t, r, []map[string]interface{}{
		{"item_id": 1, "quantity": 2},
		{"item_id": 2, "quantity": 0},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status  string `json:"status"`
		OrderID uint   `json:"order_id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotZero(t, resp.OrderID)

	var lines []models.OrderItem
	db.Where("order_id = ?", resp.OrderID).Find(&lines)
	assert.Len(t, lines, 1, "the zero-quantity entry must not be persisted")
	assert.Equal(t, uint(1), lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 9.50, lines[0].UnitPriceAtOrder, 0.001)

	var order models.SalesOrder
	db.Preload("OrderItems").First(&order, resp.OrderID)
	assert.Equal(t, models.OrderOpen, order.Status)
	assert.InDelta(t, 19.00, order.Total(), 0.001)

	// Raising the catalog price must not touch the captured line price.
	db.Model(&models.MenuItem{}).Where("id = ?", 1).Update("base_price", 12.00)

	var reread []models.OrderItem
	db.Where("order_id = ?", resp.OrderID).Find(&reread)
	assert.InDelta(t, 9.50, reread[0].UnitPriceAtOrder, 0.001)
}

func TestPlaceOrderEmptyRejected(t *testing.T) {
	utils.InitLogger()
	db := setupOrderDB(t, "order_empty")
	r := setupOrderRouter(db)

	w := placeOrderJSON(t, r, []map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// all-zero quantities count as empty too
	w = placeOrderJSON(t, r, []map[string]interface{}{
		{"item_id": 1, "quantity": 0},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.SalesOrder{}).Count(&count)
	assert.Equal(t, int64(0), count, "no order row may be created")
}

func TestPlaceOrderUnknownItemFailsWholeOrder(t *testing.T) {
	utils.InitLogger()
	db := setupOrderDB(t, "order_unknown")
	r := setupOrderRouter(db)

	w := placeOrderJSON(t, r, []map[string]interface{}{
		{"item_id": 1, "quantity": 1},
		{"item_id": 999, "quantity": 1},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var orders, lines int64
	db.Model(&models.SalesOrder{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&lines)
	assert.Equal(t, int64(0), orders, "header must roll back with the failed line")
	assert.Equal(t, int64(0), lines)
}

func TestPlaceOrderFormEncoded(t *testing.T) {
	utils.InitLogger()
	db := setupOrderDB(t, "order_form")
	r := setupOrderRouter(db)

	form := url.Values{}
	form.Add("items[]", "1")
	form.Add("items[]", "2")
	form.Add("quantities[]", "1")
	form.Add("quantities[]", "3")

	req := httptest.NewRequest(http.MethodPost, "/customer/orders", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var lines []models.OrderItem
	db.Find(&lines)
	assert.Len(t, lines, 2)

	var order models.SalesOrder
	db.Preload("OrderItems").First(&order)
	assert.InDelta(t, 9.50+3*2.25, order.Total(), 0.001)
}

func TestGetOrderByIDOwnership(t *testing.T) {
	utils.InitLogger()
	db := setupOrderDB(t, "order_owner")
	db.Create(&models.Customer{
		FirstName:    "Rani",
		LastName:     "Salim",
		Email:        "rani@example.com",
		PasswordHash: "x",
	})

	r := setupOrderRouter(db)

	w := placeOrderJSON(t, r, []map[string]interface{}{
		{"item_id": 1, "quantity": 1},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// owner can read it
	req := httptest.NewRequest(http.MethodGet, "/customer/orders/1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// another customer cannot
	gin.SetMode(gin.TestMode)
	other := gin.New()
	ctrl := controllers.NewOrderController(db)
	other.GET("/customer/orders/:order_id", authAs(2, "customer"), ctrl.GetOrderByID)

	req = httptest.NewRequest(http.MethodGet, "/customer/orders/1", nil)
	rec = httptest.NewRecorder()
	other.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
