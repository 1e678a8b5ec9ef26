package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/middlewares"
	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/router"
	"github.com/putrawdn/restaurant-mgt/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main flow:
// 1. Customer registers and logs in
// 2. Customer books a table and places an order
// 3. Staff logs in and captures the payment, closing the order
// 4. Admin reads the dashboard stats
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB(t, "integration")
	gin.SetMode(gin.TestMode)
	r := router.SetupRouter(db, middlewares.NewRateLimiter(1000, 1))

	// 1. Register + login
	registerCustomer(t, r)
	customerToken := login(t, r, "dana@example.com", "secret12345", "customer")

	// 2. Book a table and place an order
	bookTable(t, r, customerToken)
	orderID := placeOrder(t, r, customerToken)

	// 3. Staff captures payment
	staffToken := login(t, r, "sari@example.com", "secret12345", "staff")
	processPayment(t, r, staffToken, orderID, 19.00)
	assertOrderClosed(t, r, staffToken, orderID)

	// 4. Admin dashboard
	adminToken := login(t, r, "manager@example.com", "secret12345", "staff")
	req := authedRequest(http.MethodGet, "/admin/dashboard", nil, adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin dashboard: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	// staff token must not open admin routes
	req = authedRequest(http.MethodGet, "/admin/dashboard", nil, staffToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff on admin route: expected 403, got %d", w.Code)
	}
}

// TestPerIPRateLimiterOnRouter checks the limiter handed to SetupRouter is in
// the chain of every registered route: a single-IP burst beyond the window
// must start drawing 429s.
func TestPerIPRateLimiterOnRouter(t *testing.T) {
	db := setupIntegrationDB(t, "ratelimit")
	gin.SetMode(gin.TestMode)
	r := router.SetupRouter(db, middlewares.NewRateLimiter(30, 1))

	limited := 0
	for i := 0; i < 60; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	if limited == 0 {
		t.Fatal("burst from one IP was never rate limited")
	}
	if limited > 35 {
		t.Fatalf("limiter too aggressive: %d of 60 limited", limited)
	}
}

func setupIntegrationDB(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Staff{},
		&models.DiningTable{},
		&models.MenuItem{},
		&models.Reservation{},
		&models.SalesOrder{},
		&models.OrderItem{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret12345"), bcrypt.DefaultCost)
	db.Create(&models.Staff{
		FirstName:    "Sari",
		LastName:     "Wijaya",
		ContactInfo:  "sari@example.com",
		Role:         "Server",
		PasswordHash: string(hashed),
	})
	db.Create(&models.Staff{
		FirstName:    "Budi",
		LastName:     "Santoso",
		ContactInfo:  "manager@example.com",
		Role:         "Manager",
		PasswordHash: string(hashed),
	})
	db.Create(&models.DiningTable{TableNumber: 1, Capacity: 4, Location: "Window"})
	db.Create(&models.MenuItem{Name: "Grilled Salmon", Category: "Mains", BasePrice: 9.50, IsAvailable: true})

	return db
}

func authedRequest(method, path string, body []byte, token string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func registerCustomer(t *testing.T, r *gin.Engine) {
	body, _ := json.Marshal(map[string]string{
		"first_name": "Dana",
		"last_name":  "Putra",
		"email":      "dana@example.com",
		"phone":      "555-0101",
		"password":   "secret12345",
	})
	req := authedRequest(http.MethodPost, "/register", body, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
}

func login(t *testing.T, r *gin.Engine, email, password, userType string) string {
	body, _ := json.Marshal(map[string]string{
		"email":     email,
		"password":  password,
		"user_type": userType,
	})
	req := authedRequest(http.MethodPost, "/login", body, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", email, w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatalf("login %s: empty token", email)
	}
	return resp.Data.Token
}

func bookTable(t *testing.T, r *gin.Engine, token string) {
	start := time.Now().AddDate(0, 0, 3).Truncate(time.Hour)
	body, _ := json.Marshal(map[string]interface{}{
		"table_id":   1,
		"date":       start.Format("2006-01-02"),
		"time":       start.Format("15:04"),
		"party_size": 2,
		"notes":      "window please",
	})
	req := authedRequest(http.MethodPost, "/customer/make_reservation", body, token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("make_reservation: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
}

func placeOrder(t *testing.T, r *gin.Engine, token string) uint {
	body, _ := json.Marshal(map[string]interface{}{
		"order_items": []map[string]interface{}{
			{"item_id": 1, "quantity": 2},
		},
	})
	req := authedRequest(http.MethodPost, "/customer/orders", body, token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("place order: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Status  string `json:"status"`
		OrderID uint   `json:"order_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("order response: %v", err)
	}
	if resp.Status != "success" || resp.OrderID == 0 {
		t.Fatalf("order response: %+v", resp)
	}
	return resp.OrderID
}

func processPayment(t *testing.T, r *gin.Engine, token string, orderID uint, amount float64) {
	body, _ := json.Marshal(map[string]interface{}{
		"amount":         amount,
		"payment_method": "cash",
	})
	req := authedRequest(http.MethodPost,
		fmt.Sprintf("/staff/process-payment/%d", orderID), body, token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("process payment: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
}

func assertOrderClosed(t *testing.T, r *gin.Engine, token string, orderID uint) {
	req := authedRequest(http.MethodGet,
		fmt.Sprintf("/staff/orders/%d", orderID), nil, token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("staff order detail: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Order struct {
				Status string `json:"status"`
			} `json:"order"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("order detail response: %v", err)
	}
	if resp.Data.Order.Status != models.OrderClosed {
		t.Fatalf("order status: expected %s, got %s", models.OrderClosed, resp.Data.Order.Status)
	}
}
