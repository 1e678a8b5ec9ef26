package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/models"
	"github.com/putrawdn/restaurant-mgt/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

type topItem struct {
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

// GetDashboardStats returns today's headline numbers plus the best sellers.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TodayReservations int64     `json:"today_reservations"`
		TodayOrders       int64     `json:"today_orders"`
		TodayRevenue      float64   `json:"today_revenue"`
		TopItems          []topItem `json:"top_items"`
	}

	ac.DB.Model(&models.Reservation{}).
		Where("DATE(start_date_time) = ?", today).
		Count(&stats.TodayReservations)

	ac.DB.Model(&models.SalesOrder{}).
		Where("DATE(order_date_time) = ?", today).
		Count(&stats.TodayOrders)

	ac.DB.Model(&models.Payment{}).
		Where("DATE(payment_date_time) = ? AND status = ?", today, models.PaymentCaptured).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&stats.TodayRevenue)

	if err := ac.DB.Raw(`
		SELECT m.name AS name, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN menu_items m ON oi.item_id = m.id
		GROUP BY m.id, m.name
		ORDER BY total_sold DESC
		LIMIT 5
	`).Scan(&stats.TopItems).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetStaffRoster lists the staff ordered by name.
func (ac *AdminController) GetStaffRoster(c *gin.Context) {
	var staff []models.Staff
	if err := ac.DB.Order("last_name, first_name").Find(&staff).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Staff roster", staff)
}

type dailyRevenueRow struct {
	Date    string  `json:"date"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type staffPerformanceRow struct {
	StaffID       uint    `json:"staff_id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	OrdersHandled int64   `json:"orders_handled"`
	TotalSales    float64 `json:"total_sales"`
}

func (ac *AdminController) dailyRevenue() ([]dailyRevenueRow, error) {
	var rows []dailyRevenueRow
	err := ac.DB.Raw(`
		SELECT DATE(p.payment_date_time) AS date,
		       COUNT(DISTINCT p.order_id) AS orders,
		       SUM(p.amount) AS revenue
		FROM payments p
		WHERE p.status = ?
		GROUP BY DATE(p.payment_date_time)
		ORDER BY date DESC
		LIMIT 30
	`, models.PaymentCaptured).Scan(&rows).Error
	return rows, err
}

// GetReports returns the daily revenue for the last 30 days with payments and
// the per-staff sales totals.
func (ac *AdminController) GetReports(c *gin.Context) {
	daily, err := ac.dailyRevenue()
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	var performance []staffPerformanceRow
	if err := ac.DB.Raw(`
		SELECT s.id AS staff_id, s.first_name, s.last_name,
		       COUNT(DISTINCT o.id) AS orders_handled,
		       COALESCE(SUM(oi.quantity * oi.unit_price_at_order), 0) AS total_sales
		FROM staff s
		LEFT JOIN sales_orders o ON o.staff_id = s.id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY s.id, s.first_name, s.last_name
		ORDER BY total_sales DESC
	`).Scan(&performance).Error; err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reports", gin.H{
		"daily_revenue":     daily,
		"staff_performance": performance,
	})
}

// ExportPDF renders the daily revenue report as a PDF download.
func (ac *AdminController) ExportPDF(c *gin.Context) {
	daily, err := ac.dailyRevenue()
	if err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Daily Revenue Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Orders", "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Revenue", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	var totalRevenue float64
	for _, row := range daily {
		pdf.CellFormat(60, 8, row.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", row.Orders), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 8, utils.FormatAmount(row.Revenue), "1", 1, "R", false, 0, "")
		totalRevenue += row.Revenue
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(100, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, utils.FormatAmount(totalRevenue), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondInternalError(c, err)
		return
	}

	filename := fmt.Sprintf("daily-revenue-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
