package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/services"
	"github.com/smartcanteen/canteen-app/utils"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
	Orders    *services.OrderService
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{
		Analytics: services.NewAnalyticsService(db),
		Orders:    services.NewOrderService(db),
	}
}

// GetAnalytics -> the admin dashboard numbers in one response.
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	totalOrders, err := ac.Analytics.TotalOrderCount()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	revenue, err := ac.Analytics.TotalRevenue()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	paymentStats, err := ac.Analytics.PaymentMethodBreakdown()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	topSelling, err := ac.Analytics.TopSellingGroups(limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	statusCounts, err := ac.Analytics.StatusCounts()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Analytics", gin.H{
		"total_orders":    totalOrders,
		"total_revenue":   revenue,
		"revenue_display": utils.FormatRupees(revenue),
		"payment_methods": paymentStats,
		"top_selling":     topSelling,
		"status_counts":   statusCounts,
	})
}

// ExportOrdersCSV -> flat dump of every order, one row per order,
// columns matching the orders table.
func (ac *AnalyticsController) ExportOrdersCSV(c *gin.Context) {
	orders, err := ac.Orders.AllOrders()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("orders_export_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	header := []string{"order_id", "username", "items", "total_amount",
		"payment_method", "payment_id", "status", "timestamp"}
	if err := w.Write(header); err != nil {
		utils.ErrorLogger.Printf("CSV export: %v", err)
		return
	}

	for _, o := range orders {
		paymentID := ""
		if o.PaymentID != nil {
			paymentID = *o.PaymentID
		}
		row := []string{
			o.OrderID,
			o.Username,
			o.Items,
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			o.PaymentMethod,
			paymentID,
			o.Status,
			o.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			utils.ErrorLogger.Printf("CSV export: %v", err)
			return
		}
	}
}
