package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/bistro-orders/models"
	"github.com/yeremiapane/bistro-orders/store"
	"github.com/yeremiapane/bistro-orders/utils"
)

type AdminController struct {
	Store *store.Store
}

func NewAdminController(s *store.Store) *AdminController {
	return &AdminController{Store: s}
}

// GetDashboardStats -> GET /api/admin/stats (admin)
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	db := ac.Store.DB

	var stats struct {
		TotalOrders  int64   `json:"total_orders"`
		TodayOrders  int64   `json:"today_orders"`
		TotalRevenue float64 `json:"total_revenue"`
		TodayRevenue float64 `json:"today_revenue"`
		MenuItems    int64   `json:"menu_items"`
		OrderStats   struct {
			New       int64 `json:"new"`
			Preparing int64 `json:"preparing"`
			Ready     int64 `json:"ready"`
			Completed int64 `json:"completed"`
		} `json:"order_stats"`
	}

	// Start of the business day in server-local time, not UTC.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := db.Model(&models.Order{}).Where("created_at >= ?", today).
		Count(&stats.TodayOrders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := db.Model(&models.Order{}).Select("COALESCE(SUM(total), 0)").
		Row().Scan(&stats.TotalRevenue); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := db.Model(&models.Order{}).Where("created_at >= ?", today).
		Select("COALESCE(SUM(total), 0)").Row().Scan(&stats.TodayRevenue); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := db.Model(&models.MenuItem{}).Count(&stats.MenuItems).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	statusCounts := []struct {
		status string
		dest   *int64
	}{
		{models.StatusNew, &stats.OrderStats.New},
		{models.StatusPreparing, &stats.OrderStats.Preparing},
		{models.StatusReady, &stats.OrderStats.Ready},
		{models.StatusCompleted, &stats.OrderStats.Completed},
	}
	for _, sc := range statusCounts {
		if err := db.Model(&models.Order{}).Where("status = ?", sc.status).
			Count(sc.dest).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard statistics", stats)
}
