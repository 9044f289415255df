package services

import (
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/models"
)

// PaymentMethodStat is one row of the payment method breakdown.
type PaymentMethodStat struct {
	PaymentMethod string `json:"payment_method"`
	Count         int64  `json:"count"`
}

// CartGroupStat is one row of the top-selling report. Orders are
// grouped by their entire serialized item snapshot, so two orders count
// together only when the whole cart matched. This mirrors how sales
// have always been reported here; it is not per-item aggregation.
type CartGroupStat struct {
	Items string `json:"items"`
	Count int64  `json:"count"`
}

// StatusStat is one row of the order status counts for the staff board.
type StatusStat struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AnalyticsService runs read-only aggregate queries over orders.
type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// TotalOrderCount counts every order ever created.
func (s *AnalyticsService) TotalOrderCount() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Order{}).Count(&count).Error
	return count, err
}

// TotalRevenue sums the amount of every order.
func (s *AnalyticsService) TotalRevenue() (float64, error) {
	var revenue float64
	err := s.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&revenue)
	return revenue, err
}

// PaymentMethodBreakdown counts orders per payment method.
func (s *AnalyticsService) PaymentMethodBreakdown() ([]PaymentMethodStat, error) {
	var stats []PaymentMethodStat
	err := s.DB.Model(&models.Order{}).
		Select("payment_method, COUNT(*) as count").
		Group("payment_method").
		Scan(&stats).Error
	return stats, err
}

// TopSellingGroups ranks cart snapshots by how many orders carried
// exactly that snapshot, descending, at most limit rows.
func (s *AnalyticsService) TopSellingGroups(limit int) ([]CartGroupStat, error) {
	if limit <= 0 {
		limit = 5
	}
	var stats []CartGroupStat
	err := s.DB.Model(&models.Order{}).
		Select("items, COUNT(*) as count").
		Group("items").
		Order("count DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}

// StatusCounts counts orders per status.
func (s *AnalyticsService) StatusCounts() ([]StatusStat, error) {
	var stats []StatusStat
	err := s.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&stats).Error
	return stats, err
}
