package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/models"
)

func seedOrder(t *testing.T, db *gorm.DB, svc *OrderService, lines []models.OrderLine, method string) *models.Order {
	t.Helper()
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Quantity)
	}
	order, err := svc.CreateOrder(db, "student1", lines, total, method, nil)
	require.NoError(t, err)
	return order
}

func TestAnalyticsAggregates(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	svc := NewAnalyticsService(db)

	cartA := []models.OrderLine{{ItemID: 1, Name: "Samosa", Price: 10, Quantity: 2}}
	cartB := []models.OrderLine{{ItemID: 2, Name: "Tea", Price: 5, Quantity: 1}}

	// Cart A ordered three times, cart B once
	seedOrder(t, db, orders, cartA, models.PaymentCOD)
	seedOrder(t, db, orders, cartA, models.PaymentCOD)
	seedOrder(t, db, orders, cartA, models.PaymentGateway)
	seedOrder(t, db, orders, cartB, models.PaymentCOD)

	count, err := svc.TotalOrderCount()
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	revenue, err := svc.TotalRevenue()
	require.NoError(t, err)
	assert.InDelta(t, 65.0, revenue, 0.001)

	breakdown, err := svc.PaymentMethodBreakdown()
	require.NoError(t, err)
	byMethod := make(map[string]int64)
	for _, row := range breakdown {
		byMethod[row.PaymentMethod] = row.Count
	}
	assert.EqualValues(t, 3, byMethod[models.PaymentCOD])
	assert.EqualValues(t, 1, byMethod[models.PaymentGateway])
}

func TestTopSellingGroupsByWholeCart(t *testing.T) {
	db := setupServiceDB(t)
	orders := NewOrderService(db)
	svc := NewAnalyticsService(db)

	cartA := []models.OrderLine{{ItemID: 1, Name: "Samosa", Price: 10, Quantity: 2}}
	cartB := []models.OrderLine{{ItemID: 2, Name: "Tea", Price: 5, Quantity: 1}}

	seedOrder(t, db, orders, cartA, models.PaymentCOD)
	seedOrder(t, db, orders, cartA, models.PaymentCOD)
	seedOrder(t, db, orders, cartA, models.PaymentCOD)
	seedOrder(t, db, orders, cartB, models.PaymentCOD)

	top, err := svc.TopSellingGroups(5)
	require.NoError(t, err)
	require.Len(t, top, 2)

	// Identical whole carts group together and rank first
	assert.EqualValues(t, 3, top[0].Count)
	assert.Contains(t, top[0].Items, "Samosa")
	assert.EqualValues(t, 1, top[1].Count)

	// Limit caps the rows
	top, err = svc.TopSellingGroups(1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.EqualValues(t, 3, top[0].Count)
}
