package Controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/controllers"
	"github.com/smartcanteen/canteen-app/models"
	"github.com/smartcanteen/canteen-app/services"
)

func setupOrderRouter(db *gorm.DB, payments services.PaymentProcessor) *gin.Engine {
	r := gin.Default()
	oc := controllers.NewOrderController(db, payments)
	cc := controllers.NewCartController(db)

	student := r.Group("/", asUser("student1", "student"))
	student.GET("/cart", cc.GetCart)
	student.POST("/cart", cc.AddCartItem)
	student.DELETE("/cart/:cart_item_id", cc.RemoveCartItem)
	student.POST("/orders/checkout", oc.Checkout)
	student.GET("/orders", oc.GetMyOrders)
	student.GET("/orders/:order_id", oc.GetOrderByID)

	staff := r.Group("/staff", asUser("staff", "staff"))
	staff.GET("/orders", oc.GetStaffBoard)
	staff.PATCH("/orders/:order_id/status", oc.UpdateOrderStatus)
	return r
}

func TestCartFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db, &stubProcessor{})

	samosa := seedFoodItem(t, db, "Samosa", 10, 5, models.ValidityRegular)

	w := doJSON(t, r, "POST", "/cart", map[string]interface{}{
		"item_id": samosa.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Same item again merges into the line
	w = doJSON(t, r, "POST", "/cart", map[string]interface{}{
		"item_id": samosa.ID, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "GET", "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.InDelta(t, 30.0, data["total"].(float64), 0.001)
	items := data["items"].([]interface{})
	require.Len(t, items, 1)

	w = doJSON(t, r, "POST", "/cart", map[string]interface{}{
		"item_id": 999, "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "DELETE", "/cart/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, "GET", "/cart", nil)
	data = decodeData(t, w)
	assert.Zero(t, data["total"].(float64))
}

func TestCheckoutCOD(t *testing.T) {
	db := setupTestDB(t)
	gateway := &stubProcessor{}
	r := setupOrderRouter(db, gateway)

	samosa := seedFoodItem(t, db, "Samosa", 10, 5, models.ValidityRegular)
	doJSON(t, r, "POST", "/cart", map[string]interface{}{"item_id": samosa.ID, "quantity": 2})

	w := doJSON(t, r, "POST", "/orders/checkout", map[string]string{"payment_method": "cod"})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	orderID := data["order_id"].(string)
	assert.Equal(t, "placed", data["status"])
	assert.InDelta(t, 20.0, data["total_amount"].(float64), 0.001)

	// COD never touches the gateway
	assert.Zero(t, gateway.calls)

	var got models.FoodItem
	require.NoError(t, db.First(&got, samosa.ID).Error)
	assert.Equal(t, 3, got.Stock)

	w = doJSON(t, r, "GET", "/orders/"+orderID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckoutGatewayDeclineLeavesNoOrder(t *testing.T) {
	db := setupTestDB(t)
	gateway := &stubProcessor{result: &services.ChargeResult{Status: services.ChargeFailure}}
	r := setupOrderRouter(db, gateway)

	samosa := seedFoodItem(t, db, "Samosa", 10, 5, models.ValidityRegular)
	doJSON(t, r, "POST", "/cart", map[string]interface{}{"item_id": samosa.ID, "quantity": 1})

	w := doJSON(t, r, "POST", "/orders/checkout", map[string]string{"payment_method": "gateway"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, 1, gateway.calls)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)

	// Stock and cart are untouched after a decline
	var got models.FoodItem
	require.NoError(t, db.First(&got, samosa.ID).Error)
	assert.Equal(t, 5, got.Stock)
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCheckoutGatewaySuccessRecordsPaymentID(t *testing.T) {
	db := setupTestDB(t)
	gateway := &stubProcessor{result: &services.ChargeResult{
		Status: services.ChargeSuccess, PaymentID: "pay_456",
	}}
	r := setupOrderRouter(db, gateway)

	samosa := seedFoodItem(t, db, "Samosa", 10, 5, models.ValidityRegular)
	doJSON(t, r, "POST", "/cart", map[string]interface{}{"item_id": samosa.ID, "quantity": 1})

	w := doJSON(t, r, "POST", "/orders/checkout", map[string]string{"payment_method": "gateway"})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "pay_456", data["payment_id"])
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db, &stubProcessor{})

	w := doJSON(t, r, "POST", "/orders/checkout", map[string]string{"payment_method": "cod"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStaffBoardAndStatusFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db, &stubProcessor{})

	samosa := seedFoodItem(t, db, "Samosa", 10, 5, models.ValidityRegular)
	doJSON(t, r, "POST", "/cart", map[string]interface{}{"item_id": samosa.ID, "quantity": 1})
	w := doJSON(t, r, "POST", "/orders/checkout", map[string]string{"payment_method": "cod"})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeData(t, w)["order_id"].(string)

	w = doJSON(t, r, "GET", "/staff/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	board := decodeData(t, w)
	assert.Len(t, board["active"], 1)
	assert.Len(t, board["completed"], 0)

	// Jumping straight to prepared is refused
	w = doJSON(t, r, "PATCH", "/staff/orders/"+orderID+"/status",
		map[string]string{"status": "prepared"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, "PATCH", "/staff/orders/"+orderID+"/status",
		map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "PATCH", "/staff/orders/"+orderID+"/status",
		map[string]string{"status": "prepared"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/staff/orders", nil)
	board = decodeData(t, w)
	assert.Len(t, board["active"], 0)
	assert.Len(t, board["completed"], 1)

	w = doJSON(t, r, "PATCH", "/staff/orders/ORDnope/status",
		map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyOrdersStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	r := setupOrderRouter(db, &stubProcessor{})

	samosa := seedFoodItem(t, db, "Samosa", 10, 50, models.ValidityRegular)

	doJSON(t, r, "POST", "/cart", map[string]interface{}{"item_id": samosa.ID, "quantity": 1})
	w := doJSON(t, r, "POST", "/orders/checkout", map[string]string{"payment_method": "cod"})
	first := decodeData(t, w)["order_id"].(string)

	doJSON(t, r, "POST", "/cart", map[string]interface{}{"item_id": samosa.ID, "quantity": 1})
	doJSON(t, r, "POST", "/orders/checkout", map[string]string{"payment_method": "cod"})

	doJSON(t, r, "PATCH", "/staff/orders/"+first+"/status", map[string]string{"status": "preparing"})
	doJSON(t, r, "PATCH", "/staff/orders/"+first+"/status", map[string]string{"status": "prepared"})

	var resp struct {
		Data []models.Order `json:"data"`
	}

	w = doJSON(t, r, "GET", "/orders?status=active", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.NotEqual(t, first, resp.Data[0].OrderID)

	w = doJSON(t, r, "GET", "/orders?status=completed", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, first, resp.Data[0].OrderID)

	w = doJSON(t, r, "GET", "/orders", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}
