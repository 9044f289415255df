package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/events"
	"github.com/smartcanteen/canteen-app/models"
	"github.com/smartcanteen/canteen-app/services"
	"github.com/smartcanteen/canteen-app/utils"
)

type OrderController struct {
	Orders   *services.OrderService
	Carts    *services.CartService
	Payments services.PaymentProcessor
}

func NewOrderController(db *gorm.DB, payments services.PaymentProcessor) *OrderController {
	return &OrderController{
		Orders:   services.NewOrderService(db),
		Carts:    services.NewCartService(db),
		Payments: payments,
	}
}

// Checkout -> turn the cart into an order. Gateway payments are charged
// first; a declined charge leaves no order behind.
func (oc *OrderController) Checkout(c *gin.Context) {
	var req struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.PaymentMethod != models.PaymentCOD && req.PaymentMethod != models.PaymentGateway {
		utils.RespondError(c, http.StatusBadRequest, errors.New("payment_method must be 'cod' or 'gateway'"))
		return
	}

	username := c.GetString("username")

	var paymentID *string
	if req.PaymentMethod == models.PaymentGateway {
		_, total, err := oc.Carts.Get(username)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if total == 0 {
			utils.RespondError(c, http.StatusBadRequest, services.ErrEmptyCart)
			return
		}

		result, err := oc.Payments.ProcessPayment(total)
		if err != nil {
			utils.RespondError(c, http.StatusBadGateway, err)
			return
		}
		if result.Status != services.ChargeSuccess {
			utils.RespondError(c, http.StatusPaymentRequired, services.ErrPaymentDeclined)
			return
		}
		paymentID = &result.PaymentID
	}

	order, err := oc.Orders.Checkout(username, req.PaymentMethod, paymentID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastOrderPlaced(*order)
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetMyOrders -> caller's order history, optionally filtered with
// ?status=active or ?status=completed.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	username := c.GetString("username")

	orders, err := oc.Orders.OrdersForUser(username)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	switch c.Query("status") {
	case "active":
		orders = filterOrders(orders, func(o models.Order) bool {
			return o.Status != models.StatusPrepared
		})
	case "completed":
		orders = filterOrders(orders, func(o models.Order) bool {
			return o.Status == models.StatusPrepared
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Orders", orders)
}

// GetOrderByID -> one order; only its owner or staff may look.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	order, err := oc.Orders.OrderByID(c.Param("order_id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	role := c.GetString("role")
	if order.Username != c.GetString("username") &&
		role != models.RoleStaff && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("not your order"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetStaffBoard -> the kitchen view: everything still in flight plus
// what was already handed out.
func (oc *OrderController) GetStaffBoard(c *gin.Context) {
	active, err := oc.Orders.ActiveOrders()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	completed, err := oc.Orders.CompletedOrders()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order board", gin.H{
		"active":    active,
		"completed": completed,
	})
}

// UpdateOrderStatus -> staff moves an order along the preparation flow.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.SetOrderStatus(c.Param("order_id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrInvalidStatusChange):
			utils.RespondError(c, http.StatusConflict, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	events.BroadcastOrderStatus(*order)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func filterOrders(orders []models.Order, keep func(models.Order) bool) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
