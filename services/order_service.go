package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/models"
	"github.com/smartcanteen/canteen-app/utils"
)

// statusTransitions is the allowed order status flow. Anything not
// listed here is rejected with ErrInvalidStatusChange.
var statusTransitions = map[string]string{
	models.StatusPlaced:    models.StatusPreparing,
	models.StatusPreparing: models.StatusPrepared,
}

// OrderService owns the order lifecycle: checkout, stock adjustment and
// status changes.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// NewOrderID builds a timestamp-derived order id. If the id is already
// taken (two checkouts within the same clock second) a short random
// suffix disambiguates.
func (s *OrderService) NewOrderID(tx *gorm.DB) (string, error) {
	base := "ORD" + time.Now().Format("20060102150405")

	var count int64
	if err := tx.Model(&models.Order{}).Where("order_id = ?", base).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return base, nil
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

// Checkout turns the user's cart into an order. The order insert, the
// per-line stock adjustment and the cart clear all run in one
// transaction and roll back together.
func (s *OrderService) Checkout(username, paymentMethod string, paymentID *string) (*models.Order, error) {
	var order *models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var cart []models.CartItem
		if err := tx.Where("username = ?", username).Order("id").Find(&cart).Error; err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		lines := make([]models.OrderLine, 0, len(cart))
		var total float64
		for _, item := range cart {
			lines = append(lines, models.OrderLine{
				ItemID:   item.FoodItemID,
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			})
			total += item.Price * float64(item.Quantity)
		}

		created, err := s.CreateOrder(tx, username, lines, total, paymentMethod, paymentID)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if err := s.AdjustStock(tx, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Where("username = ?", username).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s placed by %s (%s, total %.2f)",
		order.OrderID, username, paymentMethod, order.TotalAmount)
	return order, nil
}

// CreateOrder persists a new order with status placed, snapshotting the
// given lines verbatim. Stock is not touched here.
func (s *OrderService) CreateOrder(tx *gorm.DB, username string, lines []models.OrderLine,
	total float64, paymentMethod string, paymentID *string) (*models.Order, error) {

	orderID, err := s.NewOrderID(tx)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		OrderID:       orderID,
		Username:      username,
		TotalAmount:   total,
		PaymentMethod: paymentMethod,
		PaymentID:     paymentID,
		Status:        models.StatusPlaced,
	}
	if err := order.SetLines(lines); err != nil {
		return nil, err
	}

	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// AdjustStock decrements a regular item's stock by quantity. Daily
// items are skipped: their stock counts portions entered that morning,
// not remaining servings. Stock is not floored at zero.
func (s *OrderService) AdjustStock(tx *gorm.DB, itemID uint, quantity int) error {
	var item models.FoodItem
	if err := tx.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	if item.ValidityType == models.ValidityDaily {
		return nil
	}

	return tx.Model(&models.FoodItem{}).
		Where("id = ?", itemID).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity)).Error
}

// SetOrderStatus moves an order along the placed -> preparing ->
// prepared flow. Any other change is refused.
func (s *OrderService) SetOrderStatus(orderID, newStatus string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	prev := order.Status
	if statusTransitions[prev] != newStatus {
		return nil, ErrInvalidStatusChange
	}

	if err := s.DB.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s: %s -> %s", order.OrderID, prev, newStatus)
	order.Status = newStatus
	return &order, nil
}

// OrderByID fetches one order by its public id.
func (s *OrderService) OrderByID(orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// OrdersForUser returns a user's orders, newest first.
func (s *OrderService) OrdersForUser(username string) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Where("username = ?", username).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// ActiveOrders returns every order that is not yet prepared. The staff
// board filters on this bipartition, not the three individual states.
func (s *OrderService) ActiveOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Where("status <> ?", models.StatusPrepared).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// CompletedOrders returns every prepared order.
func (s *OrderService) CompletedOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Where("status = ?", models.StatusPrepared).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// AllOrders returns every order ever created, newest first.
func (s *OrderService) AllOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Order("created_at DESC").Find(&orders).Error
	return orders, err
}
