package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/models"
)

// CartService manages per-user carts. The cart lives in the database
// keyed by username, created on demand and cleared at checkout or
// logout.
type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// Add puts quantity of an item into the user's cart, snapshotting name
// and price as currently listed. Adding the same item again merges into
// the existing line.
func (s *CartService) Add(username string, itemID uint, quantity int) (*models.CartItem, error) {
	var item models.FoodItem
	if err := s.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	var line models.CartItem
	err := s.DB.Where("username = ? AND food_item_id = ?", username, itemID).First(&line).Error
	switch {
	case err == nil:
		line.Quantity += quantity
		if err := s.DB.Save(&line).Error; err != nil {
			return nil, err
		}
		return &line, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartItem{
			Username:   username,
			FoodItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   quantity,
		}
		if err := s.DB.Create(&line).Error; err != nil {
			return nil, err
		}
		return &line, nil
	default:
		return nil, err
	}
}

// Remove drops one line from the user's cart.
func (s *CartService) Remove(username string, cartItemID uint) error {
	res := s.DB.Where("id = ? AND username = ?", cartItemID, username).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Get returns the user's cart lines and the running total.
func (s *CartService) Get(username string) ([]models.CartItem, float64, error) {
	var items []models.CartItem
	if err := s.DB.Where("username = ?", username).Order("id").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return items, total, nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(username string) error {
	return s.DB.Where("username = ?", username).Delete(&models.CartItem{}).Error
}
