package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/models"
	"github.com/smartcanteen/canteen-app/utils"
)

// CatalogService manages the food item catalog.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListAvailable returns what students can order right now: active items
// with stock, plus daily items regardless of stock (their stock may be
// entered later in the day).
func (s *CatalogService) ListAvailable() ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.DB.Where("active = ? AND (stock > 0 OR validity_type = ?)",
		true, models.ValidityDaily).
		Order("category, name").Find(&items).Error
	return items, err
}

// ListAll returns the whole catalog including inactive items, for the
// admin panel.
func (s *CatalogService) ListAll() ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.DB.Order("category, name").Find(&items).Error
	return items, err
}

// ItemByID fetches a single catalog entry.
func (s *CatalogService) ItemByID(id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// AddItem inserts a new active catalog entry.
func (s *CatalogService) AddItem(name string, price float64, category string,
	stock int, validityType string) (*models.FoodItem, error) {

	item := models.FoodItem{
		Name:         name,
		Price:        price,
		Category:     category,
		Stock:        stock,
		ValidityType: validityType,
		Active:       true,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Catalog item added: %s (%s)", item.Name, item.Category)
	return &item, nil
}

// UpdateItem overwrites all mutable fields of an item.
func (s *CatalogService) UpdateItem(id uint, name string, price float64,
	category string, stock int, validityType string) (*models.FoodItem, error) {

	item, err := s.ItemByID(id)
	if err != nil {
		return nil, err
	}

	item.Name = name
	item.Price = price
	item.Category = category
	item.Stock = stock
	item.ValidityType = validityType

	if err := s.DB.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// SoftDeleteItem retires an item without removing the row, so existing
// order snapshots keep pointing at something real.
func (s *CatalogService) SoftDeleteItem(id uint) error {
	item, err := s.ItemByID(id)
	if err != nil {
		return err
	}
	return s.DB.Model(item).Update("active", false).Error
}

// ResetDailyItems zeroes the stock of every daily item. Meant to be run
// each morning before the day's portions are entered.
func (s *CatalogService) ResetDailyItems() (int64, error) {
	res := s.DB.Model(&models.FoodItem{}).
		Where("validity_type = ?", models.ValidityDaily).
		Update("stock", 0)
	if res.Error != nil {
		return 0, res.Error
	}
	utils.InfoLogger.Printf("Daily items reset (%d rows)", res.RowsAffected)
	return res.RowsAffected, nil
}
