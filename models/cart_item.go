package models

import "time"

// CartItem is one line of a user's cart. Name and price are copied from
// the food item when it is added so the eventual order snapshot matches
// what the user saw.
type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"type:varchar(255);not null;index" json:"username"`
	FoodItemID uint      `gorm:"not null" json:"food_item_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
