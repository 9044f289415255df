package models

import "time"

// Validity types for a food item. Daily items are entered fresh each
// morning and never stock-decremented by orders; regular items track a
// running stock count.
const (
	ValidityDaily   = "daily"
	ValidityRegular = "regular"
)

type FoodItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category     string    `gorm:"type:varchar(100);not null" json:"category"`
	Stock        int       `gorm:"not null" json:"stock"`
	ValidityType string    `gorm:"type:varchar(20);not null" json:"validity_type"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
