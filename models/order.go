package models

import (
	"encoding/json"
	"time"
)

// Order statuses.
const (
	StatusPlaced    = "placed"
	StatusPreparing = "preparing"
	StatusPrepared  = "prepared"
)

// Payment methods.
const (
	PaymentCOD     = "cod"
	PaymentGateway = "gateway"
)

// OrderLine is one line of the item snapshot embedded in an order.
// Name and price are captured at order time and stay frozen even if the
// food item is later edited or deleted.
type OrderLine struct {
	ItemID   uint    `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_id"`
	Username      string    `gorm:"type:varchar(255);not null;index" json:"username"`
	Items         string    `gorm:"type:text;not null" json:"items"`
	TotalAmount   float64   `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod string    `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentID     *string   `gorm:"type:varchar(255)" json:"payment_id,omitempty"`
	Status        string    `gorm:"type:varchar(20);not null;default:'placed'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SetLines serializes the snapshot into the Items column.
func (o *Order) SetLines(lines []OrderLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	o.Items = string(data)
	return nil
}

// GetLines deserializes the snapshot out of the Items column.
func (o *Order) GetLines() ([]OrderLine, error) {
	var lines []OrderLine
	if o.Items == "" {
		return lines, nil
	}
	if err := json.Unmarshal([]byte(o.Items), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
