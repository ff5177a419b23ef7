package models

import "time"

// Order statuses. New orders start "en cours"; the dashboard moves them on.
// The column is an open string so the dashboard can introduce new states
// without a migration.
const (
	OrderStatusPending   = "en cours"
	OrderStatusDelivered = "livrée"
	OrderStatusCancelled = "annulée"
)

// Order is a customer purchase with its line items.
type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement"          json:"id"`
	CustomerName    string      `gorm:"size:255;not null"                 json:"customer_name"`
	CustomerEmail   string      `gorm:"size:255;not null"                 json:"customer_email"`
	CustomerPhone   string      `gorm:"size:50;not null"                  json:"customer_phone"`
	CustomerAddress string      `gorm:"type:text;not null"                json:"customer_address"`
	PaymentMethod   string      `gorm:"size:50;not null"                  json:"payment_method"`
	TotalAmount     float64     `gorm:"not null"                          json:"total_amount"`
	Status          string      `gorm:"size:50;not null;default:'en cours'" json:"status"`
	CreatedAt       time.Time   `gorm:"autoCreateTime"                    json:"created_at"`
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE"       json:"items"`
}

// OrderItem is one line of an order. ProductName and Price are snapshots
// taken at order time so later catalogue edits never rewrite history.
// ProductID is a plain reference, not a foreign key: deleting a product
// must not touch past orders.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID     uint    `gorm:"not null;index"              json:"order_id"`
	ProductID   uint    `gorm:"not null"                    json:"product_id"`
	ProductName string  `gorm:"size:255;not null"           json:"product_name"`
	Quantity    int     `gorm:"not null"                    json:"quantity"`
	Price       float64 `gorm:"not null"                    json:"price"`
	Size        string  `gorm:"size:50"                     json:"size"`
	Color       string  `gorm:"size:50"                     json:"color"`
}
