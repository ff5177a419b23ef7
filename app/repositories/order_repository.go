package repositories

import (
	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/pkg/orm"
)

// OrderRepository handles database operations for Order and its items.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists the order and every line item in one transaction. If any
// item insert fails, the order row is rolled back with it.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Transaction(func(tx *orm.Query) error {
		return tx.Create(order)
	})
}

// List returns all orders with their items, newest first.
func (r *OrderRepository) List() ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Order("created_at desc, id desc").
		Get(&orders)
	return orders, err
}

// Find looks up one order with its items.
func (r *OrderRepository) Find(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// UpdateStatus moves an order to a new status and refreshes it in place.
func (r *OrderRepository) UpdateStatus(order *models.Order, status string) error {
	return orm.DB().Model(order).Updates(map[string]interface{}{"status": status})
}
