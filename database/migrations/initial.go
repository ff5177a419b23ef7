package migrations

import (
	"gorm.io/gorm"

	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/pkg/migration"
)

func init() {
	migration.Register("20250901000000_create_products_table", &CreateProductsTable{})
	migration.Register("20250901000001_create_orders_tables", &CreateOrdersTables{})
}

// -------- 0001: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0002: orders + order_items --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable("order_items"); err != nil {
		return err
	}
	return db.Migrator().DropTable("orders")
}
