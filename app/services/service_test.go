package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/app/repositories"
	"github.com/soutoura/soutoura/pkg/database"
)

func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
}

func TestAuthLoginPlain(t *testing.T) {
	svc := NewAuthServiceWith("kane.soutoura.ks@gmail.com", PlainVerifier{secret: "Test"})

	assert.NoError(t, svc.Login(Credentials{Email: "kane.soutoura.ks@gmail.com", Password: "Test"}))

	err := svc.Login(Credentials{Email: "kane.soutoura.ks@gmail.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.Login(Credentials{Email: "intruder@example.com", Password: "Test"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthLoginBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Test"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthServiceWith("kane.soutoura.ks@gmail.com", BcryptVerifier{hash: string(hash)})

	assert.NoError(t, svc.Login(Credentials{Email: "kane.soutoura.ks@gmail.com", Password: "Test"}))
	assert.ErrorIs(t,
		svc.Login(Credentials{Email: "kane.soutoura.ks@gmail.com", Password: "test"}),
		ErrInvalidCredentials)
}

func TestProductCreateDefaults(t *testing.T) {
	setupDB(t)
	svc := NewProductService()

	product, err := svc.Create(CreateProductInput{Name: "Robe", Price: 15000, Category: "femme"})
	require.NoError(t, err)

	assert.NotZero(t, product.ID)
	assert.Equal(t, 0, product.Stock)
	// Lists come back as empty slices so the JSON shows [] rather than null.
	assert.NotNil(t, product.Images)
	assert.Empty(t, product.Images)
	assert.NotNil(t, product.Sizes)
	assert.NotNil(t, product.Colors)
}

func TestProductUpdatePartial(t *testing.T) {
	setupDB(t)
	svc := NewProductService()

	product, err := svc.Create(CreateProductInput{
		Name: "Robe Wax", Price: 15000, Category: "femme", Sizes: []string{"S", "M"},
	})
	require.NoError(t, err)

	newPrice := 18000.0
	updated, err := svc.Update(product.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 18000.0, updated.Price)
	assert.Equal(t, "Robe Wax", updated.Name)
	assert.Equal(t, []string{"S", "M"}, updated.Sizes)
}

func TestProductUpdateMissing(t *testing.T) {
	setupDB(t)

	name := "Fantôme"
	_, err := NewProductService().Update(404, UpdateProductInput{Name: &name})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductDeleteThenFind(t *testing.T) {
	setupDB(t)
	svc := NewProductService()

	product, err := svc.Create(CreateProductInput{Name: "Robe", Price: 1000})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(product.ID))
	_, err = svc.Find(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.Delete(product.ID), gorm.ErrRecordNotFound)
}

func TestOrderCreate(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()

	order, err := svc.Create(context.Background(), CreateOrderInput{
		CustomerName:    "Aissatou Ba",
		CustomerEmail:   "aissatou@example.com",
		CustomerPhone:   "+221771234567",
		CustomerAddress: "Dakar, Médina",
		PaymentMethod:   "wave",
		TotalAmount:     30000,
		Items: []OrderItemInput{
			{ProductID: 1, ProductName: "Robe Wax", Quantity: 2, Price: 15000, Size: "M"},
		},
	})
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	// Total is the client-supplied amount, never recomputed.
	assert.Equal(t, 30000.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderUpdateStatus(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()

	order, err := svc.Create(context.Background(), CreateOrderInput{
		CustomerName: "A", CustomerEmail: "a@b.c", CustomerPhone: "77",
		CustomerAddress: "Dakar", PaymentMethod: "cash", TotalAmount: 1000,
		Items: []OrderItemInput{{ProductID: 1, ProductName: "X", Quantity: 1, Price: 1000}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// An empty status leaves the order untouched.
	same, err := svc.UpdateStatus(order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, same.Status)
}

func TestOrderListEmpty(t *testing.T) {
	setupDB(t)

	orders, err := NewOrderService().List()
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	products, err := NewProductService().List(repositories.ProductFilter{})
	require.NoError(t, err)
	assert.NotNil(t, products)
}
