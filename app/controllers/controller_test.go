package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/soutoura/soutoura/app/jobs"
	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/app/routes"
	"github.com/soutoura/soutoura/config"
	"github.com/soutoura/soutoura/pkg/database"
	"github.com/soutoura/soutoura/pkg/queue"
	"github.com/soutoura/soutoura/pkg/router"
)

// newAPI wires a fresh in-memory database and the full /api route table.
func newAPI(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name())
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

	r := router.New()
	routes.RegisterAPI(r)
	return r.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}

func TestLoginEndpoint(t *testing.T) {
	h := newAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "kane.soutoura.ks@gmail.com", "password": "Test",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ok struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		User    struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, rec, &ok)
	assert.True(t, ok.Success)
	assert.Equal(t, "Connexion réussie", ok.Message)
	assert.Equal(t, "kane.soutoura.ks@gmail.com", ok.User.Email)

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "kane.soutoura.ks@gmail.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Seul le propriétaire a accès à cette section")
}

func TestLoginValidation(t *testing.T) {
	h := newAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProductLifecycle(t *testing.T) {
	h := newAPI(t)

	// Create with minimal fields.
	rec := doJSON(t, h, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Robe", "price": 15000, "category": "femme",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Product
	decode(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.Stock)
	assert.Equal(t, []string{}, created.Images)

	// Read back.
	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Partial update leaves other fields alone.
	rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/products/%d", created.ID), map[string]interface{}{
		"price": 18000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Product
	decode(t, rec, &updated)
	assert.Equal(t, 18000.0, updated.Price)
	assert.Equal(t, "Robe", updated.Name)

	// Delete.
	rec = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Produit supprimé avec succès")

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Produit non trouvé")
}

func TestProductValidation(t *testing.T) {
	h := newAPI(t)

	rec := doJSON(t, h, http.MethodPost, "/api/products", map[string]interface{}{"price": 1000})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")

	// A price-less body must not slip through as price=0.
	rec = doJSON(t, h, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Robe", "category": "femme",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "price")

	// An explicit zero price is a valid value, only absence fails.
	rec = doJSON(t, h, http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Échantillon", "price": 0,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var free models.Product
	decode(t, rec, &free)
	assert.Equal(t, 0.0, free.Price)

	rec = doJSON(t, h, http.MethodPost, "/api/products", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductListFiltering(t *testing.T) {
	h := newAPI(t)

	for _, p := range []map[string]interface{}{
		{"name": "Robe Wax", "price": 15000, "category": "femme", "sous_category": "robes"},
		{"name": "Boubou", "price": 25000, "category": "homme", "sous_category": "boubous"},
		{"name": "Sac", "price": 8000, "category": "femme", "sous_category": "accessoires", "description": "sac artisanal"},
	} {
		rec := doJSON(t, h, http.MethodPost, "/api/products", p)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var list []models.Product

	rec := doJSON(t, h, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	assert.Len(t, list, 3)

	rec = doJSON(t, h, http.MethodGet, "/api/products?category=femme&sous_category=robes", nil)
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Robe Wax", list[0].Name)

	rec = doJSON(t, h, http.MethodGet, "/api/products?search=ARTISANAL", nil)
	decode(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Sac", list[0].Name)
}

func TestOrderEndpoints(t *testing.T) {
	h := newAPI(t)

	payload := map[string]interface{}{
		"customer_name":    "Aissatou Ba",
		"customer_email":   "aissatou@example.com",
		"customer_phone":   "+221771234567",
		"customer_address": "Dakar, Médina",
		"payment_method":   "wave",
		"total_amount":     30000,
		"items": []map[string]interface{}{
			{"product_id": 1, "product_name": "Robe Wax", "quantity": 2, "price": 15000, "size": "M"},
		},
	}

	rec := doJSON(t, h, http.MethodPost, "/api/orders", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		OrderID uint `json:"orderId"`
	}
	decode(t, rec, &created)
	require.NotZero(t, created.OrderID)

	// The response body carries only the ID.
	assert.False(t, strings.Contains(rec.Body.String(), "customer_name"))

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/orders/%d", created.OrderID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var order models.Order
	decode(t, rec, &order)
	assert.Equal(t, "en cours", order.Status)
	assert.Equal(t, 30000.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Robe Wax", order.Items[0].ProductName)

	rec = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/orders/%d", created.OrderID), map[string]string{
		"status": "livrée",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &order)
	assert.Equal(t, "livrée", order.Status)

	rec = doJSON(t, h, http.MethodGet, "/api/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Commande non trouvée")
}

func TestOrderCreateSurvivesEmailProviderFailure(t *testing.T) {
	h := newAPI(t)

	var mailCalls atomic.Int32
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mailCalls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(provider.Close)

	prevKey := config.Get("BREVO_API_KEY", "")
	prevEndpoint := config.Get("BREVO_ENDPOINT", "")
	config.Set("BREVO_API_KEY", "test-key")
	config.Set("BREVO_ENDPOINT", provider.URL)
	t.Cleanup(func() {
		config.Set("BREVO_API_KEY", prevKey)
		config.Set("BREVO_ENDPOINT", prevEndpoint)
	})

	// Fresh driver so earlier tests' dispatches stay out of this run; one
	// attempt keeps the failure path fast.
	jobs.Init()
	queue.SetDriver(queue.NewMemoryDriver())
	queue.SetMaxRetry(1)
	t.Cleanup(func() {
		queue.SetMaxRetry(3)
		queue.SetDriver(queue.NewMemoryDriver())
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	queue.StartWorkers(ctx, 1)

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_name":    "Moussa Diop",
		"customer_email":   "moussa@example.com",
		"customer_phone":   "+221770000000",
		"customer_address": "Thiès",
		"payment_method":   "cash",
		"total_amount":     45000,
		"items": []map[string]interface{}{
			{"product_id": 2, "product_name": "Grand Boubou Brodé", "quantity": 1, "price": 45000},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		OrderID uint `json:"orderId"`
	}
	decode(t, rec, &created)
	require.NotZero(t, created.OrderID)

	// The send fails in the background and ends up in the failed list.
	deadline := time.After(5 * time.Second)
	for !failedReceiptFor(created.OrderID) {
		select {
		case <-deadline:
			t.Fatal("failed receipt job never recorded")
		case <-time.After(50 * time.Millisecond):
		}
	}
	assert.GreaterOrEqual(t, mailCalls.Load(), int32(1))

	// The order itself is untouched by the provider outage.
	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/orders/%d", created.OrderID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var order models.Order
	decode(t, rec, &order)
	assert.Equal(t, "en cours", order.Status)
	assert.Equal(t, 45000.0, order.TotalAmount)
}

func failedReceiptFor(orderID uint) bool {
	for _, f := range queue.FailedJobs() {
		if j, ok := f.Job.(*jobs.OrderReceiptJob); ok && j.OrderID == orderID {
			return true
		}
	}
	return false
}

func TestOrderValidation(t *testing.T) {
	h := newAPI(t)

	// Missing items.
	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_name":    "A",
		"customer_email":   "a@b.cd",
		"customer_phone":   "77",
		"customer_address": "Dakar",
		"payment_method":   "cash",
		"total_amount":     1000,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "items")

	// Bad quantity inside an item.
	rec = doJSON(t, h, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_name":    "A",
		"customer_email":   "a@b.cd",
		"customer_phone":   "77",
		"customer_address": "Dakar",
		"payment_method":   "cash",
		"total_amount":     1000,
		"items": []map[string]interface{}{
			{"product_id": 1, "product_name": "X", "quantity": 0, "price": 1000},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity")
}
