// Package repositories holds the database access layer. Repositories speak
// the orm facade and return models; all business rules live in services.
package repositories

import (
	"strings"
	"time"

	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/pkg/orm"
)

// indexCacheKey caches the unfiltered catalogue listing, the hottest query
// on the storefront. Filtered listings always hit the database.
const (
	indexCacheKey = "products:index"
	indexCacheTTL = 5 * time.Minute
)

// ProductFilter narrows a catalogue listing. Zero values mean "no filter".
type ProductFilter struct {
	Category     string
	SousCategory string
	Search       string
}

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// List returns products matching the filter, newest first. Search matches
// name or description, case-insensitively.
func (r *ProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	q := orm.DB().Model(&models.Product{})

	if filter == (ProductFilter{}) {
		var products []models.Product
		err := q.Order("created_at desc, id desc").Cache(indexCacheKey, indexCacheTTL, &products)
		return products, err
	}

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SousCategory != "" {
		q = q.Where("sous_category = ?", filter.SousCategory)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var products []models.Product
	err := q.Order("created_at desc, id desc").Get(&products)
	return products, err
}

// Find looks up a product by primary key.
func (r *ProductRepository) Find(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	if err := orm.DB().Create(product); err != nil {
		return err
	}
	orm.Forget(indexCacheKey)
	return nil
}

// Save writes every column of product back, including the JSON-serialized
// list columns that a map-based patch would miss.
func (r *ProductRepository) Save(product *models.Product) error {
	if err := orm.DB().Save(product); err != nil {
		return err
	}
	orm.Forget(indexCacheKey)
	return nil
}

// Delete removes a product.
func (r *ProductRepository) Delete(product *models.Product) error {
	if err := orm.DB().Delete(product); err != nil {
		return err
	}
	orm.Forget(indexCacheKey)
	return nil
}
