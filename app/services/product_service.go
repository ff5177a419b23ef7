package services

import (
	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/app/repositories"
)

// CreateProductInput carries a full new catalogue entry.
type CreateProductInput struct {
	Name         string
	Description  string
	Price        float64
	Category     string
	SousCategory string
	Stock        int
	Images       []string
	Sizes        []string
	Colors       []string
}

// UpdateProductInput is a partial patch: nil fields are left untouched.
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Price        *float64
	Category     *string
	SousCategory *string
	Stock        *int
	Images       *[]string
	Sizes        *[]string
	Colors       *[]string
}

// ProductService manages the catalogue.
type ProductService struct {
	repo *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{repo: repositories.NewProductRepository()}
}

// List returns the catalogue, optionally filtered.
func (s *ProductService) List(filter repositories.ProductFilter) ([]models.Product, error) {
	products, err := s.repo.List(filter)
	if products == nil {
		products = []models.Product{}
	}
	return products, err
}

// Find returns one product by ID.
func (s *ProductService) Find(id uint) (models.Product, error) {
	return s.repo.Find(id)
}

// Create persists a new product and returns it with its assigned ID.
func (s *ProductService) Create(in CreateProductInput) (models.Product, error) {
	product := models.Product{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		SousCategory: in.SousCategory,
		Stock:        in.Stock,
		Images:       emptyIfNil(in.Images),
		Sizes:        emptyIfNil(in.Sizes),
		Colors:       emptyIfNil(in.Colors),
	}
	if err := s.repo.Create(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Update applies the non-nil fields of in to the product and returns the
// refreshed row.
func (s *ProductService) Update(id uint, in UpdateProductInput) (models.Product, error) {
	product, err := s.repo.Find(id)
	if err != nil {
		return models.Product{}, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.SousCategory != nil {
		product.SousCategory = *in.SousCategory
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Images != nil {
		product.Images = *in.Images
	}
	if in.Sizes != nil {
		product.Sizes = *in.Sizes
	}
	if in.Colors != nil {
		product.Colors = *in.Colors
	}

	if err := s.repo.Save(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Delete removes a product from the catalogue.
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.Find(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(&product)
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
