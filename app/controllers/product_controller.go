package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/soutoura/soutoura/app/repositories"
	"github.com/soutoura/soutoura/app/services"
	"github.com/soutoura/soutoura/pkg/bind"
	"github.com/soutoura/soutoura/pkg/logger"
	"github.com/soutoura/soutoura/pkg/response"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController() *ProductController {
	return &ProductController{service: services.NewProductService()}
}

type productRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=255"`
	Description  string   `json:"description"`
	Price        *float64 `json:"price" validate:"present"`
	Category     string   `json:"category"`
	SousCategory string   `json:"sous_category"`
	Stock        int      `json:"stock"`
	Images       []string `json:"images"`
	Sizes        []string `json:"sizes"`
	Colors       []string `json:"colors"`
}

type productPatch struct {
	Name         *string   `json:"name" validate:"nullable,min=1,max=255"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	Category     *string   `json:"category"`
	SousCategory *string   `json:"sous_category"`
	Stock        *int      `json:"stock"`
	Images       *[]string `json:"images"`
	Sizes        *[]string `json:"sizes"`
	Colors       *[]string `json:"colors"`
}

// Index lists the catalogue with optional filters:
// ?category=…&sous_category=…&search=…
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := c.service.List(repositories.ProductFilter{
		Category:     q.Get("category"),
		SousCategory: q.Get("sous_category"),
		Search:       q.Get("search"),
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("product list failed", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, products)
}

// Show returns one product by ID.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Produit non trouvé")
	if !ok {
		return
	}

	product, err := c.service.Find(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Produit non trouvé")
			return
		}
		logger.WithCtx(r.Context()).Error("product lookup failed", "id", id, "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, product)
}

// Store creates a product and returns it with its new ID.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var body productRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Create(services.CreateProductInput{
		Name:         body.Name,
		Description:  body.Description,
		Price:        *body.Price,
		Category:     body.Category,
		SousCategory: body.SousCategory,
		Stock:        body.Stock,
		Images:       body.Images,
		Sizes:        body.Sizes,
		Colors:       body.Colors,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("product create failed", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, product)
}

// Update applies a partial patch: only the fields present in the body change.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Produit non trouvé")
	if !ok {
		return
	}

	var body productPatch
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Update(id, services.UpdateProductInput{
		Name:         body.Name,
		Description:  body.Description,
		Price:        body.Price,
		Category:     body.Category,
		SousCategory: body.SousCategory,
		Stock:        body.Stock,
		Images:       body.Images,
		Sizes:        body.Sizes,
		Colors:       body.Colors,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Produit non trouvé")
			return
		}
		logger.WithCtx(r.Context()).Error("product update failed", "id", id, "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, product)
}

// Destroy deletes a product.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Produit non trouvé")
	if !ok {
		return
	}

	if err := c.service.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Produit non trouvé")
			return
		}
		logger.WithCtx(r.Context()).Error("product delete failed", "id", id, "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, map[string]string{"message": "Produit supprimé avec succès"})
}

// pathID parses the {id} route parameter. On a non-numeric ID it writes the
// same 404 the caller would send for a missing row.
func pathID(w http.ResponseWriter, r *http.Request, notFoundMsg string) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.NotFound(w, notFoundMsg)
		return 0, false
	}
	return uint(id), true
}
