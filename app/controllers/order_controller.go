package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/soutoura/soutoura/app/services"
	"github.com/soutoura/soutoura/pkg/bind"
	"github.com/soutoura/soutoura/pkg/logger"
	"github.com/soutoura/soutoura/pkg/response"
	"github.com/soutoura/soutoura/pkg/validate"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

type orderItemRequest struct {
	ProductID   uint    `json:"product_id"   validate:"required"`
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    int     `json:"quantity"     validate:"required,gte=1"`
	Price       float64 `json:"price"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
}

type orderRequest struct {
	CustomerName    string             `json:"customer_name"    validate:"required"`
	CustomerEmail   string             `json:"customer_email"   validate:"required,email"`
	CustomerPhone   string             `json:"customer_phone"   validate:"required"`
	CustomerAddress string             `json:"customer_address" validate:"required"`
	PaymentMethod   string             `json:"payment_method"   validate:"required"`
	TotalAmount     float64            `json:"total_amount"`
	Items           []orderItemRequest `json:"items"`
}

// validateItems checks each line item; the struct validator only covers
// top-level fields.
func (body *orderRequest) validateItems() map[string]string {
	errs := map[string]string{}
	if len(body.Items) == 0 {
		errs["items"] = "The items field is required."
		return errs
	}
	for i := range body.Items {
		for field, msg := range validate.Struct(&body.Items[i]) {
			errs[fmt.Sprintf("items.%d.%s", i, field)] = msg
		}
	}
	return errs
}

// Index lists all orders with their items, newest first.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List()
	if err != nil {
		logger.WithCtx(r.Context()).Error("order list failed", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, orders)
}

// Show returns one order with its items.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Commande non trouvée")
	if !ok {
		return
	}

	order, err := c.service.Find(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Commande non trouvée")
			return
		}
		logger.WithCtx(r.Context()).Error("order lookup failed", "id", id, "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, order)
}

// Store places an order. The response only carries the new ID: the owner
// notification runs in the background and never delays or fails this call.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var body orderRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if errs := body.validateItems(); len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	input := services.CreateOrderInput{
		CustomerName:    body.CustomerName,
		CustomerEmail:   body.CustomerEmail,
		CustomerPhone:   body.CustomerPhone,
		CustomerAddress: body.CustomerAddress,
		PaymentMethod:   body.PaymentMethod,
		TotalAmount:     body.TotalAmount,
	}
	for _, item := range body.Items {
		input.Items = append(input.Items, services.OrderItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Size:        item.Size,
			Color:       item.Color,
		})
	}

	order, err := c.service.Create(r.Context(), input)
	if err != nil {
		logger.WithCtx(r.Context()).Error("order create failed", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, map[string]uint{"orderId": order.ID})
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an order to a new status. An absent or empty status
// leaves the order unchanged, mirroring a partial patch.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Commande non trouvée")
	if !ok {
		return
	}

	var body orderStatusRequest
	if _, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.service.UpdateStatus(id, body.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Commande non trouvée")
			return
		}
		logger.WithCtx(r.Context()).Error("order status update failed", "id", id, "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, order)
}
