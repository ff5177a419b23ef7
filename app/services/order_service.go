package services

import (
	"context"

	"github.com/soutoura/soutoura/app/jobs"
	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/app/repositories"
	"github.com/soutoura/soutoura/pkg/logger"
	"github.com/soutoura/soutoura/pkg/metrics"
	"github.com/soutoura/soutoura/pkg/queue"
)

// OrderItemInput is one line of a new order. Name and price are snapshots
// supplied by the client at order time.
type OrderItemInput struct {
	ProductID   uint
	ProductName string
	Quantity    int
	Price       float64
	Size        string
	Color       string
}

// CreateOrderInput carries everything needed to place an order. TotalAmount
// is taken as-is from the client; it is never recomputed from the items.
type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   string
	TotalAmount     float64
	Items           []OrderItemInput
}

// OrderService manages order intake and fulfilment state.
type OrderService struct {
	repo *repositories.OrderRepository
}

func NewOrderService() *OrderService {
	return &OrderService{repo: repositories.NewOrderRepository()}
}

// Create persists the order with its items in one transaction, then queues
// the owner notification. A failed dispatch is logged and never surfaces to
// the caller: the order is already committed.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (models.Order, error) {
	order := models.Order{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		PaymentMethod:   in.PaymentMethod,
		TotalAmount:     in.TotalAmount,
		Status:          models.OrderStatusPending,
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Size:        item.Size,
			Color:       item.Color,
		})
	}

	if err := s.repo.Create(&order); err != nil {
		return models.Order{}, err
	}
	metrics.OrdersCreated.Inc()

	if err := queue.Dispatch(jobs.NewOrderReceiptJob(order.ID)); err != nil {
		logger.WithCtx(ctx).Error("order receipt dispatch failed",
			"order_id", order.ID, "error", err)
	}

	return order, nil
}

// List returns all orders with their items, newest first.
func (s *OrderService) List() ([]models.Order, error) {
	orders, err := s.repo.List()
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, err
}

// Find returns one order with its items.
func (s *OrderService) Find(id uint) (models.Order, error) {
	return s.repo.Find(id)
}

// UpdateStatus moves an order to a new status and returns the refreshed row.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	order, err := s.repo.Find(id)
	if err != nil {
		return models.Order{}, err
	}
	if status != "" {
		if err := s.repo.UpdateStatus(&order, status); err != nil {
			return models.Order{}, err
		}
	}
	return order, nil
}
