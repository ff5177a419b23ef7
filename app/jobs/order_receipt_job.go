// Package jobs defines the background jobs processed by the queue workers.
package jobs

import (
	"context"
	"fmt"

	"github.com/soutoura/soutoura/app/notifications"
	"github.com/soutoura/soutoura/app/repositories"
	"github.com/soutoura/soutoura/pkg/queue"
)

// OrderReceiptJob emails the owner the receipt for a freshly created order.
// Only the order ID crosses the queue; the job reloads the order so the
// email always reflects what was committed.
type OrderReceiptJob struct {
	OrderID uint `json:"order_id"`
}

func NewOrderReceiptJob(orderID uint) *OrderReceiptJob {
	return &OrderReceiptJob{OrderID: orderID}
}

// Handle loads the order and sends the notification.
func (j *OrderReceiptJob) Handle() error {
	order, err := repositories.NewOrderRepository().Find(j.OrderID)
	if err != nil {
		return fmt.Errorf("order receipt job: load order %d: %w", j.OrderID, err)
	}
	return notifications.NewDefaultNotifier().NotifyNewOrder(context.Background(), order)
}

// Init registers every job type with the queue. Call once at boot, before
// workers start.
func Init() {
	queue.Register("*jobs.OrderReceiptJob", func() queue.Job { return &OrderReceiptJob{} })
}
