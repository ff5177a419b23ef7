package notifications

import (
	"context"
	"fmt"

	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/config"
	"github.com/soutoura/soutoura/pkg/logger"
	"github.com/soutoura/soutoura/pkg/mailer"
	"github.com/soutoura/soutoura/pkg/metrics"
)

// Config identifies the sender and the owner recipient of order emails.
type Config struct {
	OwnerEmail  string
	OwnerName   string
	SenderEmail string
	SenderName  string
}

// OrderNotifier emails the shop owner about new orders.
type OrderNotifier struct {
	cfg      Config
	mailer   mailer.Mailer
	renderer Renderer
}

func NewOrderNotifier(cfg Config, m mailer.Mailer, r Renderer) *OrderNotifier {
	return &OrderNotifier{cfg: cfg, mailer: m, renderer: r}
}

// NewDefaultNotifier wires the notifier from environment configuration with
// the Brevo transport and the standard receipt template.
func NewDefaultNotifier() *OrderNotifier {
	return NewOrderNotifier(
		Config{
			OwnerEmail:  config.OwnerEmail(),
			OwnerName:   "Propriétaire SOUTOURA_KS",
			SenderEmail: config.MailSenderEmail(),
			SenderName:  config.MailSenderName(),
		},
		mailer.NewBrevo(config.BrevoAPIKey(), config.BrevoEndpoint()),
		NewReceiptRenderer(),
	)
}

// NotifyNewOrder renders and sends the receipt for order. The outcome is
// recorded in metrics either way.
func (n *OrderNotifier) NotifyNewOrder(ctx context.Context, order models.Order) error {
	html, err := n.renderer.Render(order)
	if err != nil {
		metrics.RecordNotification("failed")
		return err
	}

	msg := mailer.Message{
		SenderName:  n.cfg.SenderName,
		SenderEmail: n.cfg.SenderEmail,
		ToName:      n.cfg.OwnerName,
		ToEmail:     n.cfg.OwnerEmail,
		Subject:     fmt.Sprintf("🛍️ Nouvelle commande #%d - SOUTOURA_KS", order.ID),
		HTML:        html,
	}

	if err := n.mailer.Send(ctx, msg); err != nil {
		metrics.RecordNotification("failed")
		return err
	}

	metrics.RecordNotification("success")
	logger.WithCtx(ctx).Info("order notification sent",
		"order_id", order.ID, "to", n.cfg.OwnerEmail)
	return nil
}
