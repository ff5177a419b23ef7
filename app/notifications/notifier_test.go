package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soutoura/soutoura/app/models"
	"github.com/soutoura/soutoura/pkg/mailer"
)

type captureMailer struct {
	sent []mailer.Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func sampleOrder() models.Order {
	return models.Order{
		ID:              42,
		CustomerName:    "Aissatou Ba",
		CustomerEmail:   "aissatou@example.com",
		CustomerPhone:   "+221771234567",
		CustomerAddress: "Dakar, Médina",
		PaymentMethod:   "wave",
		TotalAmount:     38000,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductName: "Robe Wax", Quantity: 2, Price: 15000, Size: "M", Color: "rouge"},
			{ProductName: "Sac Tissé", Quantity: 1, Price: 8000},
		},
	}
}

func TestFormatFCFA(t *testing.T) {
	assert.Equal(t, "0 FCFA", FormatFCFA(0))
	assert.Equal(t, "950 FCFA", FormatFCFA(950))
	assert.Equal(t, "15,000 FCFA", FormatFCFA(15000))
	assert.Equal(t, "1,250,000 FCFA", FormatFCFA(1250000))
	assert.Equal(t, "15,000 FCFA", FormatFCFA(14999.6))
}

func TestReceiptRender(t *testing.T) {
	html, err := NewReceiptRenderer().Render(sampleOrder())
	require.NoError(t, err)

	assert.Contains(t, html, "Commande #42")
	assert.Contains(t, html, "Aissatou Ba")
	assert.Contains(t, html, "aissatou@example.com")
	assert.Contains(t, html, "Dakar, Médina")
	assert.Contains(t, html, "Robe Wax")
	assert.Contains(t, html, "Taille: M, Couleur: rouge")
	assert.Contains(t, html, "30,000 FCFA") // 2 × 15,000
	assert.Contains(t, html, "38,000 FCFA") // grand total
	assert.Contains(t, html, "14/03/2025 à 18:30")

	// Item without size or color renders no details line.
	assert.NotContains(t, html, "(Taille: )")
}

func TestNotifyNewOrder(t *testing.T) {
	capture := &captureMailer{}
	n := NewOrderNotifier(Config{
		OwnerEmail:  "kane.soutoura.ks@gmail.com",
		OwnerName:   "Propriétaire SOUTOURA_KS",
		SenderEmail: "diallo30amadoukorka@gmail.com",
		SenderName:  "SOUTOURA_KS",
	}, capture, NewReceiptRenderer())

	require.NoError(t, n.NotifyNewOrder(context.Background(), sampleOrder()))

	require.Len(t, capture.sent, 1)
	msg := capture.sent[0]
	assert.Equal(t, "kane.soutoura.ks@gmail.com", msg.ToEmail)
	assert.Equal(t, "diallo30amadoukorka@gmail.com", msg.SenderEmail)
	assert.Equal(t, "🛍️ Nouvelle commande #42 - SOUTOURA_KS", msg.Subject)
	assert.Contains(t, msg.HTML, "Commande #42")
}

func TestNotifyNewOrderSendFailure(t *testing.T) {
	n := NewOrderNotifier(Config{OwnerEmail: "x@y.z"},
		&captureMailer{err: errors.New("brevo down")}, NewReceiptRenderer())

	err := n.NotifyNewOrder(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brevo down")
}
