// Package notifications builds and delivers the owner-facing order emails.
package notifications

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/soutoura/soutoura/app/models"
)

// Renderer produces the HTML body of an order notification.
type Renderer interface {
	Render(order models.Order) (string, error)
}

// ReceiptRenderer renders the SOUTOURA_KS order receipt sent to the owner.
type ReceiptRenderer struct {
	tmpl *template.Template
}

func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{
		tmpl: template.Must(template.New("receipt").Parse(receiptTemplate)),
	}
}

type receiptItem struct {
	Name      string
	Details   string // "Taille: M, Couleur: rouge"
	Quantity  int
	UnitPrice string
	LineTotal string
}

type receiptData struct {
	OrderID         uint
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   string
	Items           []receiptItem
	Total           string
	Date            string
}

// Render builds the HTML receipt for one order.
func (r *ReceiptRenderer) Render(order models.Order) (string, error) {
	data := receiptData{
		OrderID:         order.ID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		PaymentMethod:   order.PaymentMethod,
		Total:           FormatFCFA(order.TotalAmount),
		Date:            order.CreatedAt.Format("02/01/2006 à 15:04"),
	}

	for _, item := range order.Items {
		var details []string
		if item.Size != "" {
			details = append(details, "Taille: "+item.Size)
		}
		if item.Color != "" {
			details = append(details, "Couleur: "+item.Color)
		}

		data.Items = append(data.Items, receiptItem{
			Name:      item.ProductName,
			Details:   strings.Join(details, ", "),
			Quantity:  item.Quantity,
			UnitPrice: FormatFCFA(item.Price),
			LineTotal: FormatFCFA(item.Price * float64(item.Quantity)),
		})
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("notifications: render receipt: %w", err)
	}
	return sb.String(), nil
}

// FormatFCFA renders an amount as a whole number of francs with comma
// thousand separators, e.g. 15000 → "15,000 FCFA".
func FormatFCFA(amount float64) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	return sb.String() + " FCFA"
}

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #C08831 0%, #995A46 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: white; padding: 30px; border: 1px solid #e0e0e0; }
    .order-number { font-size: 24px; font-weight: bold; color: #C08831; margin-bottom: 20px; }
    .section { margin-bottom: 25px; }
    .section-title { font-size: 18px; font-weight: bold; color: #301B18; margin-bottom: 10px; border-bottom: 2px solid #C08831; padding-bottom: 5px; }
    .info-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #f0f0f0; }
    .info-label { font-weight: 600; color: #995A46; }
    .info-value { color: #301B18; }
    table { width: 100%; border-collapse: collapse; margin-top: 15px; }
    th { background-color: #C08831; color: white; padding: 12px; text-align: left; }
    td { padding: 12px; border-bottom: 1px solid #e0e0e0; }
    .total-row { background-color: #FFF8E7; font-weight: bold; font-size: 18px; }
    .total-row td { color: #C08831; padding: 15px 12px; }
    .footer { background-color: #301B18; color: white; padding: 20px; text-align: center; border-radius: 0 0 10px 10px; margin-top: 20px; }
    .badge { display: inline-block; padding: 5px 15px; background-color: #4CAF50; color: white; border-radius: 20px; font-size: 12px; font-weight: bold; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1 style="margin: 0; font-size: 28px;">SOUTOURA_KS</h1>
      <p style="margin: 10px 0 0 0; font-size: 14px; opacity: 0.9;">Nouvelle commande reçue</p>
    </div>

    <div class="content">
      <div class="order-number">
        Commande #{{.OrderID}} <span class="badge">NOUVELLE</span>
      </div>

      <div class="section">
        <div class="section-title">Informations Client</div>
        <div class="info-row">
          <span class="info-label">Nom complet:</span>
          <span class="info-value">{{.CustomerName}}</span>
        </div>
        <div class="info-row">
          <span class="info-label">Email:</span>
          <span class="info-value">{{.CustomerEmail}}</span>
        </div>
        <div class="info-row">
          <span class="info-label">Téléphone:</span>
          <span class="info-value">{{.CustomerPhone}}</span>
        </div>
        <div class="info-row">
          <span class="info-label">Adresse de livraison:</span>
          <span class="info-value">{{.CustomerAddress}}</span>
        </div>
        <div class="info-row">
          <span class="info-label">Mode de paiement:</span>
          <span class="info-value" style="text-transform: uppercase; font-weight: bold;">{{.PaymentMethod}}</span>
        </div>
      </div>

      <div class="section">
        <div class="section-title">Articles Commandés</div>
        <table>
          <thead>
            <tr>
              <th>Produit</th>
              <th style="text-align: center;">Qté</th>
              <th style="text-align: right;">Prix Unit.</th>
              <th style="text-align: right;">Total</th>
            </tr>
          </thead>
          <tbody>
            {{range .Items}}
            <tr>
              <td><strong>{{.Name}}</strong>{{if .Details}}<br><small style="color: #666;">({{.Details}})</small>{{end}}</td>
              <td style="text-align: center;">{{.Quantity}}</td>
              <td style="text-align: right;">{{.UnitPrice}}</td>
              <td style="text-align: right;"><strong>{{.LineTotal}}</strong></td>
            </tr>
            {{end}}
            <tr class="total-row">
              <td colspan="3" style="text-align: right;">TOTAL À PAYER:</td>
              <td style="text-align: right;">{{.Total}}</td>
            </tr>
          </tbody>
        </table>
      </div>

      <div class="section">
        <div class="section-title">Date de commande</div>
        <p style="margin: 10px 0; color: #666;">{{.Date}}</p>
      </div>

      <div style="background-color: #FFF8E7; padding: 15px; border-left: 4px solid #C08831; margin-top: 20px;">
        <p style="margin: 0; color: #995A46;">
          <strong>Action requise:</strong> Connectez-vous à votre dashboard pour valider cette commande et mettre à jour son statut.
        </p>
      </div>
    </div>

    <div class="footer">
      <p style="margin: 0 0 10px 0; font-size: 16px; font-weight: bold;">SOUTOURA_KS</p>
      <p style="margin: 0; font-size: 12px; opacity: 0.8;">Mode Africaine de Luxe</p>
      <p style="margin: 10px 0 0 0; font-size: 11px; opacity: 0.7;">
        Cet email a été envoyé automatiquement. Ne pas répondre.
      </p>
    </div>
  </div>
</body>
</html>
`
