// Package mailer sends transactional email through the Brevo HTTP API.
//
// The Mailer interface is the transport seam: application code depends on
// it, tests substitute it, and Brevo is the production implementation.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is a single transactional email.
type Message struct {
	SenderName  string
	SenderEmail string
	ToName      string
	ToEmail     string
	Subject     string
	HTML        string
}

// Mailer delivers a Message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Brevo posts messages to Brevo's transactional email endpoint.
type Brevo struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewBrevo builds a Brevo mailer. endpoint is normally
// https://api.brevo.com/v3/smtp/email; tests point it at a local server.
func NewBrevo(apiKey, endpoint string) *Brevo {
	return &Brevo{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Brevo's wire format.
type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoPayload struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// Send posts the message. Brevo answers 201 on acceptance; anything else is
// an error carrying the response body for the logs.
func (b *Brevo) Send(ctx context.Context, msg Message) error {
	if b.apiKey == "" {
		return fmt.Errorf("mailer: BREVO_API_KEY not configured")
	}

	payload := brevoPayload{
		Sender:      brevoAddress{Email: msg.SenderEmail, Name: msg.SenderName},
		To:          []brevoAddress{{Email: msg.ToEmail, Name: msg.ToName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mailer: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("mailer: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mailer: brevo returned HTTP %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
