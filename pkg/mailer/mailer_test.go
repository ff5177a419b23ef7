package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoSend(t *testing.T) {
	var gotKey string
	var gotPayload brevoPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := NewBrevo("secret-key", srv.URL)
	err := m.Send(context.Background(), Message{
		SenderName:  "SOUTOURA_KS",
		SenderEmail: "diallo30amadoukorka@gmail.com",
		ToEmail:     "kane.soutoura.ks@gmail.com",
		Subject:     "Nouvelle commande",
		HTML:        "<h1>Reçu</h1>",
	})
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "SOUTOURA_KS", gotPayload.Sender.Name)
	assert.Equal(t, "diallo30amadoukorka@gmail.com", gotPayload.Sender.Email)
	require.Len(t, gotPayload.To, 1)
	assert.Equal(t, "kane.soutoura.ks@gmail.com", gotPayload.To[0].Email)
	assert.Equal(t, "Nouvelle commande", gotPayload.Subject)
	assert.Equal(t, "<h1>Reçu</h1>", gotPayload.HTMLContent)
}

func TestBrevoSendNon201(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer srv.Close()

	m := NewBrevo("bad-key", srv.URL)
	err := m.Send(context.Background(), Message{ToEmail: "x@y.z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestBrevoSendMissingKey(t *testing.T) {
	m := NewBrevo("", "http://unused.invalid")
	err := m.Send(context.Background(), Message{ToEmail: "x@y.z"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BREVO_API_KEY")
}
