package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoClient_Send(t *testing.T) {
	var got sendEmailRequest
	var gotAPIKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/smtp/email", r.URL.Path)
		gotAPIKey = r.Header.Get("api-key")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"msg-1"}`))
	}))
	defer srv.Close()

	client := NewBrevoClient("secret-key", "Recipe App", "no-reply@recipeauth.local")
	client.baseURL = srv.URL

	err := client.Send(context.Background(), "a@x.com", "Your Verification Code", "<b>123456</b>")
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotAPIKey)
	assert.Equal(t, "no-reply@recipeauth.local", got.Sender.Email)
	assert.Equal(t, "Recipe App", got.Sender.Name)
	require.Len(t, got.To, 1)
	assert.Equal(t, "a@x.com", got.To[0].Email)
	assert.Equal(t, "Your Verification Code", got.Subject)
	assert.Equal(t, "<b>123456</b>", got.HTMLContent)
}

func TestBrevoClient_SendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer srv.Close()

	client := NewBrevoClient("bad-key", "Recipe App", "no-reply@recipeauth.local")
	client.baseURL = srv.URL

	err := client.Send(context.Background(), "a@x.com", "Your Verification Code", "<b>123456</b>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
