package flow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey    = "api-key"
	testSecretKey = "secret-key"
)

func testCreateRequest() *CreatePaymentRequest {
	return &CreatePaymentRequest{
		CommerceOrder:   "FG-1001",
		Amount:          19990,
		Subject:         "Compra FungiGrow",
		Email:           "buyer@example.com",
		Currency:        "CLP",
		URLConfirmation: "https://api.example.com/api/confirm-payment/",
		URLReturn:       "https://api.example.com/payment/flow-callback/",
	}
}

func TestClientCreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment/create", r.URL.Path)
		require.NoError(t, r.ParseForm())

		// the signature must cover every parameter except s itself
		params := map[string]string{}
		for k := range r.PostForm {
			if k == "s" {
				continue
			}
			params[k] = r.PostForm.Get(k)
		}
		assert.Equal(t, Sign(params, testSecretKey), r.PostForm.Get("s"))
		assert.Equal(t, testAPIKey, r.PostForm.Get("apiKey"))
		assert.Equal(t, "FG-1001", r.PostForm.Get("commerceOrder"))
		assert.Equal(t, "19990", r.PostForm.Get("amount"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-abc","url":"https://flow.example/pay","flowOrder":123}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testAPIKey, testSecretKey)

	payment, err := client.CreatePayment(context.Background(), testCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", payment.Token)
	assert.Equal(t, "https://flow.example/pay?token=tok-abc", payment.RedirectURL())
}

func TestClientCreatePaymentAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":1100,"message":"invalid amount"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testAPIKey, testSecretKey)

	_, err := client.CreatePayment(context.Background(), testCreateRequest())

	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1100, apiErr.Code)
	assert.Equal(t, "invalid amount", apiErr.Message)
}

func TestClientCreatePaymentMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://flow.example/pay"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testAPIKey, testSecretKey)

	_, err := client.CreatePayment(context.Background(), testCreateRequest())

	assert.ErrorIs(t, err, models.ErrInvalidProviderResponse)
}

func TestClientCreatePaymentTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, testAPIKey, testSecretKey)

	_, err := client.CreatePayment(context.Background(), testCreateRequest())

	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}

func TestClientGetStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want PaymentStatus
	}{
		{
			name: "paid with user message",
			body: `{"commerceOrder":"FG-1001","status":2,"paymentData":{"user_message":"Pago exitoso"}}`,
			want: PaymentStatus{CommerceOrder: "FG-1001", Status: StatusPaid, UserMessage: "Pago exitoso"},
		},
		{
			name: "pending without payment data",
			body: `{"commerceOrder":"FG-1001","status":1}`,
			want: PaymentStatus{CommerceOrder: "FG-1001", Status: StatusPending},
		},
		{
			name: "rejected",
			body: `{"commerceOrder":"FG-1001","status":3,"paymentData":{"user_message":"Tarjeta rechazada"}}`,
			want: PaymentStatus{CommerceOrder: "FG-1001", Status: StatusRejected, UserMessage: "Tarjeta rechazada"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/payment/getStatus", r.URL.Path)

				query := r.URL.Query()
				expected := Sign(map[string]string{
					"apiKey": query.Get("apiKey"),
					"token":  query.Get("token"),
				}, testSecretKey)
				assert.Equal(t, expected, query.Get("s"))

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, testAPIKey, testSecretKey)

			status, err := client.GetStatus(context.Background(), "tok-abc")

			require.NoError(t, err)
			assert.Equal(t, tt.want, *status)
		})
	}
}

func TestClientGetStatusBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":108,"message":"invalid token"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testAPIKey, testSecretKey)

	_, err := client.GetStatus(context.Background(), "bogus")

	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 108, apiErr.Code)
	// a 400 must not map to the retryable error
	assert.False(t, errors.Is(err, models.ErrProviderUnavailable))
}

func TestClientGetStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testAPIKey, testSecretKey)

	_, err := client.GetStatus(context.Background(), "tok-abc")

	assert.ErrorIs(t, err, models.ErrProviderUnavailable)
}
