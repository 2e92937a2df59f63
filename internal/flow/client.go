package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fungigrow/storeapi/internal/models"
)

// Flow payment status codes returned by getStatus.
const (
	StatusPending  = 1
	StatusPaid     = 2
	StatusRejected = 3
	StatusVoided   = 4
)

const clientTimeout = 15 * time.Second

// APIError is a structured error payload returned by Flow.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("flow error %d: %s", e.Code, e.Message)
}

// Client represents HTTP client for the Flow payment API
type Client struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	secretKey string
}

// NewClient creates new Client instance
func NewClient(baseURL, apiKey, secretKey string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: clientTimeout,
		},
		baseURL:   baseURL,
		apiKey:    apiKey,
		secretKey: secretKey,
	}
}

// CreatePaymentRequest is the parameter set for payment/create
type CreatePaymentRequest struct {
	CommerceOrder   string
	Amount          int64
	Subject         string
	Email           string
	Currency        string
	URLConfirmation string
	URLReturn       string
}

// Payment is the provider handoff for a freshly created payment
type Payment struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// RedirectURL returns the URL the payer browser must be sent to
func (p *Payment) RedirectURL() string {
	return p.URL + "?token=" + p.Token
}

// PaymentStatus is the authoritative payment state returned by getStatus
type PaymentStatus struct {
	CommerceOrder string
	Status        int
	UserMessage   string
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatePayment calls POST payment/create with signed form parameters.
// A transport failure maps to ErrProviderUnavailable, a structured provider
// error to *APIError, and a 2xx response without a token to
// ErrInvalidProviderResponse.
func (c *Client) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	params := map[string]string{
		"apiKey":          c.apiKey,
		"commerceOrder":   req.CommerceOrder,
		"amount":          strconv.FormatInt(req.Amount, 10),
		"subject":         req.Subject,
		"email":           req.Email,
		"currency":        req.Currency,
		"urlConfirmation": req.URLConfirmation,
		"urlReturn":       req.URLReturn,
	}
	params["s"] = Sign(params, c.secretKey)

	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	endpoint, err := url.JoinPath(c.baseURL, "payment", "create")
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(httpReq)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}

	var raw struct {
		Payment
		errorResponse
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidProviderResponse, err)
	}

	if raw.Code != 0 {
		return nil, &APIError{Code: raw.Code, Message: raw.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", models.ErrInvalidProviderResponse, resp.StatusCode)
	}
	if raw.Token == "" {
		return nil, fmt.Errorf("%w: no token in create response", models.ErrInvalidProviderResponse)
	}

	return &Payment{Token: raw.Token, URL: raw.URL}, nil
}

// GetStatus calls GET payment/getStatus with a signed query. A provider 400
// (malformed token) maps to *APIError and must not be retried; any other
// failure maps to ErrProviderUnavailable so the caller can ask for retry.
func (c *Client) GetStatus(ctx context.Context, token string) (*PaymentStatus, error) {
	params := map[string]string{
		"apiKey": c.apiKey,
		"token":  token,
	}
	sig := Sign(params, c.secretKey)

	endpoint, err := url.JoinPath(c.baseURL, "payment", "getStatus")
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("token", token)
	query.Set("s", sig)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var raw struct {
			CommerceOrder string `json:"commerceOrder"`
			Status        int    `json:"status"`
			PaymentData   *struct {
				UserMessage string `json:"user_message"`
			} `json:"paymentData"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrInvalidProviderResponse, err)
		}

		status := PaymentStatus{
			CommerceOrder: raw.CommerceOrder,
			Status:        raw.Status,
		}
		if raw.PaymentData != nil {
			status.UserMessage = raw.PaymentData.UserMessage
		}
		return &status, nil
	case http.StatusBadRequest:
		apiErr := errorResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			apiErr.Message = "malformed status request"
		}
		return nil, &APIError{Code: apiErr.Code, Message: apiErr.Message}
	default:
		return nil, fmt.Errorf("%w: status %d", models.ErrProviderUnavailable, resp.StatusCode)
	}
}
