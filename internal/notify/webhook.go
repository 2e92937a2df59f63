package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fungigrow/storeapi/internal/models"
)

const webhookTimeout = 10 * time.Second

// WebhookNotifier posts the paid-order event as JSON to an external
// automation endpoint.
type WebhookNotifier struct {
	client *http.Client
	url    string
}

// NewWebhookNotifier creates new WebhookNotifier instance
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		client: &http.Client{
			Timeout: webhookTimeout,
		},
		url: url,
	}
}

// Name identifies the dispatcher in logs
func (wn *WebhookNotifier) Name() string {
	return "webhook"
}

type webhookPayload struct {
	EventID         string `json:"event_id"`
	CommerceOrder   string `json:"commerce_order"`
	Amount          int64  `json:"amount"`
	Token           string `json:"token"`
	CustomerEmail   string `json:"customer_email"`
	ShippingName    string `json:"shipping_name"`
	ShippingRUT     string `json:"shipping_rut"`
	ShippingAddress string `json:"shipping_address"`
	ShippingCommune string `json:"shipping_commune"`
	ShippingRegion  string `json:"shipping_region"`
	ShippingPhone   string `json:"shipping_phone"`
	DiscountCode    string `json:"discount_code,omitempty"`
	Status          string `json:"status"`
	FlowStatus      int    `json:"flow_status"`
	PaidAt          string `json:"paid_at"`
}

// Dispatch posts the event. Any non-2xx response is an error.
func (wn *WebhookNotifier) Dispatch(ctx context.Context, event models.PaidOrderEvent) error {
	payload := webhookPayload{
		EventID:         event.EventID,
		CommerceOrder:   event.CommerceOrder,
		Amount:          event.Amount,
		Token:           event.Token,
		CustomerEmail:   event.CustomerEmail,
		ShippingName:    event.ShippingName,
		ShippingRUT:     event.ShippingRUT,
		ShippingAddress: event.ShippingAddress,
		ShippingCommune: event.ShippingCommune,
		ShippingRegion:  event.ShippingRegion,
		ShippingPhone:   event.ShippingPhone,
		DiscountCode:    event.DiscountCode,
		Status:          event.Status,
		FlowStatus:      event.FlowStatus,
		PaidAt:          event.PaidAt.Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wn.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wn.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	return nil
}
