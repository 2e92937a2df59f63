package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fungigrow/storeapi/internal/service"
)

// CallbackService is interface for the user-return reconciliation path
type CallbackService interface {
	// Return reconciles the order best-effort and produces the redirect outcome
	Return(ctx context.Context, token string) *service.CallbackResult
}

// CallbackHandler handles the payer browser returning from Flow
type CallbackHandler struct {
	svc      CallbackService
	storeURL string
}

// NewCallbackHandler creates new CallbackHandler instance
func NewCallbackHandler(svc CallbackService, storeURL string) *CallbackHandler {
	return &CallbackHandler{
		svc:      svc,
		storeURL: storeURL,
	}
}

// FlowCallback receives the browser redirect from Flow (GET in sandbox, POST
// in production) and always answers with a 302 to the storefront
// confirmation page. The end user has no way to retry an API error, so every
// failure degrades to a redirect with status=error.
func (ch *CallbackHandler) FlowCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			if err := r.ParseForm(); err == nil {
				token = r.PostFormValue("token")
			}
		}

		result := ch.svc.Return(r.Context(), token)

		query := url.Values{}
		query.Set("orderId", result.OrderID)
		query.Set("status", result.Status)
		query.Set("message", result.Message)

		http.Redirect(w, r, ch.storeURL+"/payment/confirmation?"+query.Encode(), http.StatusFound)
	}
}
