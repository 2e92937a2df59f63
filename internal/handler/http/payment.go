package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fungigrow/storeapi/internal/flow"
	"github.com/fungigrow/storeapi/internal/models"
	"github.com/fungigrow/storeapi/internal/service"
	"github.com/go-chi/chi/v5"
)

// PaymentService is interface for payment-related operations
type PaymentService interface {
	// CreatePayment creates a local order and registers the payment with Flow
	CreatePayment(ctx context.Context, params *service.CreatePaymentParams) (*service.CreatePaymentResult, error)
	// Confirm handles the Flow server-to-server confirmation
	Confirm(ctx context.Context, token string) error
	// GetOrderStatusByToken returns the local order status for a flow token
	GetOrderStatusByToken(ctx context.Context, token string) (string, error)
	// QueryOrders returns orders matching an alternate-key filter
	QueryOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
}

// PaymentHandler represents HTTP handler for payment-related requests
type PaymentHandler struct {
	svc PaymentService
}

// NewPaymentHandler creates new PaymentHandler instance
func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type createPaymentRequest struct {
	Amount          int64  `json:"amount"`
	CommerceOrder   string `json:"commerceOrder"`
	Subject         string `json:"subject"`
	ReturnURL       string `json:"returnUrl"`
	CustomerEmail   string `json:"customerEmail"`
	ShippingName    string `json:"shippingName"`
	ShippingRUT     string `json:"shippingRut"`
	ShippingAddress string `json:"shippingAddress"`
	ShippingCommune string `json:"shippingCommune"`
	ShippingRegion  string `json:"shippingRegion"`
	ShippingPhone   string `json:"shippingPhone"`
	DiscountCode    string `json:"discountCode"`
}

type createPaymentResponse struct {
	RedirectURL string `json:"redirect_url"`
	Token       string `json:"token"`
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorBody{Error: message})
}

// CreatePayment initiates a payment
// 201 — order created and payment registered with Flow;
// 400 — malformed request or Flow rejected the payment parameters;
// 409 — an order with this commerce order id already exists;
// 500 — Flow returned a response without a token;
// 503 — Flow is unreachable.
func (ph *PaymentHandler) CreatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		defer r.Body.Close()

		result, err := ph.svc.CreatePayment(r.Context(), &service.CreatePaymentParams{
			Amount:          req.Amount,
			CommerceOrder:   req.CommerceOrder,
			Subject:         req.Subject,
			ReturnURL:       req.ReturnURL,
			CustomerEmail:   req.CustomerEmail,
			ShippingName:    req.ShippingName,
			ShippingRUT:     req.ShippingRUT,
			ShippingAddress: req.ShippingAddress,
			ShippingCommune: req.ShippingCommune,
			ShippingRegion:  req.ShippingRegion,
			ShippingPhone:   req.ShippingPhone,
			DiscountCode:    req.DiscountCode,
		})
		if err != nil {
			apiErr := &flow.APIError{}
			switch {
			case errors.Is(err, models.ErrInvalidAmount), errors.Is(err, models.ErrMissingFields):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, models.ErrConflictData):
				writeError(w, http.StatusConflict, "order already exists")
			case errors.As(err, &apiErr):
				writeError(w, http.StatusBadRequest, apiErr.Message)
			case errors.Is(err, models.ErrProviderUnavailable):
				writeError(w, http.StatusServiceUnavailable, "payment provider is unreachable")
			case errors.Is(err, models.ErrInvalidProviderResponse):
				writeError(w, http.StatusInternalServerError, "unexpected payment provider response")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(createPaymentResponse{
			RedirectURL: result.RedirectURL,
			Token:       result.Token,
		})
	}
}

// ConfirmPayment receives the Flow webhook. The token arrives as form data.
// 200 — confirmation processed locally (including benign inconsistencies);
// 400 — missing token or Flow rejected the status query;
// 503 — Flow unreachable, Flow should redeliver the webhook.
func (ph *PaymentHandler) ConfirmPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}

		err := ph.svc.Confirm(r.Context(), r.PostFormValue("token"))
		if err != nil {
			apiErr := &flow.APIError{}
			switch {
			case errors.Is(err, models.ErrMissingToken):
				writeError(w, http.StatusBadRequest, "missing token")
			case errors.As(err, &apiErr):
				writeError(w, http.StatusBadRequest, apiErr.Message)
			case errors.Is(err, models.ErrProviderUnavailable):
				writeError(w, http.StatusServiceUnavailable, "payment provider is unreachable")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

type orderStatusResponse struct {
	Status string `json:"status"`
}

// OrderStatusByToken returns the local order status for a flow token
// 200 — order found;
// 404 — no order with this token.
func (ph *PaymentHandler) OrderStatusByToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		status, err := ph.svc.GetOrderStatusByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				writeError(w, http.StatusNotFound, "order not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(orderStatusResponse{Status: status})
	}
}

type orderResponse struct {
	CommerceOrder string `json:"commerce_order"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	CustomerEmail string `json:"customer_email"`
	ShippingPhone string `json:"shipping_phone"`
	CreatedAt     string `json:"created_at"`
}

// QueryOrderStatus returns orders matching one of the alternate keys
// 200 — request processed, the list may be empty;
// 400 — no lookup key supplied.
func (ph *PaymentHandler) QueryOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.OrderFilter{
			CommerceOrder: r.URL.Query().Get("commerce_order"),
			Email:         r.URL.Query().Get("email"),
			Phone:         r.URL.Query().Get("phone"),
		}

		if filter.CommerceOrder == "" && filter.Email == "" && filter.Phone == "" {
			writeError(w, http.StatusBadRequest, "commerce_order, email or phone is required")
			return
		}

		orders, err := ph.svc.QueryOrders(r.Context(), filter)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := []orderResponse{}
		for _, order := range orders {
			resp = append(resp, orderResponse{
				CommerceOrder: order.CommerceOrder,
				Amount:        order.Amount,
				Status:        order.Status,
				CustomerEmail: order.CustomerEmail,
				ShippingPhone: order.ShippingPhone,
				CreatedAt:     order.CreatedAt.Format(time.RFC3339),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}
