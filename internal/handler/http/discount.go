package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fungigrow/storeapi/internal/models"
)

// DiscountService is interface for discount code validation
type DiscountService interface {
	// Validate checks a code against the rule chain and computes amounts
	Validate(ctx context.Context, code string, amount int64) (*models.DiscountValidation, error)
}

// DiscountHandler represents HTTP handler for discount-related requests
type DiscountHandler struct {
	svc DiscountService
}

// NewDiscountHandler creates new DiscountHandler instance
func NewDiscountHandler(svc DiscountService) *DiscountHandler {
	return &DiscountHandler{svc: svc}
}

type validateDiscountRequest struct {
	Code   string `json:"code"`
	Amount int64  `json:"amount"`
}

type validateDiscountResponse struct {
	IsValid                  bool   `json:"isValid"`
	Reason                   string `json:"reason,omitempty"`
	DiscountAmountCalculated int64  `json:"discountAmountCalculated"`
	FinalAmount              int64  `json:"finalAmount"`
}

// ValidateDiscount pre-checks a discount code for the storefront
// 200 — code evaluated, result in the body (including invalid codes);
// 400 — malformed request.
func (dh *DiscountHandler) ValidateDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateDiscountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
			writeError(w, http.StatusBadRequest, "code is required")
			return
		}
		defer r.Body.Close()

		validation, err := dh.svc.Validate(r.Context(), req.Code, req.Amount)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(validateDiscountResponse{
			IsValid:                  validation.IsValid,
			Reason:                   validation.Reason,
			DiscountAmountCalculated: validation.DiscountAmount,
			FinalAmount:              validation.FinalAmount,
		})
	}
}
