package service

import (
	"context"
	"errors"
	"time"

	"github.com/fungigrow/storeapi/internal/models"
)

// DiscountRepository is interface for interacting with discount code data
type DiscountRepository interface {
	// GetDiscountByCode returns discount code by its code value
	GetDiscountByCode(ctx context.Context, code string) (*models.DiscountCode, error)
}

// DiscountService evaluates discount codes against cart amounts
type DiscountService struct {
	repo DiscountRepository
	now  func() time.Time
}

// NewDiscountService creates new DiscountService instance
func NewDiscountService(repo DiscountRepository) *DiscountService {
	return &DiscountService{
		repo: repo,
		now:  time.Now,
	}
}

// Validate checks a code against the rule chain and computes the discounted
// amounts. An unknown code is reported as invalid, not as an error.
func (ds *DiscountService) Validate(ctx context.Context, code string, amount int64) (*models.DiscountValidation, error) {
	dc, err := ds.repo.GetDiscountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return &models.DiscountValidation{
				Code:        code,
				IsValid:     false,
				Reason:      "El código de descuento no existe.",
				FinalAmount: amount,
			}, nil
		}
		return nil, err
	}

	if ok, reason := checkDiscountRules(dc, amount, ds.now()); !ok {
		return &models.DiscountValidation{
			Code:        code,
			IsValid:     false,
			Reason:      reason,
			FinalAmount: amount,
		}, nil
	}

	discount := CalculateDiscount(dc, amount)

	return &models.DiscountValidation{
		Code:           code,
		IsValid:        true,
		DiscountAmount: discount,
		FinalAmount:    amount - discount,
	}, nil
}

// checkDiscountRules runs the rule chain, short-circuiting on the first
// failing rule.
func checkDiscountRules(dc *models.DiscountCode, amount int64, now time.Time) (bool, string) {
	if !dc.IsActive {
		return false, "El código de descuento no está activo."
	}
	if dc.ValidFrom != nil && now.Before(*dc.ValidFrom) {
		return false, "El código de descuento aún no es válido."
	}
	if dc.ValidUntil != nil && now.After(*dc.ValidUntil) {
		return false, "El código de descuento ha expirado."
	}
	if dc.UsageLimit != nil && dc.TimesUsed >= *dc.UsageLimit {
		return false, "El código de descuento alcanzó su límite de usos."
	}
	if amount > 0 && amount < dc.MinPurchaseAmount {
		return false, "El monto de compra no alcanza el mínimo requerido para este código."
	}
	return true, ""
}

// CalculateDiscount returns the discount for an amount. Percentage discounts
// are clamped to the configured cap; fixed discounts never exceed the amount
// itself so the total cannot go negative.
func CalculateDiscount(dc *models.DiscountCode, amount int64) int64 {
	switch dc.DiscountType {
	case models.DiscountTypePercentage:
		discount := int64(float64(amount) * dc.DiscountValue / 100)
		if dc.MaxDiscountAmount != nil && discount > *dc.MaxDiscountAmount {
			discount = *dc.MaxDiscountAmount
		}
		return discount
	case models.DiscountTypeFixedAmount:
		discount := int64(dc.DiscountValue)
		if discount > amount {
			discount = amount
		}
		return discount
	default:
		return 0
	}
}
