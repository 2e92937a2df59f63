package models

import "time"

// discount type
const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
)

// DiscountCode is standalone discount entity, referenced by code value
// at order creation time.
type DiscountCode struct {
	ID                uint64
	Code              string
	DiscountType      string
	DiscountValue     float64
	IsActive          bool
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	MinPurchaseAmount int64
	UsageLimit        *int64
	TimesUsed         int64
	MaxDiscountAmount *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DiscountValidation is the result of evaluating a code against an amount.
type DiscountValidation struct {
	Code           string
	IsValid        bool
	Reason         string
	DiscountAmount int64
	FinalAmount    int64
}
