package models

import "time"

//PENDING — order created locally, awaiting confirmation from Flow;
//PAID — Flow confirmed the payment, order goes to fulfillment;
//REJECTED — payment was rejected or voided;
//ERROR — Flow reported a status code we do not recognize.

// order status
const (
	OrderStatusPending  = "PENDING"
	OrderStatusPaid     = "PAID"
	OrderStatusRejected = "REJECTED"
	OrderStatusError    = "ERROR"
)

// Order is purchase attempt entity. One row per commerce order.
type Order struct {
	ID              uint64
	CommerceOrder   string
	Amount          int64
	Status          string
	FlowToken       *string
	ReturnURL       string
	ShippingName    string
	ShippingRUT     string
	ShippingAddress string
	ShippingCommune string
	ShippingRegion  string
	ShippingPhone   string
	CustomerEmail   string
	DiscountCode    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTerminal reports whether no further status transition is permitted.
func (o *Order) IsTerminal() bool {
	return o.Status != OrderStatusPending
}

// OrderFilter is alternate-key order lookup criteria.
type OrderFilter struct {
	CommerceOrder string
	Email         string
	Phone         string
}

// Confirmation is the outcome of a row-locked confirmation attempt.
// Transitioned is true only when the status was written by this attempt.
type Confirmation struct {
	Order        Order
	Transitioned bool
}
