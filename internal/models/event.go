package models

import "time"

// PaidOrderEvent is emitted once per order when its status transitions
// PENDING to PAID. Consumers must tolerate delivery failure; the event is
// never re-emitted.
type PaidOrderEvent struct {
	EventID         string
	CommerceOrder   string
	Amount          int64
	Token           string
	CustomerEmail   string
	ShippingName    string
	ShippingRUT     string
	ShippingAddress string
	ShippingCommune string
	ShippingRegion  string
	ShippingPhone   string
	DiscountCode    string
	Status          string
	FlowStatus      int
	PaidAt          time.Time
}
