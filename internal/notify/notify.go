// Package notify delivers paid-order notifications. Delivery is
// fire-and-forget: a failed dispatcher is logged and skipped, and no failure
// ever reaches the order transaction that produced the event.
package notify

import (
	"context"

	"github.com/fungigrow/storeapi/internal/models"
)

// Dispatcher delivers a paid-order event to one consumer
type Dispatcher interface {
	// Name identifies the dispatcher in logs
	Name() string
	// Dispatch delivers the event
	Dispatch(ctx context.Context, event models.PaidOrderEvent) error
}
