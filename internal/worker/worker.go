package worker

import (
	"context"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/fungigrow/storeapi/internal/notify"
	"go.uber.org/zap"
)

// NotificationProcessor is worker delivering paid-order events to the
// configured dispatchers
type NotificationProcessor struct {
	dispatchers []notify.Dispatcher
	logger      *zap.Logger
}

// NewNotificationProcessor creates new notification processor
func NewNotificationProcessor(dispatchers []notify.Dispatcher, logger *zap.Logger) *NotificationProcessor {
	return &NotificationProcessor{
		dispatchers: dispatchers,
		logger:      logger,
	}
}

// ProcessEvents consumes paid-order events until the context is cancelled.
// Each dispatcher failure is logged and dropped; events are never retried.
func (np *NotificationProcessor) ProcessEvents(ctx context.Context, events <-chan models.PaidOrderEvent) {
	for {
		select {
		case <-ctx.Done():
			np.logger.Debug("notification processor is done")
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			for _, dispatcher := range np.dispatchers {
				if err := dispatcher.Dispatch(ctx, event); err != nil {
					np.logger.Error("dispatch paid-order event",
						zap.String("dispatcher", dispatcher.Name()),
						zap.String("event_id", event.EventID),
						zap.String("commerce_order", event.CommerceOrder),
						zap.Error(err))
					continue
				}
				np.logger.Debug("paid-order event dispatched",
					zap.String("dispatcher", dispatcher.Name()),
					zap.String("commerce_order", event.CommerceOrder))
			}
		}
	}
}
