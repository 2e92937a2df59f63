package service

import (
	"context"
	"errors"
	"time"

	"github.com/fungigrow/storeapi/internal/flow"
	"github.com/fungigrow/storeapi/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// currency of the store; Flow is integrated for CLP only
const currency = "CLP"

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order to database
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByCommerceOrder returns order by commerce order id
	GetOrderByCommerceOrder(ctx context.Context, commerceOrder string) (*models.Order, error)
	// GetOrderByToken returns order by flow token
	GetOrderByToken(ctx context.Context, token string) (*models.Order, error)
	// SearchOrders returns orders matching the filter
	SearchOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	// SetOrderToken stores the provider token on the order if not already set
	SetOrderToken(ctx context.Context, commerceOrder, token string) error
	// UpdateOrderStatus updates order status
	UpdateOrderStatus(ctx context.Context, commerceOrder, status string) error
	// ApplyConfirmation performs the row-locked confirmation critical section
	ApplyConfirmation(ctx context.Context, commerceOrder, token, status string) (*models.Confirmation, error)
}

// FlowClient is interface for calls to the Flow payment API
type FlowClient interface {
	// CreatePayment registers a payment with Flow and returns the handoff
	CreatePayment(ctx context.Context, req *flow.CreatePaymentRequest) (*flow.Payment, error)
	// GetStatus returns the authoritative payment status for a token
	GetStatus(ctx context.Context, token string) (*flow.PaymentStatus, error)
}

// CreatePaymentParams is the payment initiation input
type CreatePaymentParams struct {
	Amount          int64
	CommerceOrder   string
	Subject         string
	ReturnURL       string
	CustomerEmail   string
	ShippingName    string
	ShippingRUT     string
	ShippingAddress string
	ShippingCommune string
	ShippingRegion  string
	ShippingPhone   string
	DiscountCode    string
}

// CreatePaymentResult is the payment initiation outcome
type CreatePaymentResult struct {
	RedirectURL string
	Token       string
}

// CallbackResult is the user-return outcome carried back to the storefront.
// Status is one of success, failure, pending, error.
type CallbackResult struct {
	OrderID string
	Status  string
	Message string
}

// PaymentService drives order lifecycle against the Flow provider
type PaymentService struct {
	repo      OrderRepository
	client    FlowClient
	discounts *DiscountService
	publicURL string
	events    chan<- models.PaidOrderEvent
	logger    *zap.Logger
}

// NewPaymentService creates new PaymentService instance
func NewPaymentService(repo OrderRepository, client FlowClient, discounts *DiscountService, publicURL string, events chan<- models.PaidOrderEvent, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		repo:      repo,
		client:    client,
		discounts: discounts,
		publicURL: publicURL,
		events:    events,
		logger:    logger,
	}
}

// mapFlowStatus maps a Flow numeric status code to the local order status.
func mapFlowStatus(status int) string {
	switch status {
	case flow.StatusPending:
		return models.OrderStatusPending
	case flow.StatusPaid:
		return models.OrderStatusPaid
	case flow.StatusRejected, flow.StatusVoided:
		return models.OrderStatusRejected
	default:
		return models.OrderStatusError
	}
}

// CreatePayment creates a local PENDING order and registers the payment with
// Flow. The confirmation and return URLs sent to Flow always point back at
// this service, never at the caller's return URL, so Flow calls back here
// first. Note: the discount code is re-validated against the final discounted
// amount since the undiscounted subtotal is not part of the request.
func (ps *PaymentService) CreatePayment(ctx context.Context, params *CreatePaymentParams) (*CreatePaymentResult, error) {
	if params.Amount <= 0 {
		return nil, models.ErrInvalidAmount
	}
	if params.CommerceOrder == "" || params.Subject == "" || params.ReturnURL == "" || params.CustomerEmail == "" {
		return nil, models.ErrMissingFields
	}

	order := models.Order{
		CommerceOrder:   params.CommerceOrder,
		Amount:          params.Amount,
		Status:          models.OrderStatusPending,
		ReturnURL:       params.ReturnURL,
		ShippingName:    params.ShippingName,
		ShippingRUT:     params.ShippingRUT,
		ShippingAddress: params.ShippingAddress,
		ShippingCommune: params.ShippingCommune,
		ShippingRegion:  params.ShippingRegion,
		ShippingPhone:   params.ShippingPhone,
		CustomerEmail:   params.CustomerEmail,
	}

	if params.DiscountCode != "" {
		validation, err := ps.discounts.Validate(ctx, params.DiscountCode, params.Amount)
		if err == nil && validation.IsValid {
			order.DiscountCode = &params.DiscountCode
		} else {
			reason := ""
			if validation != nil {
				reason = validation.Reason
			}
			ps.logger.Warn("discount code failed re-validation, order proceeds without it",
				zap.String("code", params.DiscountCode),
				zap.String("commerce_order", params.CommerceOrder),
				zap.String("reason", reason))
		}
	}

	if _, err := ps.repo.CreateOrder(ctx, &order); err != nil {
		return nil, err
	}

	payment, err := ps.client.CreatePayment(ctx, &flow.CreatePaymentRequest{
		CommerceOrder:   params.CommerceOrder,
		Amount:          params.Amount,
		Subject:         params.Subject,
		Email:           params.CustomerEmail,
		Currency:        currency,
		URLConfirmation: ps.publicURL + "/api/confirm-payment/",
		URLReturn:       ps.publicURL + "/payment/flow-callback/",
	})
	if err != nil {
		if updErr := ps.repo.UpdateOrderStatus(ctx, params.CommerceOrder, models.OrderStatusRejected); updErr != nil {
			ps.logger.Error("mark order rejected after create failure",
				zap.String("commerce_order", params.CommerceOrder), zap.Error(updErr))
		}
		return nil, err
	}

	if err := ps.repo.SetOrderToken(ctx, params.CommerceOrder, payment.Token); err != nil {
		ps.logger.Error("persist flow token",
			zap.String("commerce_order", params.CommerceOrder), zap.Error(err))
	}

	return &CreatePaymentResult{
		RedirectURL: payment.RedirectURL(),
		Token:       payment.Token,
	}, nil
}

// Confirm handles the Flow server-to-server confirmation. The POST body is
// never trusted beyond the token: the authoritative status is re-queried via
// a signed getStatus call. The status write happens inside a row-locked
// transaction, and the paid-order event fires only when this call performed
// the PENDING to PAID transition.
func (ps *PaymentService) Confirm(ctx context.Context, token string) error {
	if token == "" {
		return models.ErrMissingToken
	}

	status, err := ps.client.GetStatus(ctx, token)
	if err != nil {
		return err
	}

	if status.CommerceOrder == "" {
		// cannot correlate without the merchant order id; acknowledge so
		// Flow does not retry forever
		ps.logger.Error("flow status response without commerceOrder",
			zap.String("token", token), zap.Int("flow_status", status.Status))
		return nil
	}

	localStatus := mapFlowStatus(status.Status)
	if localStatus == models.OrderStatusError {
		ps.logger.Error("unexpected flow status code",
			zap.String("commerce_order", status.CommerceOrder),
			zap.Int("flow_status", status.Status))
	}

	conf, err := ps.repo.ApplyConfirmation(ctx, status.CommerceOrder, token, localStatus)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			// Flow confirmed an order this service never created
			ps.logger.Error("flow confirmed unknown order",
				zap.String("commerce_order", status.CommerceOrder),
				zap.String("token", token))
			return nil
		}
		return err
	}

	ps.logger.Info("order confirmation processed",
		zap.String("commerce_order", status.CommerceOrder),
		zap.String("status", conf.Order.Status),
		zap.Bool("transitioned", conf.Transitioned))

	if conf.Transitioned && conf.Order.Status == models.OrderStatusPaid {
		ps.emitPaidEvent(&conf.Order, token, status.Status)
	}

	return nil
}

// Return handles the payer browser coming back from Flow. It is advisory:
// it re-queries the provider like the webhook does, updates the order only
// while it is still PENDING, and always produces a storefront redirect
// outcome, never an API error.
func (ps *PaymentService) Return(ctx context.Context, token string) *CallbackResult {
	if token == "" {
		return &CallbackResult{Status: "error", Message: "Falta el token de pago."}
	}

	orderID := ""
	if order, err := ps.repo.GetOrderByToken(ctx, token); err == nil {
		orderID = order.CommerceOrder
	}

	status, err := ps.client.GetStatus(ctx, token)
	if err != nil {
		ps.logger.Error("flow status query on return path", zap.String("token", token), zap.Error(err))
		return &CallbackResult{
			OrderID: orderID,
			Status:  "error",
			Message: "No pudimos verificar el estado de tu pago. Intenta nuevamente más tarde.",
		}
	}

	if status.CommerceOrder != "" {
		orderID = status.CommerceOrder
	}

	localStatus := mapFlowStatus(status.Status)

	if status.CommerceOrder != "" {
		conf, err := ps.repo.ApplyConfirmation(ctx, status.CommerceOrder, token, localStatus)
		if err != nil {
			ps.logger.Error("apply confirmation on return path",
				zap.String("commerce_order", status.CommerceOrder), zap.Error(err))
		} else if conf.Transitioned && conf.Order.Status == models.OrderStatusPaid {
			ps.emitPaidEvent(&conf.Order, token, status.Status)
		}
	}

	switch localStatus {
	case models.OrderStatusPaid:
		return &CallbackResult{OrderID: orderID, Status: "success", Message: "¡Pago confirmado! Gracias por tu compra."}
	case models.OrderStatusRejected:
		message := "El pago fue rechazado o anulado."
		if status.UserMessage != "" {
			message = status.UserMessage
		}
		return &CallbackResult{OrderID: orderID, Status: "failure", Message: message}
	case models.OrderStatusPending:
		return &CallbackResult{OrderID: orderID, Status: "pending", Message: "Tu pago está siendo procesado."}
	default:
		return &CallbackResult{OrderID: orderID, Status: "error", Message: "No pudimos determinar el estado de tu pago."}
	}
}

// GetOrderStatusByToken returns the local order status for a flow token
func (ps *PaymentService) GetOrderStatusByToken(ctx context.Context, token string) (string, error) {
	order, err := ps.repo.GetOrderByToken(ctx, token)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// QueryOrders returns orders matching an alternate-key filter
func (ps *PaymentService) QueryOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	return ps.repo.SearchOrders(ctx, filter)
}

// emitPaidEvent publishes the paid-order event without blocking the
// confirming request. A full buffer drops the event with a log entry;
// notification delivery must never affect the order transaction.
func (ps *PaymentService) emitPaidEvent(order *models.Order, token string, flowStatus int) {
	discountCode := ""
	if order.DiscountCode != nil {
		discountCode = *order.DiscountCode
	}

	event := models.PaidOrderEvent{
		EventID:         uuid.NewString(),
		CommerceOrder:   order.CommerceOrder,
		Amount:          order.Amount,
		Token:           token,
		CustomerEmail:   order.CustomerEmail,
		ShippingName:    order.ShippingName,
		ShippingRUT:     order.ShippingRUT,
		ShippingAddress: order.ShippingAddress,
		ShippingCommune: order.ShippingCommune,
		ShippingRegion:  order.ShippingRegion,
		ShippingPhone:   order.ShippingPhone,
		DiscountCode:    discountCode,
		Status:          order.Status,
		FlowStatus:      flowStatus,
		PaidAt:          time.Now(),
	}

	select {
	case ps.events <- event:
	default:
		ps.logger.Error("paid-order event buffer full, event dropped",
			zap.String("commerce_order", order.CommerceOrder),
			zap.String("event_id", event.EventID))
	}
}
