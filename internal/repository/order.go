package repository

import (
	"context"
	"errors"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/fungigrow/storeapi/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
)

const pgErrUniqueViolationCode = "23505"

const (
	orderColumns = `id, commerce_order, amount, status, flow_token, return_url,
						shipping_name, shipping_rut, shipping_address, shipping_commune,
						shipping_region, shipping_phone, customer_email, discount_code,
						created_at, updated_at`

	insertOrderQuery = `
						INSERT INTO orders (commerce_order, amount, status, return_url,
							shipping_name, shipping_rut, shipping_address, shipping_commune,
							shipping_region, shipping_phone, customer_email, discount_code)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
						RETURNING ` + orderColumns

	selectOrderByCommerceOrderQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE commerce_order = $1
`
	selectOrderByTokenQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE flow_token = $1
`
	selectOrderByEmailQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE customer_email = $1
						ORDER BY created_at DESC
`
	selectOrderByPhoneQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE shipping_phone = $1
						ORDER BY created_at DESC
`
	selectOrderForUpdateQuery = `
						SELECT ` + orderColumns + ` FROM orders
						WHERE commerce_order = $1
						FOR UPDATE
`
	updateOrderStatusQuery = `
						UPDATE orders
						SET status = $1, updated_at = now()
						WHERE commerce_order = $2
`
	updateOrderTokenQuery = `
						UPDATE orders
						SET flow_token = $1, updated_at = now()
						WHERE commerce_order = $2 AND flow_token IS NULL
`
	incrementDiscountUsageQuery = `
						UPDATE discount_codes
						SET times_used = times_used + 1, updated_at = now()
						WHERE code = $1
`
)

// OrderRepository provides access to order rows
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row, order *models.Order) error {
	return row.Scan(&order.ID, &order.CommerceOrder, &order.Amount, &order.Status,
		&order.FlowToken, &order.ReturnURL, &order.ShippingName, &order.ShippingRUT,
		&order.ShippingAddress, &order.ShippingCommune, &order.ShippingRegion,
		&order.ShippingPhone, &order.CustomerEmail, &order.DiscountCode,
		&order.CreatedAt, &order.UpdatedAt)
}

// CreateOrder inserts new order to database
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	row := or.db.QueryRow(ctx, insertOrderQuery,
		order.CommerceOrder, order.Amount, order.Status, order.ReturnURL,
		order.ShippingName, order.ShippingRUT, order.ShippingAddress,
		order.ShippingCommune, order.ShippingRegion, order.ShippingPhone,
		order.CustomerEmail, order.DiscountCode)
	if err := scanOrder(row, order); err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return order, nil
}

// GetOrderByCommerceOrder returns order by commerce order id
func (or *OrderRepository) GetOrderByCommerceOrder(ctx context.Context, commerceOrder string) (*models.Order, error) {
	order := models.Order{}
	if err := scanOrder(or.db.QueryRow(ctx, selectOrderByCommerceOrderQuery, commerceOrder), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrderByToken returns order by flow token
func (or *OrderRepository) GetOrderByToken(ctx context.Context, token string) (*models.Order, error) {
	order := models.Order{}
	if err := scanOrder(or.db.QueryRow(ctx, selectOrderByTokenQuery, token), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// SearchOrders returns orders matching the filter. The result may be empty.
func (or *OrderRepository) SearchOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if filter.CommerceOrder != "" {
		order, err := or.GetOrderByCommerceOrder(ctx, filter.CommerceOrder)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				return []models.Order{}, nil
			}
			return nil, err
		}
		return []models.Order{*order}, nil
	}

	query := selectOrderByEmailQuery
	arg := filter.Email
	if filter.Email == "" {
		query = selectOrderByPhoneQuery
		arg = filter.Phone
	}

	rows, err := or.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		if err := scanOrder(rows, &order); err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// SetOrderToken stores the provider token on the order if not already set
func (or *OrderRepository) SetOrderToken(ctx context.Context, commerceOrder, token string) error {
	_, err := or.db.Exec(ctx, updateOrderTokenQuery, token, commerceOrder)
	return err
}

// UpdateOrderStatus updates order status
func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, commerceOrder, status string) error {
	cmd, err := or.db.Exec(ctx, updateOrderStatusQuery, status, commerceOrder)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// ApplyConfirmation performs the confirmation critical section: it locks the
// order row, backfills the token when still unset, and writes the new status
// only if the current status is PENDING. Terminal states are never
// overwritten. When the transition is PENDING to PAID and the order carries a
// discount code, the code usage counter is incremented in the same
// transaction.
func (or *OrderRepository) ApplyConfirmation(ctx context.Context, commerceOrder, token, status string) (*models.Confirmation, error) {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	order := models.Order{}
	if err := scanOrder(tx.QueryRow(ctx, selectOrderForUpdateQuery, commerceOrder), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	if order.FlowToken == nil && token != "" {
		if _, err := tx.Exec(ctx, updateOrderTokenQuery, token, commerceOrder); err != nil {
			return nil, err
		}
		order.FlowToken = &token
	}

	transitioned := false
	if !order.IsTerminal() && status != models.OrderStatusPending {
		if _, err := tx.Exec(ctx, updateOrderStatusQuery, status, commerceOrder); err != nil {
			return nil, err
		}
		if status == models.OrderStatusPaid && order.DiscountCode != nil {
			if _, err := tx.Exec(ctx, incrementDiscountUsageQuery, *order.DiscountCode); err != nil {
				return nil, err
			}
		}
		order.Status = status
		transitioned = true
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.Confirmation{Order: order, Transitioned: transitioned}, nil
}
