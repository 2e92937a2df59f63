package repository

import (
	"context"
	"errors"

	"github.com/fungigrow/storeapi/internal/models"
	"github.com/fungigrow/storeapi/internal/repository/postgres"
	"github.com/jackc/pgx/v5"
)

const (
	discountColumns = `id, code, discount_type, discount_value, is_active,
						valid_from, valid_until, min_purchase_amount, usage_limit,
						times_used, max_discount_amount, created_at, updated_at`

	selectDiscountByCodeQuery = `
						SELECT ` + discountColumns + ` FROM discount_codes
						WHERE code = $1
`
)

// DiscountRepository provides access to discount code rows
type DiscountRepository struct {
	db *postgres.DB
}

// NewDiscountRepository creates new DiscountRepository instance
func NewDiscountRepository(db *postgres.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

// GetDiscountByCode returns discount code by its code value
func (dr *DiscountRepository) GetDiscountByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	dc := models.DiscountCode{}
	err := dr.db.QueryRow(ctx, selectDiscountByCodeQuery, code).Scan(
		&dc.ID, &dc.Code, &dc.DiscountType, &dc.DiscountValue, &dc.IsActive,
		&dc.ValidFrom, &dc.ValidUntil, &dc.MinPurchaseAmount, &dc.UsageLimit,
		&dc.TimesUsed, &dc.MaxDiscountAmount, &dc.CreatedAt, &dc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &dc, nil
}
