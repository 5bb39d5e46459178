package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

var _ port.OrdersRepository = (*OrdersRepository)(nil)

type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

// SaveOrder persists the order header and all lines in one
// transaction. A failure on any row aborts the whole write,
// a header without lines is never observable.
func (r OrdersRepository) SaveOrder(
	ctx context.Context, v domain.Order,
) (saveErr error) {
	const op = "OrdersRepository.SaveOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if saveErr == nil {
			if err := tx.Commit(); err != nil {
				saveErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		err := tx.Rollback()
		if err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	headerQuery := `
		INSERT INTO orders (
			id, user_id, status,
			total_ht, vat_amount, total_ttc, shipping_cost,
			ship_first_name, ship_last_name, ship_address, ship_city,
			ship_postal_code, ship_country, ship_phone,
			payment_method, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`

	_, err = tx.ExecContext(ctx, headerQuery,
		v.ID, v.UserID, v.Status,
		v.TotalHT, v.VATAmount, v.TotalTTC, v.ShippingCost,
		v.Shipping.FirstName, v.Shipping.LastName, v.Shipping.Address,
		v.Shipping.City, v.Shipping.PostalCode, v.Shipping.Country,
		v.Shipping.Phone,
		v.PaymentMethod, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to insert header: %w", op, err)
	}

	lineQuery := `
		INSERT INTO order_lines (
			order_id, product_id, sku, name, price_ht, vat_rate, quantity
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	stmt, err := tx.PrepareContext(ctx, lineQuery)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, l := range v.Lines {
		_, err := stmt.ExecContext(ctx,
			v.ID, l.ProductID, l.SKU, l.Name,
			l.PriceHT, l.VATRate, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to insert line: %w", op, err)
		}
	}

	return nil
}

func (r OrdersRepository) OrderByID(
	ctx context.Context, id string,
) (domain.Order, error) {
	const op = "OrdersRepository.OrderByID"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	headerQuery := `
		SELECT
			id, user_id, status,
			total_ht, vat_amount, total_ttc, shipping_cost,
			ship_first_name, ship_last_name, ship_address, ship_city,
			ship_postal_code, ship_country, ship_phone,
			payment_method, created_at
		FROM orders
		WHERE id = $1;`

	var v domain.Order
	err := r.sqldb.QueryRowContext(ctx, headerQuery, id).Scan(
		&v.ID, &v.UserID, &v.Status,
		&v.TotalHT, &v.VATAmount, &v.TotalTTC, &v.ShippingCost,
		&v.Shipping.FirstName, &v.Shipping.LastName, &v.Shipping.Address,
		&v.Shipping.City, &v.Shipping.PostalCode, &v.Shipping.Country,
		&v.Shipping.Phone,
		&v.PaymentMethod, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, fmt.Errorf(
				"%s: %w", op, domain.ErrOrderNotFound,
			)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	lines, err := r.readLines(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	v.Lines = lines

	return v, nil
}

func (r OrdersRepository) readLines(
	ctx context.Context, orderID string,
) ([]domain.OrderLine, error) {
	query := `
		SELECT product_id, sku, name, price_ht, vat_rate, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		err := rows.Scan(
			&l.ProductID, &l.SKU, &l.Name,
			&l.PriceHT, &l.VATRate, &l.Quantity,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}
