package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/colinmarc/hdfs/v2"
	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
	"github.com/likmaa/ejs-market/pkg/retry"
)

type (
	archivedOrder struct {
		OrderID       string              `json:"order_id"`
		UserID        string              `json:"user_id"`
		Status        string              `json:"status"`
		TotalHT       int64               `json:"total_ht"`
		VATAmount     int64               `json:"vat_amount"`
		TotalTTC      int64               `json:"total_ttc"`
		ShippingCost  int64               `json:"shipping_cost"`
		PaymentMethod string              `json:"payment_method"`
		CreatedAt     time.Time           `json:"created_at"`
		Lines         []archivedOrderLine `json:"lines"`
	}

	archivedOrderLine struct {
		ProductID string  `json:"product_id"`
		SKU       string  `json:"sku"`
		Name      string  `json:"name"`
		PriceHT   int64   `json:"price_ht"`
		VATRate   float64 `json:"vat_rate"`
		Quantity  int     `json:"quantity"`
	}
)

type hdfsStorage interface {
	Append(name string) (*hdfs.FileWriter, error)
	Create(name string) (*hdfs.FileWriter, error)
}

var _ port.OrdersArchiver = (*OrdersArchive)(nil)

// An OrdersArchive appends placed orders as JSON rows
// to a per-day HDFS file.
type OrdersArchive struct {
	hdfs hdfsStorage
}

func NewOrdersArchive(hdfs hdfsStorage) OrdersArchive {
	return OrdersArchive{hdfs}
}

func (a OrdersArchive) ArchiveOrders(
	ctx context.Context, vs []domain.Order,
) error {
	const op = "OrdersArchive.ArchiveOrders"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	filepath := a.getFileName(time.Now().UTC())

	w, err := a.createWriter(filepath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = a.saveOrders(w, vs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = a.closeWriter(ctx, w)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (a OrdersArchive) getFileName(t time.Time) string {
	return "/orders/" + t.Format("2006-01-02")
}

func (a OrdersArchive) createWriter(filepath string) (io.WriteCloser, error) {
	w, err := a.hdfs.Append(filepath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		w, err = a.hdfs.Create(filepath)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (a OrdersArchive) saveOrders(
	w io.WriteCloser, vs []domain.Order,
) error {
	for _, v := range vs {
		err := json.NewEncoder(w).Encode(a.toArchived(v))
		if err != nil {
			return err
		}
	}
	return nil
}

func (a OrdersArchive) closeWriter(ctx context.Context, w io.WriteCloser) error {
	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.LineareBackoff(50 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, hdfs.ErrReplicating)
		},
	}

	err := retry.Do(ctx, retryCfg, w.Close)
	if err != nil {
		return err
	}

	return nil
}

func (a OrdersArchive) toArchived(v domain.Order) (s archivedOrder) {
	s.OrderID = v.ID
	s.UserID = v.UserID
	s.Status = string(v.Status)
	s.TotalHT = v.TotalHT
	s.VATAmount = v.VATAmount
	s.TotalTTC = v.TotalTTC
	s.ShippingCost = v.ShippingCost
	s.PaymentMethod = v.PaymentMethod
	s.CreatedAt = v.CreatedAt

	s.Lines = make([]archivedOrderLine, len(v.Lines))
	for i, l := range v.Lines {
		s.Lines[i] = archivedOrderLine{
			ProductID: l.ProductID,
			SKU:       l.SKU,
			Name:      l.Name,
			PriceHT:   l.PriceHT,
			VATRate:   l.VATRate,
			Quantity:  l.Quantity,
		}
	}
	return s
}
