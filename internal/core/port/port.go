package port

import (
	"context"

	"github.com/likmaa/ejs-market/internal/core/domain"
)

type closer interface {
	Close()
}

// CartStore tracks the shopper's pending purchase selections.
type CartStore interface {
	Rehydrate(context.Context)
	Lines() []domain.CartLine
	Totals() domain.CartTotals
	Add(line domain.CartLine, quantity int)
	Remove(productID string)
	SetQuantity(productID string, quantity int)
	Clear()
}

// WishlistStore tracks liked-but-not-purchased products.
type WishlistStore interface {
	Rehydrate(context.Context)
	Entries() []domain.WishlistEntry
	Has(productID string) bool
	Add(entry domain.WishlistEntry)
	Remove(productID string)
	Toggle(entry domain.WishlistEntry) (added bool)
	Clear()
}

// ComparisonStore tracks up to four products for side-by-side comparison.
type ComparisonStore interface {
	Rehydrate(context.Context)
	Entries() []domain.ComparisonEntry
	Has(productID string) bool
	Add(entry domain.ComparisonEntry)
	Remove(productID string)
	CanAddMore() bool
	Clear()
}

// SnapshotStorage mirrors container state under fixed keys.
// Read returns nil, nil when the key is absent.
type SnapshotStorage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

type UsersRepository interface {
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	SaveUser(ctx context.Context, u domain.User) error
}

type OrdersRepository interface {
	SaveOrder(ctx context.Context, o domain.Order) error
	OrderByID(ctx context.Context, id string) (domain.Order, error)
}

type OrderPlacer interface {
	PlaceOrder(
		ctx context.Context, draft domain.OrderDraft, authUserID string,
	) (orderID string, err error)
}

type OrderPlacedProducer interface {
	ProduceOrderPlaced(context.Context, domain.Order) error
	closer
}

type OrdersArchiver interface {
	ArchiveOrders(context.Context, []domain.Order) error
}
