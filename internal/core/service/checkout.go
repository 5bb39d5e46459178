package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

var _ port.OrderPlacer = (*CheckoutService)(nil)

// A CheckoutService converts a submitted cart snapshot into a
// persisted order, resolving the caller identity first.
type CheckoutService struct {
	users    port.UsersRepository
	orders   port.OrdersRepository
	producer port.OrderPlacedProducer
}

// NewCheckoutService constructs the service.
// The producer may be nil, order placement then skips publication.
func NewCheckoutService(
	users port.UsersRepository,
	orders port.OrdersRepository,
	producer port.OrderPlacedProducer,
) CheckoutService {
	return CheckoutService{users, orders, producer}
}

// PlaceOrder validates the draft, resolves the owner identity and
// persists the order header with all lines in a single transaction.
// The caller-supplied totals are stored as submitted, rounded to
// integer minor units; they are not recomputed from the lines.
func (s CheckoutService) PlaceOrder(
	ctx context.Context, draft domain.OrderDraft, authUserID string,
) (string, error) {
	const op = "CheckoutService.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := validateDraft(draft); err != nil {
		return "", err
	}

	identity, err := s.resolveIdentity(ctx, draft, authUserID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	order := s.buildOrder(draft, identity)

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.publishPlaced(ctx, order, log)

	return order.ID, nil
}

// resolveIdentity picks the order owner, in this exact precedence:
// the authenticated session, an existing account matched by email,
// or a freshly created passwordless customer account.
func (s CheckoutService) resolveIdentity(
	ctx context.Context, draft domain.OrderDraft, authUserID string,
) (domain.Identity, error) {
	if authUserID != "" {
		return domain.Identity{
			Kind: domain.IdentityAuthenticated,
			User: domain.User{ID: authUserID},
		}, nil
	}

	email := normalizeEmail(draft.Email)

	u, err := s.users.UserByEmail(ctx, email)
	if err == nil {
		return domain.Identity{
			Kind: domain.IdentityExistingAccount,
			User: u,
		}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.Identity{}, err
	}

	u = domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Role:      domain.RoleCustomer,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.SaveUser(ctx, u); err != nil {
		return domain.Identity{}, err
	}

	return domain.Identity{Kind: domain.IdentityNewAccount, User: u}, nil
}

func (s CheckoutService) buildOrder(
	draft domain.OrderDraft, identity domain.Identity,
) domain.Order {
	now := time.Now().UTC()

	paymentMethod := draft.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodBankTransfer
	}

	lines := make([]domain.OrderLine, len(draft.Items))
	for i, it := range draft.Items {
		lines[i] = domain.OrderLine{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			PriceHT:   roundMinor(it.PriceHT),
			VATRate:   it.VATRate,
			Quantity:  it.Quantity,
		}
	}

	return domain.Order{
		ID:            domain.NewOrderID(now),
		UserID:        identity.User.ID,
		Status:        domain.OrderStatusPending,
		TotalHT:       roundMinor(draft.TotalHT),
		VATAmount:     roundMinor(draft.VATAmount),
		TotalTTC:      roundMinor(draft.TotalTTC),
		ShippingCost:  roundMinor(draft.ShippingCost),
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		Shipping: domain.ShippingAddress{
			FirstName:  draft.FirstName,
			LastName:   draft.LastName,
			Address:    draft.Address,
			City:       draft.City,
			PostalCode: draft.PostalCode,
			Country:    draft.Country,
			Phone:      draft.Phone,
		},
		Lines: lines,
	}
}

// publishPlaced is best-effort, a broker failure never fails
// an already committed order.
func (s CheckoutService) publishPlaced(
	ctx context.Context, order domain.Order, log *slog.Logger,
) {
	if s.producer == nil {
		return
	}
	if err := s.producer.ProduceOrderPlaced(ctx, order); err != nil {
		log.Error("failed to publish placed order",
			"orderID", order.ID, "err", err)
	}
}

func validateDraft(draft domain.OrderDraft) error {
	var vErr domain.ValidationError

	required := []struct {
		field, value string
	}{
		{"email", draft.Email},
		{"firstName", draft.FirstName},
		{"lastName", draft.LastName},
		{"address", draft.Address},
		{"city", draft.City},
		{"postalCode", draft.PostalCode},
		{"country", draft.Country},
		{"phone", draft.Phone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			vErr.Add(r.field, "required")
		}
	}

	if len(draft.Items) == 0 {
		vErr.Add("items", "at least one item is required")
	}
	for i, it := range draft.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			vErr.Add(itemField(i, "productId"), "required")
		}
		if strings.TrimSpace(it.SKU) == "" {
			vErr.Add(itemField(i, "sku"), "required")
		}
		if strings.TrimSpace(it.Name) == "" {
			vErr.Add(itemField(i, "name"), "required")
		}
		if it.Quantity < 1 {
			vErr.Add(itemField(i, "quantity"), "must be positive")
		}
		if it.PriceHT < 0 {
			vErr.Add(itemField(i, "priceHT"), "must not be negative")
		}
		if it.VATRate < 0 || it.VATRate > 1 {
			vErr.Add(itemField(i, "vatRate"), "must be a fraction 0..1")
		}
	}

	if vErr.Empty() {
		return nil
	}
	return &vErr
}

func itemField(i int, name string) string {
	return fmt.Sprintf("items[%d].%s", i, name)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func roundMinor(v float64) int64 {
	return int64(math.Round(v))
}
