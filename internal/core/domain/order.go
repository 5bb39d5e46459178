package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is allowed.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

const PaymentMethodBankTransfer = "bank_transfer"

type (
	Order struct {
		ID            string
		UserID        string
		Status        OrderStatus
		TotalHT       int64
		VATAmount     int64
		TotalTTC      int64
		ShippingCost  int64
		Shipping      ShippingAddress
		PaymentMethod string
		CreatedAt     time.Time
		Lines         []OrderLine
	}

	// ShippingAddress is embedded into the order at creation time,
	// later account address edits never alter historical orders.
	ShippingAddress struct {
		FirstName  string
		LastName   string
		Address    string
		City       string
		PostalCode string
		Country    string
		Phone      string
	}

	OrderLine struct {
		ProductID string
		SKU       string
		Name      string
		PriceHT   int64
		VATRate   float64
		Quantity  int
	}
)

// NewOrderID synthesizes a time-prefixed upper-cased identifier.
// The base-36 millisecond prefix keeps identifiers human-sortable.
func NewOrderID(t time.Time) string {
	prefix := strconv.FormatInt(t.UnixMilli(), 36)
	suffix := uuid.NewString()[:6]
	return strings.ToUpper(prefix + "-" + suffix)
}
