package domain

import (
	"fmt"
	"strings"
)

// OrderDraft is the checkout input: contact and shipping fields,
// the submitted cart snapshot and caller-supplied aggregate totals.
// Monetary fields are rounded to integer minor units before storage.
type (
	OrderDraft struct {
		Email         string
		FirstName     string
		LastName      string
		Address       string
		City          string
		PostalCode    string
		Country       string
		Phone         string
		PaymentMethod string
		Items         []DraftItem
		TotalHT       float64
		TotalTTC      float64
		VATAmount     float64
		ShippingCost  float64
	}

	DraftItem struct {
		ProductID string
		SKU       string
		Name      string
		PriceHT   float64
		VATRate   float64
		Quantity  int
	}
)

type FieldError struct {
	Field  string
	Reason string
}

// ValidationError carries field-level detail for caller-correctable input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}
