package schema

import "github.com/hamba/avro/v2"

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "orders",
	"name": "order_placed",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "user_id", "type": "string"},
		{"name": "status", "type": "string"},
		{"name": "total_ht", "type": "long"},
		{"name": "vat_amount", "type": "long"},
		{"name": "total_ttc", "type": "long"},
		{"name": "shipping_cost", "type": "long"},
		{"name": "payment_method", "type": "string"},
		{"name": "created_at", "type": "long"},
		{"name": "shipping", "type": {
			"type": "record",
			"name": "shipping_address",
			"fields": [
				{"name": "first_name", "type": "string"},
				{"name": "last_name", "type": "string"},
				{"name": "address", "type": "string"},
				{"name": "city", "type": "string"},
				{"name": "postal_code", "type": "string"},
				{"name": "country", "type": "string"},
				{"name": "phone", "type": "string"}
			]
		}},
		{"name": "lines", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_line",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "sku", "type": "string"},
					{"name": "name", "type": "string"},
					{"name": "price_ht", "type": "long"},
					{"name": "vat_rate", "type": "double"},
					{"name": "quantity", "type": "int"}
				]
			}
		}}
	]
}`

type (
	OrderPlacedV1 struct {
		OrderID       string            `avro:"order_id"`
		UserID        string            `avro:"user_id"`
		Status        string            `avro:"status"`
		TotalHT       int64             `avro:"total_ht"`
		VATAmount     int64             `avro:"vat_amount"`
		TotalTTC      int64             `avro:"total_ttc"`
		ShippingCost  int64             `avro:"shipping_cost"`
		PaymentMethod string            `avro:"payment_method"`
		CreatedAt     int64             `avro:"created_at"`
		Shipping      ShippingAddressV1 `avro:"shipping"`
		Lines         []OrderLineV1     `avro:"lines"`
	}

	ShippingAddressV1 struct {
		FirstName  string `avro:"first_name"`
		LastName   string `avro:"last_name"`
		Address    string `avro:"address"`
		City       string `avro:"city"`
		PostalCode string `avro:"postal_code"`
		Country    string `avro:"country"`
		Phone      string `avro:"phone"`
	}

	OrderLineV1 struct {
		ProductID string  `avro:"product_id"`
		SKU       string  `avro:"sku"`
		Name      string  `avro:"name"`
		PriceHT   int64   `avro:"price_ht"`
		VATRate   float64 `avro:"vat_rate"`
		Quantity  int     `avro:"quantity"`
	}
)

// OrderPlacedV1Avro parses the schema text, panics on a broken schema.
func OrderPlacedV1Avro() avro.Schema {
	return avro.MustParse(OrderPlacedSchemaTextV1)
}
