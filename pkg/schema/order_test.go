package schema_test

import (
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/likmaa/ejs-market/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderPlacedStub() schema.OrderPlacedV1 {
	return schema.OrderPlacedV1{
		OrderID:       "MFZZAB12-A1B2C3",
		UserID:        "user-42",
		Status:        "PENDING",
		TotalHT:       20000,
		VATAmount:     4000,
		TotalTTC:      24000,
		ShippingCost:  500,
		PaymentMethod: "bank_transfer",
		CreatedAt:     time.Now().UnixMilli(),
		Shipping: schema.ShippingAddressV1{
			FirstName:  "Jean",
			LastName:   "Dupont",
			Address:    "1 rue de la Paix",
			City:       "Paris",
			PostalCode: "75002",
			Country:    "FR",
			Phone:      "+33100000000",
		},
		Lines: []schema.OrderLineV1{
			{
				ProductID: "1",
				SKU:       "SKU-1",
				Name:      "product 1",
				PriceHT:   10000,
				VATRate:   0.2,
				Quantity:  2,
			},
		},
	}
}

func TestOrderPlacedV1(t *testing.T) {

	t.Run("SchemaParses", func(t *testing.T) {
		require.NotPanics(t, func() {
			schema.OrderPlacedV1Avro()
		})
	})

	t.Run("MarshalUnmarshal", func(t *testing.T) {
		avroSchema := schema.OrderPlacedV1Avro()
		value := orderPlacedStub()

		data, err := avro.Marshal(avroSchema, value)
		require.NoError(t, err)

		var got schema.OrderPlacedV1
		require.NoError(t, avro.Unmarshal(avroSchema, data, &got))
		assert.Equal(t, value, got)
	})
}
