package schema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/likmaa/ejs-market/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (m *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (int, error) {
	args := m.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestNewSerdeOrderPlacedV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(t.Context())
		require.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		si := new(MockSchemaIdentifier)

		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(si),
		)
		require.Error(t, err)
	})

	t.Run("IdentifierFailure", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On("DetermineID", mock.Anything, "orders.placed-value", mock.Anything).
			Return(0, errors.New("registry is unavailable"))

		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt("orders.placed-value"),
			schema.SchemaIdentifierOpt(si),
		)
		require.Error(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		si := new(MockSchemaIdentifier)
		si.On(
			"DetermineID",
			mock.Anything,
			"orders.placed-value",
			schema.OrderPlacedSchemaTextV1,
		).Return(1, nil)

		serde, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt("orders.placed-value"),
			schema.SchemaIdentifierOpt(si),
		)
		require.NoError(t, err)

		value := orderPlacedStub()
		data, err := serde.Encode(value)
		require.NoError(t, err)

		var got schema.OrderPlacedV1
		require.NoError(t, serde.Decode(data, &got))
		assert.Equal(t, value, got)
	})
}
