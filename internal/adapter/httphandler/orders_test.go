package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/likmaa/ejs-market/internal/adapter/httphandler"
	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) PlaceOrder(
	ctx context.Context, draft domain.OrderDraft, authUserID string,
) (string, error) {
	args := m.Called(ctx, draft, authUserID)
	return args.String(0), args.Error(1)
}

const checkoutBody = `{
  "email": "shopper@example.com",
  "firstName": "Jean",
  "lastName": "Dupont",
  "address": "1 rue de la Paix",
  "city": "Paris",
  "postalCode": "75002",
  "country": "FR",
  "phone": "+33100000000",
  "items": [
    {"productId": "1", "sku": "SKU-1", "name": "product 1",
     "priceHT": 10000, "vatRate": 0.2, "quantity": 2}
  ],
  "totalHT": 20000,
  "vatAmount": 4000,
  "totalTTC": 24000
}`

func newOrdersServer(placer *MockOrderPlacer) *httptest.Server {
	mux := http.NewServeMux()
	httphandler.RegisterOrders(mux, placer)
	return httptest.NewServer(mux)
}

func TestPostOrder(t *testing.T) {

	t.Run("Created", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		server := newOrdersServer(placer)
		defer server.Close()

		var draft domain.OrderDraft
		placer.On("PlaceOrder", mock.Anything, mock.Anything, "").
			Run(func(args mock.Arguments) {
				draft = args.Get(1).(domain.OrderDraft)
			}).
			Return("MFZZAB12-A1B2C3", nil)

		res, err := http.Post(
			server.URL+"/v1/orders",
			"application/json",
			strings.NewReader(checkoutBody),
		)
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusCreated, res.StatusCode)

		var body httphandler.CheckoutResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "MFZZAB12-A1B2C3", body.OrderID)

		require.Len(t, draft.Items, 1)
		assert.Equal(t, "SKU-1", draft.Items[0].SKU)
		assert.Equal(t, float64(20000), draft.TotalHT)
	})

	t.Run("AuthHeaderForwarded", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		server := newOrdersServer(placer)
		defer server.Close()

		placer.On("PlaceOrder", mock.Anything, mock.Anything, "user-42").
			Return("MFZZAB12-A1B2C3", nil)

		req, err := http.NewRequest(
			http.MethodPost,
			server.URL+"/v1/orders",
			strings.NewReader(checkoutBody),
		)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "user-42")

		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusCreated, res.StatusCode)
		placer.AssertExpectations(t)
	})

	t.Run("ValidationErrorListsFields", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		server := newOrdersServer(placer)
		defer server.Close()

		vErr := new(domain.ValidationError)
		vErr.Add("email", "required")
		vErr.Add("items[0].sku", "required")

		placer.On("PlaceOrder", mock.Anything, mock.Anything, "").
			Return("", vErr)

		res, err := http.Post(
			server.URL+"/v1/orders",
			"application/json",
			strings.NewReader(checkoutBody),
		)
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusBadRequest, res.StatusCode)

		var body httphandler.ErrorResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "validation failed", body.Error)
		require.Len(t, body.Fields, 2)
		assert.Equal(t, "email", body.Fields[0].Field)
		assert.Equal(t, "items[0].sku", body.Fields[1].Field)
	})

	t.Run("PersistenceErrorIsOpaque", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		server := newOrdersServer(placer)
		defer server.Close()

		placer.On("PlaceOrder", mock.Anything, mock.Anything, "").
			Return("", errors.New("pq: deadlock detected"))

		res, err := http.Post(
			server.URL+"/v1/orders",
			"application/json",
			strings.NewReader(checkoutBody),
		)
		require.NoError(t, err)
		defer res.Body.Close()

		require.Equal(t, http.StatusInternalServerError, res.StatusCode)

		var body httphandler.ErrorResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "failed to create order", body.Error)
		assert.NotContains(t, body.Error, "deadlock")
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		placer := new(MockOrderPlacer)
		server := newOrdersServer(placer)
		defer server.Close()

		res, err := http.Post(
			server.URL+"/v1/orders",
			"application/json",
			strings.NewReader(`{"email": `),
		)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		placer.AssertNotCalled(
			t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything,
		)
	})
}
