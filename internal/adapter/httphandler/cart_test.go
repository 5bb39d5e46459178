package httphandler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/likmaa/ejs-market/internal/adapter/httphandler"
	"github.com/likmaa/ejs-market/internal/adapter/snapshot"
	"github.com/likmaa/ejs-market/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := snapshot.NewLevelDBInMemory()
	require.NoError(t, err)
	t.Cleanup(db.Close)

	cart := service.NewCartService(db)
	cart.Rehydrate(t.Context())

	mux := http.NewServeMux()
	httphandler.RegisterCart(mux, cart)
	return httptest.NewServer(mux)
}

func getCart(t *testing.T, serverURL string) httphandler.CartView {
	t.Helper()

	res, err := http.Get(serverURL + "/v1/cart")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var view httphandler.CartView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
	return view
}

func TestCartHandler(t *testing.T) {

	t.Run("EmptyCart", func(t *testing.T) {
		server := newCartServer(t)
		defer server.Close()

		view := getCart(t, server.URL)
		assert.Empty(t, view.Lines)
		assert.Zero(t, view.TotalTTC)
	})

	t.Run("AddReturnsTotals", func(t *testing.T) {
		server := newCartServer(t)
		defer server.Close()

		body := `{"product_id": "1", "sku": "SKU-1", "name": "product 1",
			"price_ht": 10000, "vat_rate": 0.2, "quantity": 2}`

		res, err := http.Post(
			server.URL+"/v1/cart/items",
			"application/json",
			strings.NewReader(body),
		)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var view httphandler.CartView
		require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 2, view.Lines[0].Quantity)
		assert.Equal(t, int64(20000), view.TotalHT)
		assert.Equal(t, int64(4000), view.TotalVAT)
		assert.Equal(t, int64(24000), view.TotalTTC)
	})

	t.Run("AddWithoutQuantityDefaultsToOne", func(t *testing.T) {
		server := newCartServer(t)
		defer server.Close()

		body := `{"product_id": "1", "price_ht": 500, "vat_rate": 0.2}`

		res, err := http.Post(
			server.URL+"/v1/cart/items",
			"application/json",
			strings.NewReader(body),
		)
		require.NoError(t, err)
		defer res.Body.Close()

		var view httphandler.CartView
		require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
		require.Len(t, view.Lines, 1)
		assert.Equal(t, 1, view.Lines[0].Quantity)
	})

	t.Run("AddWithoutProductID", func(t *testing.T) {
		server := newCartServer(t)
		defer server.Close()

		res, err := http.Post(
			server.URL+"/v1/cart/items",
			"application/json",
			strings.NewReader(`{"quantity": 1}`),
		)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("PatchToZeroRemovesLine", func(t *testing.T) {
		server := newCartServer(t)
		defer server.Close()

		_, err := http.Post(
			server.URL+"/v1/cart/items",
			"application/json",
			strings.NewReader(`{"product_id": "1", "quantity": 3}`),
		)
		require.NoError(t, err)

		req, err := http.NewRequest(
			http.MethodPatch,
			server.URL+"/v1/cart/items/1",
			strings.NewReader(`{"quantity": 0}`),
		)
		require.NoError(t, err)

		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var view httphandler.CartView
		require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
		assert.Empty(t, view.Lines)
	})

	t.Run("DeleteItemAndCart", func(t *testing.T) {
		server := newCartServer(t)
		defer server.Close()

		for _, id := range []string{"1", "2"} {
			_, err := http.Post(
				server.URL+"/v1/cart/items",
				"application/json",
				strings.NewReader(`{"product_id": "`+id+`"}`),
			)
			require.NoError(t, err)
		}

		req, err := http.NewRequest(
			http.MethodDelete, server.URL+"/v1/cart/items/1", nil,
		)
		require.NoError(t, err)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusNoContent, res.StatusCode)

		view := getCart(t, server.URL)
		require.Len(t, view.Lines, 1)
		assert.Equal(t, "2", view.Lines[0].ProductID)

		req, err = http.NewRequest(
			http.MethodDelete, server.URL+"/v1/cart", nil,
		)
		require.NoError(t, err)
		res, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusNoContent, res.StatusCode)

		assert.Empty(t, getCart(t, server.URL).Lines)
	})
}
