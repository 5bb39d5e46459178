package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

// GET v1/cart (200 OK)
// POST v1/cart/items JSON (200 OK, 400 Bad request)
// PATCH v1/cart/items/{productID} JSON {"quantity" int} (200 OK, 400 Bad request)
// DELETE v1/cart/items/{productID} (204 No content)
// DELETE v1/cart (204 No content)

type CartHandler struct {
	cart port.CartStore
}

func RegisterCart(mux *http.ServeMux, cart port.CartStore) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /v1/cart/items/{productID}", h.PatchItem)
	mux.HandleFunc("DELETE /v1/cart/items/{productID}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	writeJSON(w, http.StatusOK, h.toView(), log)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var line CartLine
	err := json.NewDecoder(r.Body).Decode(&line)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if line.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	quantity := line.Quantity
	if quantity == 0 {
		quantity = 1
	}

	h.cart.Add(h.toDomain(line), quantity)
	writeJSON(w, http.StatusOK, h.toView(), log)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PatchItem"
	log := slog.With("op", op)

	var body SetQuantity
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.cart.SetQuantity(r.PathValue("productID"), body.Quantity)
	writeJSON(w, http.StatusOK, h.toView(), log)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(r.PathValue("productID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) toView() CartView {
	lines := h.cart.Lines()
	totals := h.cart.Totals()

	v := CartView{
		Lines:      make([]CartLine, len(lines)),
		ItemsCount: totals.ItemsCount,
		TotalHT:    totals.TotalHT,
		TotalVAT:   totals.TotalVAT,
		TotalTTC:   totals.TotalTTC,
	}
	for i, l := range lines {
		v.Lines[i] = CartLine{
			ProductID: l.ProductID,
			SKU:       l.SKU,
			Name:      l.Name,
			PriceHT:   l.PriceHT,
			VATRate:   l.VATRate,
			Image:     l.Image,
			Brand:     l.Brand,
			Quantity:  l.Quantity,
		}
	}
	return v
}

func (CartHandler) toDomain(l CartLine) domain.CartLine {
	return domain.CartLine{
		ProductID: l.ProductID,
		SKU:       l.SKU,
		Name:      l.Name,
		PriceHT:   l.PriceHT,
		VATRate:   l.VATRate,
		Image:     l.Image,
		Brand:     l.Brand,
	}
}
