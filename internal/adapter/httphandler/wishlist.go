package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

// GET v1/wishlist (200 OK)
// POST v1/wishlist/toggle JSON (200 OK, 400 Bad request)
// DELETE v1/wishlist/{productID} (204 No content)
// DELETE v1/wishlist (204 No content)

type WishlistHandler struct {
	wishlist port.WishlistStore
}

func RegisterWishlist(mux *http.ServeMux, wishlist port.WishlistStore) {
	h := WishlistHandler{wishlist}
	mux.HandleFunc("GET /v1/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /v1/wishlist/toggle", h.PostToggle)
	mux.HandleFunc("DELETE /v1/wishlist/{productID}", h.DeleteEntry)
	mux.HandleFunc("DELETE /v1/wishlist", h.DeleteWishlist)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.GetWishlist"
	log := slog.With("op", op)

	entries := h.wishlist.Entries()
	vs := make([]WishlistEntry, len(entries))
	for i, e := range entries {
		vs[i] = WishlistEntry{
			ProductID: e.ProductID,
			SKU:       e.SKU,
			Name:      e.Name,
			PriceHT:   e.PriceHT,
			VATRate:   e.VATRate,
			Image:     e.Image,
			Brand:     e.Brand,
			AddedAt:   e.AddedAt,
		}
	}
	writeJSON(w, http.StatusOK, vs, log)
}

func (h WishlistHandler) PostToggle(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostToggle"
	log := slog.With("op", op)

	var e WishlistEntry
	err := json.NewDecoder(r.Body).Decode(&e)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if e.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}

	added := h.wishlist.Toggle(h.toDomain(e))
	writeJSON(w, http.StatusOK, ToggleResult{
		ProductID: e.ProductID,
		InList:    added,
	}, log)
}

func (h WishlistHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Remove(r.PathValue("productID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h WishlistHandler) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (WishlistHandler) toDomain(e WishlistEntry) domain.WishlistEntry {
	return domain.WishlistEntry{
		ProductID: e.ProductID,
		SKU:       e.SKU,
		Name:      e.Name,
		PriceHT:   e.PriceHT,
		VATRate:   e.VATRate,
		Image:     e.Image,
		Brand:     e.Brand,
	}
}
