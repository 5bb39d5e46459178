package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

// GET v1/comparison (200 OK)
// POST v1/comparison/items JSON (200 OK, 400 Bad request)
// DELETE v1/comparison/items/{productID} (204 No content)
// DELETE v1/comparison (204 No content)

type ComparisonHandler struct {
	comparison port.ComparisonStore
}

func RegisterComparison(mux *http.ServeMux, comparison port.ComparisonStore) {
	h := ComparisonHandler{comparison}
	mux.HandleFunc("GET /v1/comparison", h.GetComparison)
	mux.HandleFunc("POST /v1/comparison/items", h.PostItem)
	mux.HandleFunc("DELETE /v1/comparison/items/{productID}", h.DeleteItem)
	mux.HandleFunc("DELETE /v1/comparison", h.DeleteComparison)
}

func (h ComparisonHandler) GetComparison(w http.ResponseWriter, r *http.Request) {
	const op = "ComparisonHandler.GetComparison"
	log := slog.With("op", op)

	writeJSON(w, http.StatusOK, h.toView(), log)
}

func (h ComparisonHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "ComparisonHandler.PostItem"
	log := slog.With("op", op)

	var e ComparisonEntry
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

	h.comparison.Add(h.toDomain(e))
	writeJSON(w, http.StatusOK, h.toView(), log)
}

func (h ComparisonHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	h.comparison.Remove(r.PathValue("productID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h ComparisonHandler) DeleteComparison(w http.ResponseWriter, r *http.Request) {
	h.comparison.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h ComparisonHandler) toView() ComparisonView {
	entries := h.comparison.Entries()

	v := ComparisonView{
		Entries:    make([]ComparisonEntry, len(entries)),
		CanAddMore: h.comparison.CanAddMore(),
		MaxItems:   domain.MaxComparisonItems,
	}
	for i, e := range entries {
		v.Entries[i] = ComparisonEntry{
			ProductID:  e.ProductID,
			SKU:        e.SKU,
			Name:       e.Name,
			PriceHT:    e.PriceHT,
			VATRate:    e.VATRate,
			Image:      e.Image,
			Brand:      e.Brand,
			Category:   e.Category,
			Attributes: e.Attributes,
		}
	}
	return v
}

func (ComparisonHandler) toDomain(e ComparisonEntry) domain.ComparisonEntry {
	return domain.ComparisonEntry{
		ProductID:  e.ProductID,
		SKU:        e.SKU,
		Name:       e.Name,
		PriceHT:    e.PriceHT,
		VATRate:    e.VATRate,
		Image:      e.Image,
		Brand:      e.Brand,
		Category:   e.Category,
		Attributes: e.Attributes,
	}
}
