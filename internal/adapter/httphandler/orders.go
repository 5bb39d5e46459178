package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/port"
)

// POST v1/orders JSON checkout snapshot, Headers X-User-ID is opt
// (201 Created, 400 Bad request with field list, 500 generic)

type OrdersHandler struct {
	placer port.OrderPlacer
}

func RegisterOrders(mux *http.ServeMux, placer port.OrderPlacer) {
	h := OrdersHandler{placer}
	mux.HandleFunc("POST /v1/orders", h.PostOrder)
}

func (h OrdersHandler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "OrdersHandler.PostOrder"
	log := slog.With("op", op)

	var req CheckoutRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	authUserID := r.Header.Get("X-User-ID")

	orderID, err := h.placer.PlaceOrder(r.Context(), h.toDomain(req), authUserID)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, h.toErrorResponse(vErr), log)
			log.Warn("rejected invalid checkout", "err", err)
			return
		}

		// Persistence detail never reaches the caller.
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "failed to create order",
		}, log)
		log.Error("failed to place order", "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, CheckoutResponse{
		Success: true,
		OrderID: orderID,
	}, log)

	log.Info("order placed", "orderID", orderID, "nItems", len(req.Items))
}

func (h OrdersHandler) toDomain(req CheckoutRequest) domain.OrderDraft {
	draft := domain.OrderDraft{
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
		TotalHT:       req.TotalHT,
		TotalTTC:      req.TotalTTC,
		VATAmount:     req.VATAmount,
		ShippingCost:  req.ShippingCost,
	}

	draft.Items = make([]domain.DraftItem, len(req.Items))
	for i, it := range req.Items {
		draft.Items[i] = domain.DraftItem{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			PriceHT:   it.PriceHT,
			VATRate:   it.VATRate,
			Quantity:  it.Quantity,
		}
	}
	return draft
}

func (OrdersHandler) toErrorResponse(vErr *domain.ValidationError) ErrorResponse {
	resp := ErrorResponse{Error: "validation failed"}
	resp.Fields = make([]FieldError, len(vErr.Fields))
	for i, f := range vErr.Fields {
		resp.Fields[i] = FieldError{Field: f.Field, Reason: f.Reason}
	}
	return resp
}
