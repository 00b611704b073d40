package handlers

import (
	"net/http"

	"coderr/models"
)

// ListOrdersHandler обрабатывает GET /api/orders: только заказы вызывающего
func (h *Handler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), PrincipalFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CreateOrderHandler обрабатывает POST /api/orders {offer_detail_id}
func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var in models.OrderInput
	if !h.decodeJSON(w, r, &in, false) {
		return
	}

	order, err := h.Orders.Create(r.Context(), PrincipalFrom(r.Context()), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "order")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.Orders.Get(r.Context(), PrincipalFrom(r.Context()), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderStatusHandler обрабатывает PATCH /api/orders/{id}; принимается только status
func (h *Handler) UpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "order")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in models.OrderStatusInput
	if !h.decodeJSON(w, r, &in, true) {
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), PrincipalFrom(r.Context()), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// DeleteOrderHandler - только администратор
func (h *Handler) DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "order")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.Orders.Delete(r.Context(), PrincipalFrom(r.Context()), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OrderCountHandler обрабатывает GET /api/orders/count/{business_user_id}
func (h *Handler) OrderCountHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_user_id", "business user")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n, err := h.Orders.OrderCount(r.Context(), PrincipalFrom(r.Context()), businessID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"order_count": n})
}

// CompletedOrderCountHandler обрабатывает GET /api/orders/completed-count/{business_user_id}
func (h *Handler) CompletedOrderCountHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := pathID(r, "business_user_id", "business user")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	n, err := h.Orders.CompletedOrderCount(r.Context(), PrincipalFrom(r.Context()), businessID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"completed_order_count": n})
}
