package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mylittlefarma/pharmacy-api/entities"
	"github.com/mylittlefarma/pharmacy-api/logging"
	"github.com/mylittlefarma/pharmacy-api/metrics"
	"github.com/mylittlefarma/pharmacy-api/store"
)

type createOrderRequest struct {
	Items          []entities.OrderItem `json:"items"`
	PrescriptionID string               `json:"prescriptionId"`
	Notes          string               `json:"notes"`
	Customer       string               `json:"customer"`
}

type rejectOrderRequest struct {
	Reason string `json:"reason"`
}

// CreateOrder places a new customer order.
func (h *HTTPHandlerImpl) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := &entities.Order{
		Customer:       req.Customer,
		Items:          req.Items,
		PrescriptionID: req.PrescriptionID,
		Notes:          req.Notes,
	}

	if err := h.validator.ValidateOrder(order); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.CreateOrder(r.Context(), order)
	if err != nil {
		logging.Error("Failed to create order", "error", err, "customer", req.Customer)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	metrics.OrdersPlaced.Inc()
	logging.Info("Order placed", "order_id", id, "customer", req.Customer, "items", len(req.Items))
	h.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Order placed successfully",
		"data":    map[string]int64{"id": id},
	})
}

// MyOrders lists the caller's orders. The caller names itself via the
// customer query parameter; there is no server-side identity to check
// against.
func (h *HTTPHandlerImpl) MyOrders(w http.ResponseWriter, r *http.Request) {
	customer := r.URL.Query().Get("customer")
	if customer == "" {
		h.RespondWithError(w, http.StatusBadRequest, "missing customer")
		return
	}

	orders, err := h.store.OrdersByCustomer(r.Context(), customer)
	if err != nil {
		logging.Error("Failed to list orders", "error", err, "customer", customer)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    orders,
	})
}

// PendingOrders lists every order awaiting pharmacist action.
func (h *HTTPHandlerImpl) PendingOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.PendingOrders(r.Context())
	if err != nil {
		logging.Error("Failed to list pending orders", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    orders,
	})
}

// FulfillOrder marks an order fulfilled and decrements inventory.
func (h *HTTPHandlerImpl) FulfillOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	switch err := h.store.FulfillOrder(r.Context(), id); {
	case errors.Is(err, store.ErrNotFound):
		h.RespondWithError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, store.ErrInvalidState):
		h.RespondWithError(w, http.StatusConflict, "order is not pending")
	case errors.Is(err, store.ErrInsufficientStock):
		h.RespondWithError(w, http.StatusConflict, "insufficient stock to fulfill order")
	case err != nil:
		logging.Error("Failed to fulfill order", "error", err, "order_id", id)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to fulfill order")
	default:
		metrics.OrdersFulfilled.Inc()
		logging.Info("Order fulfilled", "order_id", id)
		h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Order fulfilled successfully",
		})
	}
}

// RejectOrder marks an order rejected, recording the pharmacist's reason.
func (h *HTTPHandlerImpl) RejectOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req rejectOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch err := h.store.RejectOrder(r.Context(), id, req.Reason); {
	case errors.Is(err, store.ErrNotFound):
		h.RespondWithError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, store.ErrInvalidState):
		h.RespondWithError(w, http.StatusConflict, "order is not pending")
	case err != nil:
		logging.Error("Failed to reject order", "error", err, "order_id", id)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to reject order")
	default:
		metrics.OrdersRejected.Inc()
		logging.Info("Order rejected", "order_id", id, "reason", req.Reason)
		h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Order rejected successfully",
		})
	}
}
