package handlers

import (
	"net/http"

	"github.com/mylittlefarma/pharmacy-api/logging"
)

type addItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ListInventory returns the full medication catalogue.
func (h *HTTPHandlerImpl) ListInventory(w http.ResponseWriter, r *http.Request) {
	medications, err := h.store.ListInventory(r.Context())
	if err != nil {
		logging.Error("Failed to list inventory", "error", err)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    medications,
	})
}

// AddInventoryItem adds a new medication to the catalogue.
func (h *HTTPHandlerImpl) AddInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateMedication(req.Name, req.Quantity, req.Price); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.AddMedication(r.Context(), req.Name, req.Quantity, req.Price)
	if err != nil {
		logging.Error("Failed to add medication", "error", err, "name", req.Name)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	logging.Info("Medication added", "id", id, "name", req.Name, "quantity", req.Quantity)
	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Item added successfully",
	})
}
