// Package handlers provides HTTP request handlers for the pharmacy API
// endpoints. Handlers receive their persistence and validation dependencies
// by injection and respond with the JSON shapes the web client expects.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mylittlefarma/pharmacy-api/interfaces"
	"github.com/mylittlefarma/pharmacy-api/logging"
)

// HTTPHandlerImpl carries the dependencies shared by all endpoint handlers.
type HTTPHandlerImpl struct {
	store     interfaces.PharmacyStore
	validator interfaces.DataValidator
	startTime time.Time
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(store interfaces.PharmacyStore, validator interfaces.DataValidator) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		store:     store,
		validator: validator,
		startTime: time.Now(),
	}
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes the {success:false, error} shape the client's
// request helper reads its failure message from.
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	h.RespondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// decodeBody decodes a JSON request body into dst, enforcing a sane limit.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	medications, err := h.store.ListInventory(r.Context())
	if err != nil {
		logging.Error("Health check failed to read inventory", "error", err)
		h.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"message": "database unavailable",
		})
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"message":          "API is running",
		"medication_count": len(medications),
		"uptime_seconds":   time.Since(h.startTime).Seconds(),
	})
}
