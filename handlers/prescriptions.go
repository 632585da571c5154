package handlers

import (
	"net/http"

	"github.com/mylittlefarma/pharmacy-api/entities"
	"github.com/mylittlefarma/pharmacy-api/logging"
	"github.com/mylittlefarma/pharmacy-api/metrics"
)

type createPrescriptionRequest struct {
	PatientName string                      `json:"patientName"`
	Doctor      string                      `json:"doctor"`
	Type        entities.PrescriptionType   `json:"prescriptionType"`
	Notes       string                      `json:"notes"`
	ValidUntil  string                      `json:"validUntil"`
	Medications []entities.PrescriptionItem `json:"medications"`
}

// CreatePrescription records a practitioner's prescription.
func (h *HTTPHandlerImpl) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var req createPrescriptionRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prescription := &entities.Prescription{
		PatientName: req.PatientName,
		Doctor:      req.Doctor,
		Type:        req.Type,
		Notes:       req.Notes,
		ValidUntil:  req.ValidUntil,
		Medications: req.Medications,
	}

	if err := h.validator.ValidatePrescription(prescription); err != nil {
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.CreatePrescription(r.Context(), prescription)
	if err != nil {
		logging.Error("Failed to create prescription", "error", err, "doctor", req.Doctor)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to create prescription")
		return
	}

	metrics.PrescriptionsCreated.Inc()
	logging.Info("Prescription created", "prescription_id", id, "doctor", req.Doctor, "patient", req.PatientName)
	h.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Prescription created successfully",
		"data":    map[string]int64{"id": id},
	})
}

// ListPrescriptions lists the prescriptions written by one doctor.
func (h *HTTPHandlerImpl) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	doctor := r.URL.Query().Get("doctor")
	if doctor == "" {
		h.RespondWithError(w, http.StatusBadRequest, "missing doctor")
		return
	}

	prescriptions, err := h.store.PrescriptionsByDoctor(r.Context(), doctor)
	if err != nil {
		logging.Error("Failed to list prescriptions", "error", err, "doctor", doctor)
		h.RespondWithError(w, http.StatusInternalServerError, "failed to load prescriptions")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    prescriptions,
	})
}
