package entities

import "time"

// PrescriptionType distinguishes how a prescription may be dispensed.
type PrescriptionType string

const (
	PrescriptionRegular    PrescriptionType = "regular"
	PrescriptionControlled PrescriptionType = "controlled"
	PrescriptionRecurring  PrescriptionType = "recurring"
)

// PrescriptionItem is one prescribed medication. Dosage is mandatory before
// a prescription can be submitted; instructions are free text.
type PrescriptionItem struct {
	MedicationID int64  `json:"id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

type Prescription struct {
	ID          int64              `json:"id"`
	Doctor      string             `json:"doctor"`
	PatientName string             `json:"patientName"`
	Type        PrescriptionType   `json:"prescriptionType"`
	Medications []PrescriptionItem `json:"medications"`
	Notes       string             `json:"notes,omitempty"`
	ValidUntil  string             `json:"validUntil"`
	CreatedDate time.Time          `json:"created_date"`
}
