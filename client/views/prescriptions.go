package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mylittlefarma/pharmacy-api/client"
	"github.com/mylittlefarma/pharmacy-api/entities"
)

// CreatePrescriptionView is the practitioner's prescription form. Like the
// order screen it owns its draft, discarded with the view.
type CreatePrescriptionView struct {
	api   client.API
	Draft PrescriptionDraft

	PatientName string
	Type        entities.PrescriptionType
	Notes       string
	ValidUntil  string
}

// NewCreatePrescriptionView creates the form with an empty draft.
func NewCreatePrescriptionView(api client.API) *CreatePrescriptionView {
	return &CreatePrescriptionView{api: api, Type: entities.PrescriptionRegular}
}

// Render lists the catalogue next to the draft lines.
func (v *CreatePrescriptionView) Render(ctx context.Context, sess entities.Session) (string, error) {
	medications, err := v.api.ListInventory(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Write a prescription\n\nAvailable medications\n")
	for _, m := range medications {
		fmt.Fprintf(&b, "  [%d] %s\n", m.ID, m.Name)
	}

	b.WriteString("\nPrescribed medications\n")
	if v.Draft.Empty() {
		b.WriteString("  (none yet)\n")
	}
	for _, l := range v.Draft.Lines() {
		dosage := l.Dosage
		if dosage == "" {
			dosage = "(dosage missing)"
		}
		fmt.Fprintf(&b, "  %-40s %s", l.Name, dosage)
		if l.Instructions != "" {
			fmt.Fprintf(&b, "  - %s", l.Instructions)
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// Submit creates the prescription. All gates run before any network call:
// the draft must validate and the patient must be named.
func (v *CreatePrescriptionView) Submit(ctx context.Context, sess entities.Session) (int64, error) {
	if err := v.Draft.Validate(); err != nil {
		return 0, err
	}
	if v.PatientName == "" {
		return 0, errors.New("patient name is required")
	}

	id, err := v.api.CreatePrescription(ctx, entities.Prescription{
		Doctor:      sess.Username,
		PatientName: v.PatientName,
		Type:        v.Type,
		Notes:       v.Notes,
		ValidUntil:  v.ValidUntil,
		Medications: v.Draft.Lines(),
	})
	if err != nil {
		return 0, err
	}

	v.Draft = PrescriptionDraft{}
	v.PatientName = ""
	v.Notes = ""
	return id, nil
}

// PrescriptionsView lists the practitioner's own prescriptions.
type PrescriptionsView struct {
	api client.API
}

// NewPrescriptionsView creates the list view.
func NewPrescriptionsView(api client.API) *PrescriptionsView {
	return &PrescriptionsView{api: api}
}

// Render fetches and lists the doctor's prescriptions.
func (v *PrescriptionsView) Render(ctx context.Context, sess entities.Session) (string, error) {
	prescriptions, err := v.api.ListPrescriptions(ctx, sess.Username)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("My prescriptions\n")
	if len(prescriptions) == 0 {
		b.WriteString("  (no prescriptions yet)\n")
		return b.String(), nil
	}

	for _, p := range prescriptions {
		fmt.Fprintf(&b, "\nPrescription #%d  for %s  (%s)  written %s\n",
			p.ID, p.PatientName, p.Type, p.CreatedDate.Format("2006-01-02"))
		for _, m := range p.Medications {
			fmt.Fprintf(&b, "  %-40s %s", m.Name, m.Dosage)
			if m.Instructions != "" {
				fmt.Fprintf(&b, "  - %s", m.Instructions)
			}
			b.WriteByte('\n')
		}
		if p.Notes != "" {
			fmt.Fprintf(&b, "  Notes: %s\n", p.Notes)
		}
	}

	return b.String(), nil
}
