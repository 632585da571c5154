// Package views holds the page view models of the client: one view per
// screen, each owning its own transient draft state. A draft lives and dies
// with its view; navigating away discards it.
package views

import (
	"errors"
	"fmt"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

var (
	// ErrDuplicateLine means the medication is already on the draft.
	ErrDuplicateLine = errors.New("medication is already on the prescription")

	// ErrEmptyDraft means an order was submitted with no lines.
	ErrEmptyDraft = errors.New("order must contain at least one item")

	// ErrMissingDosage means a prescription line has no dosage text.
	ErrMissingDosage = errors.New("every prescribed medication needs a dosage")
)

// OrderDraft is the customer's unsaved order: an ordered list of lines,
// one per medication. Adding a medication already present bumps its
// quantity instead of adding a second line.
type OrderDraft struct {
	lines []entities.OrderItem
}

// Add puts a medication on the draft with quantity one, or increments the
// existing line's quantity by one.
func (d *OrderDraft) Add(med entities.Medication) {
	for i := range d.lines {
		if d.lines[i].MedicationID == med.ID {
			d.lines[i].Quantity++
			return
		}
	}
	d.lines = append(d.lines, entities.OrderItem{
		MedicationID: med.ID,
		Name:         med.Name,
		Price:        med.Price,
		Quantity:     1,
	})
}

// SetQuantity sets a line's quantity to any positive integer.
func (d *OrderDraft) SetQuantity(medicationID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be a positive integer, got %d", quantity)
	}
	for i := range d.lines {
		if d.lines[i].MedicationID == medicationID {
			d.lines[i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("medication %d is not on the order", medicationID)
}

// Remove deletes a line entirely, whatever its quantity.
func (d *OrderDraft) Remove(medicationID int64) {
	for i := range d.lines {
		if d.lines[i].MedicationID == medicationID {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the draft's lines in insertion order. Line edits
// go through SetQuantity and Remove, never through the returned slice.
func (d *OrderDraft) Lines() []entities.OrderItem {
	return append([]entities.OrderItem(nil), d.lines...)
}

// Total is the sum of price times quantity over all lines.
func (d *OrderDraft) Total() float64 {
	var total float64
	for _, l := range d.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Empty reports whether the draft has no lines.
func (d *OrderDraft) Empty() bool {
	return len(d.lines) == 0
}

// PrescriptionDraft is the practitioner's unsaved prescription. Unlike an
// order, adding a medication twice is an error the user sees, not a
// quantity bump.
type PrescriptionDraft struct {
	lines []entities.PrescriptionItem
}

// Add appends a prescribed medication. A medication already on the draft is
// rejected with ErrDuplicateLine and the draft is left unchanged.
func (d *PrescriptionDraft) Add(item entities.PrescriptionItem) error {
	for _, l := range d.lines {
		if l.MedicationID == item.MedicationID {
			return ErrDuplicateLine
		}
	}
	d.lines = append(d.lines, item)
	return nil
}

// Remove deletes a line.
func (d *PrescriptionDraft) Remove(medicationID int64) {
	for i := range d.lines {
		if d.lines[i].MedicationID == medicationID {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return
		}
	}
}

// SetDosage replaces a line's dosage text.
func (d *PrescriptionDraft) SetDosage(medicationID int64, dosage string) error {
	for i := range d.lines {
		if d.lines[i].MedicationID == medicationID {
			d.lines[i].Dosage = dosage
			return nil
		}
	}
	return fmt.Errorf("medication %d is not on the prescription", medicationID)
}

// Lines returns a copy of the draft's lines in insertion order. Line edits
// go through SetDosage and Remove, never through the returned slice.
func (d *PrescriptionDraft) Lines() []entities.PrescriptionItem {
	return append([]entities.PrescriptionItem(nil), d.lines...)
}

// Empty reports whether the draft has no lines.
func (d *PrescriptionDraft) Empty() bool {
	return len(d.lines) == 0
}

// Validate checks the submit gate: at least one line, each with a dosage.
func (d *PrescriptionDraft) Validate() error {
	if len(d.lines) == 0 {
		return errors.New("prescription must contain at least one medication")
	}
	for _, l := range d.lines {
		if l.Dosage == "" {
			return ErrMissingDosage
		}
	}
	return nil
}
