package store

import (
	"context"
	"fmt"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

// CreatePrescription inserts a prescription and its medication lines in one
// transaction and returns the new id.
func (d *DB) CreatePrescription(ctx context.Context, p *entities.Prescription) (int64, error) {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO prescriptions (doctor, patient_name, type, notes, valid_until)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Doctor, p.PatientName, string(p.Type), p.Notes, p.ValidUntil,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting prescription: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading prescription id: %w", err)
	}

	for _, it := range p.Medications {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO prescription_items (prescription_id, medication_id, name, dosage, instructions)
			 VALUES (?, ?, ?, ?, ?)`,
			id, it.MedicationID, it.Name, it.Dosage, it.Instructions,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting prescription item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing prescription: %w", err)
	}
	return id, nil
}

// PrescriptionsByDoctor returns all prescriptions written by the given
// practitioner, newest first.
func (d *DB) PrescriptionsByDoctor(ctx context.Context, doctor string) ([]entities.Prescription, error) {
	rows, err := d.QueryContext(ctx,
		`SELECT id, doctor, patient_name, type, notes, valid_until, created_date
		 FROM prescriptions WHERE doctor = ? ORDER BY created_date DESC, id DESC`, doctor)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}
	defer rows.Close()

	prescriptions := make([]entities.Prescription, 0)
	for rows.Next() {
		var p entities.Prescription
		var ptype string
		if err := rows.Scan(&p.ID, &p.Doctor, &p.PatientName, &ptype,
			&p.Notes, &p.ValidUntil, &p.CreatedDate); err != nil {
			return nil, fmt.Errorf("scanning prescription: %w", err)
		}
		p.Type = entities.PrescriptionType(ptype)
		prescriptions = append(prescriptions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range prescriptions {
		if err := d.loadPrescriptionItems(ctx, &prescriptions[i]); err != nil {
			return nil, err
		}
	}
	return prescriptions, nil
}

func (d *DB) loadPrescriptionItems(ctx context.Context, p *entities.Prescription) error {
	rows, err := d.QueryContext(ctx,
		`SELECT medication_id, name, dosage, instructions FROM prescription_items
		 WHERE prescription_id = ? ORDER BY rowid`, p.ID)
	if err != nil {
		return fmt.Errorf("loading prescription items: %w", err)
	}
	defer rows.Close()

	p.Medications = make([]entities.PrescriptionItem, 0)
	for rows.Next() {
		var it entities.PrescriptionItem
		if err := rows.Scan(&it.MedicationID, &it.Name, &it.Dosage, &it.Instructions); err != nil {
			return fmt.Errorf("scanning prescription item: %w", err)
		}
		p.Medications = append(p.Medications, it)
	}
	return rows.Err()
}
