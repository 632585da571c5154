package store

import (
	"context"
	"fmt"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

// ListInventory returns every medication in the catalogue.
func (d *DB) ListInventory(ctx context.Context) ([]entities.Medication, error) {
	rows, err := d.QueryContext(ctx,
		`SELECT id, name, quantity, price, created_date FROM inventory ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	defer rows.Close()

	meds := make([]entities.Medication, 0)
	for rows.Next() {
		var m entities.Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.Quantity, &m.Price, &m.CreatedDate); err != nil {
			return nil, fmt.Errorf("scanning medication: %w", err)
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

// AddMedication inserts a new inventory row and returns its id.
func (d *DB) AddMedication(ctx context.Context, name string, quantity int, price float64) (int64, error) {
	res, err := d.ExecContext(ctx,
		`INSERT INTO inventory (name, quantity, price) VALUES (?, ?, ?)`,
		name, quantity, price,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting medication: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading medication id: %w", err)
	}
	return id, nil
}

// ListLowStock returns medications at or below the given quantity threshold.
func (d *DB) ListLowStock(ctx context.Context, threshold int) ([]entities.Medication, error) {
	rows, err := d.QueryContext(ctx,
		`SELECT id, name, quantity, price, created_date FROM inventory
		 WHERE quantity <= ? ORDER BY quantity`, threshold)
	if err != nil {
		return nil, fmt.Errorf("listing low stock: %w", err)
	}
	defer rows.Close()

	meds := make([]entities.Medication, 0)
	for rows.Next() {
		var m entities.Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.Quantity, &m.Price, &m.CreatedDate); err != nil {
			return nil, fmt.Errorf("scanning medication: %w", err)
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}
