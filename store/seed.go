package store

import (
	"context"
	"fmt"

	"github.com/mylittlefarma/pharmacy-api/logging"
)

type seedProduct struct {
	name     string
	price    float64
	quantity int
}

// sampleCatalogue is the demo inventory inserted on first run.
var sampleCatalogue = []seedProduct{
	{"Lisinopril", 25.99, 120},
	{"Atorvastatin", 45.50, 90},
	{"Metformin", 12.75, 200},
	{"Albuterol Inhaler", 62.30, 50},
	{"Omeprazole", 18.95, 150},
	{"Levothyroxine", 22.40, 110},
	{"Simvastatin", 28.60, 85},
	{"Losartan", 32.25, 95},
	{"Acetaminophen", 8.99, 300},
	{"Diphenhydramine", 14.50, 180},
	{"Loratadine", 16.75, 160},
	{"Hydrochlorothiazide", 19.99, 130},
	{"Vitamin D3", 11.25, 240},
	{"Melatonin", 13.50, 190},
	{"Cetirizine", 15.20, 170},
	{"Amoxicillin", 27.80, 75},
	{"Azithromycin", 38.90, 60},
	{"Ciprofloxacin", 34.25, 55},
	{"Doxycycline", 29.99, 70},
	{"Fluoxetine", 21.50, 100},
	{"Sertraline", 24.75, 95},
	{"Pantoprazole", 19.45, 120},
	{"Montelukast", 32.60, 80},
	{"Prednisone", 15.80, 110},
	{"Tramadol", 42.30, 40},
	{"Naproxen", 10.99, 200},
	{"Ibuprofen", 9.75, 250},
	{"Aspirin", 7.50, 300},
	{"Calcium Carbonate", 12.40, 180},
	{"Magnesium Supplement", 14.90, 150},
	{"Multivitamin", 16.25, 170},
}

// SeedSampleData inserts the sample catalogue if the inventory is empty.
func (d *DB) SeedSampleData(ctx context.Context) error {
	var count int
	if err := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&count); err != nil {
		return fmt.Errorf("counting inventory: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range sampleCatalogue {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (name, quantity, price) VALUES (?, ?, ?)`,
			p.name, p.quantity, p.price); err != nil {
			return fmt.Errorf("seeding %s: %w", p.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed data: %w", err)
	}

	logging.Info("Seeded sample catalogue", "medication_count", len(sampleCatalogue))
	return nil
}
