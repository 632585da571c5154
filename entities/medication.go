package entities

import "time"

// Medication is one inventory row. Server-owned; the client treats it as
// read-only catalogue data.
type Medication struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedDate time.Time `json:"created_date"`
}
