package entities

import "time"

// OrderStatus tracks an order through the pharmacist workflow.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderRejected  OrderStatus = "rejected"
)

// OrderItem is one line of an order, a snapshot of the medication at the
// time the customer placed it.
type OrderItem struct {
	MedicationID int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

type Order struct {
	ID             int64       `json:"id"`
	Customer       string      `json:"customer"`
	Items          []OrderItem `json:"items"`
	PrescriptionID string      `json:"prescriptionId,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Status         OrderStatus `json:"status"`
	RejectReason   string      `json:"rejectReason,omitempty"`
	CreatedDate    time.Time   `json:"created_date"`
}

// Total is the sum of price*quantity over all lines.
func (o Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
