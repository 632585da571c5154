// Package interfaces defines core abstractions for the pharmacy API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"time"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

// UserStore defines the contract for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, password string, role entities.Role) error
	AuthenticateUser(ctx context.Context, username, password string) (*entities.User, error)
}

// InventoryStore defines the contract for the medication catalogue.
type InventoryStore interface {
	ListInventory(ctx context.Context) ([]entities.Medication, error)
	AddMedication(ctx context.Context, name string, quantity int, price float64) (int64, error)
	ListLowStock(ctx context.Context, threshold int) ([]entities.Medication, error)
}

// OrderStore defines the contract for order persistence and the pharmacist
// workflow transitions.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *entities.Order) (int64, error)
	GetOrder(ctx context.Context, id int64) (*entities.Order, error)
	OrdersByCustomer(ctx context.Context, customer string) ([]entities.Order, error)
	PendingOrders(ctx context.Context) ([]entities.Order, error)
	StalePendingOrders(ctx context.Context, cutoff time.Time) ([]entities.Order, error)
	FulfillOrder(ctx context.Context, id int64) error
	RejectOrder(ctx context.Context, id int64, reason string) error
}

// PrescriptionStore defines the contract for prescription persistence.
type PrescriptionStore interface {
	CreatePrescription(ctx context.Context, p *entities.Prescription) (int64, error)
	PrescriptionsByDoctor(ctx context.Context, doctor string) ([]entities.Prescription, error)
}

// PharmacyStore is the full persistence surface the handlers are wired to.
type PharmacyStore interface {
	UserStore
	InventoryStore
	OrderStore
	PrescriptionStore
}

// Scheduler defines the contract for background job scheduling.
type Scheduler interface {
	Start() error
	Stop()
}

// DataValidator defines the contract for request validation.
type DataValidator interface {
	// ValidateInput screens user-supplied strings for dangerous content
	ValidateInput(input string) error

	// ValidateMedication checks a new inventory item
	ValidateMedication(name string, quantity int, price float64) error

	// ValidateSignup checks a registration request
	ValidateSignup(username, email, password string, role entities.Role) error

	// ValidateOrder checks an incoming order
	ValidateOrder(o *entities.Order) error

	// ValidatePrescription checks an incoming prescription
	ValidatePrescription(p *entities.Prescription) error
}
