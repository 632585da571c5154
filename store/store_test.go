package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateUser_Duplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.CreateUser(ctx, "alice", "alice@example.com", "pass1234", entities.RoleCustomer); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	err := db.CreateUser(ctx, "alice", "other@example.com", "pass1234", entities.RoleCustomer)
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists for duplicate username, got: %v", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.CreateUser(ctx, "bob", "bob@example.com", "secret", entities.RolePharmacist); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", "bob", "secret", nil},
		{"wrong password", "bob", "wrong", ErrNotFound},
		{"unknown user", "nobody", "secret", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := db.AuthenticateUser(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AuthenticateUser failed: %v", err)
			}
			if user.Username != tt.username {
				t.Errorf("Expected username %q, got %q", tt.username, user.Username)
			}
			if user.Role != entities.RolePharmacist {
				t.Errorf("Expected role pharmacist, got %q", user.Role)
			}
		})
	}
}

func TestInventory_AddAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.AddMedication(ctx, "Paracetamol 500mg", 100, 5.99)
	if err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected a non-zero medication id")
	}

	medications, err := db.ListInventory(ctx)
	if err != nil {
		t.Fatalf("ListInventory failed: %v", err)
	}
	if len(medications) != 1 {
		t.Fatalf("Expected 1 medication, got %d", len(medications))
	}
	if medications[0].Name != "Paracetamol 500mg" || medications[0].Quantity != 100 {
		t.Errorf("Unexpected medication: %+v", medications[0])
	}
}

func TestListLowStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.AddMedication(ctx, "Plenty", 500, 1.0); err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}
	if _, err := db.AddMedication(ctx, "Scarce", 3, 1.0); err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}

	low, err := db.ListLowStock(ctx, 20)
	if err != nil {
		t.Fatalf("ListLowStock failed: %v", err)
	}
	if len(low) != 1 || low[0].Name != "Scarce" {
		t.Errorf("Expected only Scarce below threshold, got: %+v", low)
	}
}

func placeOrder(t *testing.T, db *DB, customer string, items []entities.OrderItem) int64 {
	t.Helper()

	id, err := db.CreateOrder(context.Background(), &entities.Order{
		Customer: customer,
		Items:    items,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return id
}

func TestCreateAndGetOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id := placeOrder(t, db, "alice", []entities.OrderItem{
		{MedicationID: 1, Name: "Aspirin", Price: 3.50, Quantity: 2},
		{MedicationID: 2, Name: "Ibuprofen", Price: 4.25, Quantity: 1},
	})

	order, err := db.GetOrder(ctx, id)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if order.Status != entities.OrderPending {
		t.Errorf("Expected new order to be pending, got %q", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(order.Items))
	}
	if total := order.Total(); total != 3.50*2+4.25 {
		t.Errorf("Expected total 11.25, got %v", total)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetOrder(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestFulfillOrder_DecrementsStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	medID, err := db.AddMedication(ctx, "Amoxicillin", 10, 12.0)
	if err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}

	orderID := placeOrder(t, db, "alice", []entities.OrderItem{
		{MedicationID: medID, Name: "Amoxicillin", Price: 12.0, Quantity: 4},
	})

	if err := db.FulfillOrder(ctx, orderID); err != nil {
		t.Fatalf("FulfillOrder failed: %v", err)
	}

	order, err := db.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if order.Status != entities.OrderFulfilled {
		t.Errorf("Expected fulfilled, got %q", order.Status)
	}

	medications, err := db.ListInventory(ctx)
	if err != nil {
		t.Fatalf("ListInventory failed: %v", err)
	}
	if medications[0].Quantity != 6 {
		t.Errorf("Expected stock 6 after fulfillment, got %d", medications[0].Quantity)
	}
}

func TestFulfillOrder_InsufficientStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	medID, err := db.AddMedication(ctx, "Rare Drug", 2, 99.0)
	if err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}

	orderID := placeOrder(t, db, "alice", []entities.OrderItem{
		{MedicationID: medID, Name: "Rare Drug", Price: 99.0, Quantity: 5},
	})

	err = db.FulfillOrder(ctx, orderID)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got: %v", err)
	}

	// The failed fulfillment must leave both order and stock untouched
	order, err := db.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if order.Status != entities.OrderPending {
		t.Errorf("Expected order to stay pending, got %q", order.Status)
	}

	medications, err := db.ListInventory(ctx)
	if err != nil {
		t.Fatalf("ListInventory failed: %v", err)
	}
	if medications[0].Quantity != 2 {
		t.Errorf("Expected stock unchanged at 2, got %d", medications[0].Quantity)
	}
}

func TestFulfillOrder_AlreadyFulfilled(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	medID, err := db.AddMedication(ctx, "Aspirin", 10, 3.0)
	if err != nil {
		t.Fatalf("AddMedication failed: %v", err)
	}

	orderID := placeOrder(t, db, "alice", []entities.OrderItem{
		{MedicationID: medID, Name: "Aspirin", Price: 3.0, Quantity: 1},
	})

	if err := db.FulfillOrder(ctx, orderID); err != nil {
		t.Fatalf("First FulfillOrder failed: %v", err)
	}

	err = db.FulfillOrder(ctx, orderID)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState on double fulfill, got: %v", err)
	}
}

func TestRejectOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	orderID := placeOrder(t, db, "alice", []entities.OrderItem{
		{MedicationID: 1, Name: "Aspirin", Price: 3.0, Quantity: 1},
	})

	if err := db.RejectOrder(ctx, orderID, "prescription required"); err != nil {
		t.Fatalf("RejectOrder failed: %v", err)
	}

	order, err := db.GetOrder(ctx, orderID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if order.Status != entities.OrderRejected {
		t.Errorf("Expected rejected, got %q", order.Status)
	}
	if order.RejectReason != "prescription required" {
		t.Errorf("Expected reject reason preserved, got %q", order.RejectReason)
	}

	// A rejected order cannot later be fulfilled
	if err := db.FulfillOrder(ctx, orderID); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState fulfilling a rejected order, got: %v", err)
	}
}

func TestPendingOrders_OnlyPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := placeOrder(t, db, "alice", []entities.OrderItem{
		{MedicationID: 1, Name: "Aspirin", Price: 3.0, Quantity: 1},
	})
	placeOrder(t, db, "bob", []entities.OrderItem{
		{MedicationID: 1, Name: "Aspirin", Price: 3.0, Quantity: 1},
	})

	if err := db.RejectOrder(ctx, first, "out of stock"); err != nil {
		t.Fatalf("RejectOrder failed: %v", err)
	}

	pending, err := db.PendingOrders(ctx)
	if err != nil {
		t.Fatalf("PendingOrders failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending order, got %d", len(pending))
	}
	if pending[0].Customer != "bob" {
		t.Errorf("Expected bob's order to remain pending, got %q", pending[0].Customer)
	}
}

func TestStalePendingOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pending := placeOrder(t, db, "alice", []entities.OrderItem{
		{MedicationID: 1, Name: "Aspirin", Price: 3.0, Quantity: 1},
	})
	rejected := placeOrder(t, db, "bob", []entities.OrderItem{
		{MedicationID: 1, Name: "Aspirin", Price: 3.0, Quantity: 1},
	})
	if err := db.RejectOrder(ctx, rejected, "out of stock"); err != nil {
		t.Fatalf("RejectOrder failed: %v", err)
	}

	// Both orders were just created, so a cutoff in the past finds nothing
	stale, err := db.StalePendingOrders(ctx, time.Now().Add(-48*time.Hour))
	if err != nil {
		t.Fatalf("StalePendingOrders failed: %v", err)
	}
	if len(stale) != 0 {
		t.Errorf("Expected no stale orders for a past cutoff, got %d", len(stale))
	}

	// A cutoff past their creation time finds the pending one only
	stale, err = db.StalePendingOrders(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("StalePendingOrders failed: %v", err)
	}
	if len(stale) != 1 {
		t.Fatalf("Expected 1 stale order, got %d", len(stale))
	}
	if stale[0].ID != pending {
		t.Errorf("Expected order %d to be stale, got %d", pending, stale[0].ID)
	}
	if stale[0].Status != entities.OrderPending {
		t.Errorf("Expected stale order to be pending, got %q", stale[0].Status)
	}
}

func TestOrdersByCustomer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	placeOrder(t, db, "alice", []entities.OrderItem{
		{MedicationID: 1, Name: "Aspirin", Price: 3.0, Quantity: 1},
	})
	placeOrder(t, db, "bob", []entities.OrderItem{
		{MedicationID: 1, Name: "Aspirin", Price: 3.0, Quantity: 1},
	})

	orders, err := db.OrdersByCustomer(ctx, "alice")
	if err != nil {
		t.Fatalf("OrdersByCustomer failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Customer != "alice" {
		t.Errorf("Expected only alice's order, got: %+v", orders)
	}
}

func TestCreateAndListPrescriptions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.CreatePrescription(ctx, &entities.Prescription{
		Doctor:      "drhouse",
		PatientName: "Greg",
		Type:        entities.PrescriptionControlled,
		Medications: []entities.PrescriptionItem{
			{MedicationID: 1, Name: "Vicodin", Dosage: "1 tablet daily"},
		},
	})
	if err != nil {
		t.Fatalf("CreatePrescription failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected a non-zero prescription id")
	}

	prescriptions, err := db.PrescriptionsByDoctor(ctx, "drhouse")
	if err != nil {
		t.Fatalf("PrescriptionsByDoctor failed: %v", err)
	}
	if len(prescriptions) != 1 {
		t.Fatalf("Expected 1 prescription, got %d", len(prescriptions))
	}
	p := prescriptions[0]
	if p.Type != entities.PrescriptionControlled || p.PatientName != "Greg" {
		t.Errorf("Unexpected prescription: %+v", p)
	}
	if len(p.Medications) != 1 || p.Medications[0].Dosage != "1 tablet daily" {
		t.Errorf("Unexpected medications: %+v", p.Medications)
	}

	other, err := db.PrescriptionsByDoctor(ctx, "someone-else")
	if err != nil {
		t.Fatalf("PrescriptionsByDoctor failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Expected no prescriptions for other doctor, got %d", len(other))
	}
}

func TestSeedSampleData_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.SeedSampleData(ctx); err != nil {
		t.Fatalf("SeedSampleData failed: %v", err)
	}

	medications, err := db.ListInventory(ctx)
	if err != nil {
		t.Fatalf("ListInventory failed: %v", err)
	}
	count := len(medications)
	if count == 0 {
		t.Fatal("Expected seeded catalogue to be non-empty")
	}

	// Seeding again must not duplicate the catalogue
	if err := db.SeedSampleData(ctx); err != nil {
		t.Fatalf("Second SeedSampleData failed: %v", err)
	}
	medications, err = db.ListInventory(ctx)
	if err != nil {
		t.Fatalf("ListInventory failed: %v", err)
	}
	if len(medications) != count {
		t.Errorf("Expected %d medications after reseed, got %d", count, len(medications))
	}
}
