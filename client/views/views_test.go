package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mylittlefarma/pharmacy-api/client"
	"github.com/mylittlefarma/pharmacy-api/entities"
)

// stubAPI counts calls so tests can assert that client-side gates run before
// any network request.
type stubAPI struct {
	calls       int
	inventory   []entities.Medication
	loginResult entities.Session
	loginErr    error
}

var _ client.API = (*stubAPI)(nil)

func (s *stubAPI) Login(context.Context, string, string) (entities.Session, error) {
	s.calls++
	return s.loginResult, s.loginErr
}
func (s *stubAPI) Signup(context.Context, string, string, string, entities.Role) error {
	s.calls++
	return nil
}
func (s *stubAPI) ListInventory(context.Context) ([]entities.Medication, error) {
	s.calls++
	return s.inventory, nil
}
func (s *stubAPI) AddInventoryItem(context.Context, string, int, float64) error {
	s.calls++
	return nil
}
func (s *stubAPI) PlaceOrder(context.Context, string, []entities.OrderItem, string, string) (int64, error) {
	s.calls++
	return 1, nil
}
func (s *stubAPI) MyOrders(context.Context, string) ([]entities.Order, error) {
	s.calls++
	return nil, nil
}
func (s *stubAPI) PendingOrders(context.Context) ([]entities.Order, error) {
	s.calls++
	return nil, nil
}
func (s *stubAPI) FulfillOrder(context.Context, int64) error { s.calls++; return nil }
func (s *stubAPI) RejectOrder(context.Context, int64, string) error {
	s.calls++
	return nil
}
func (s *stubAPI) CreatePrescription(context.Context, entities.Prescription) (int64, error) {
	s.calls++
	return 1, nil
}
func (s *stubAPI) ListPrescriptions(context.Context, string) ([]entities.Prescription, error) {
	s.calls++
	return nil, nil
}
func (s *stubAPI) Health(context.Context) error { s.calls++; return nil }

// fakeSessions is a throwaway in-memory session store.
type fakeSessions struct {
	sess entities.Session
	set  bool
}

func (f *fakeSessions) Get() (entities.Session, error) { return f.sess, nil }
func (f *fakeSessions) Set(s entities.Session) error   { f.sess = s; f.set = true; return nil }

func TestOrderView_SubmitEmptyDraftSkipsNetwork(t *testing.T) {
	api := &stubAPI{}
	view := NewOrderView(api)

	_, err := view.Submit(context.Background(), entities.Session{Username: "alice"}, "", "")
	if !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("Expected ErrEmptyDraft, got: %v", err)
	}
	if api.calls != 0 {
		t.Errorf("Expected no network calls, got %d", api.calls)
	}
}

func TestOrderView_SubmitClearsDraft(t *testing.T) {
	api := &stubAPI{}
	view := NewOrderView(api)
	view.Draft.Add(entities.Medication{ID: 1, Name: "Aspirin", Price: 3.0})

	id, err := view.Submit(context.Background(), entities.Session{Username: "alice"}, "", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if id != 1 {
		t.Errorf("Expected order id 1, got %d", id)
	}
	if !view.Draft.Empty() {
		t.Error("Expected draft cleared after successful submit")
	}
}

func TestCreatePrescriptionView_SubmitGatesBeforeNetwork(t *testing.T) {
	t.Run("missing dosage", func(t *testing.T) {
		api := &stubAPI{}
		view := NewCreatePrescriptionView(api)
		view.PatientName = "Greg"
		if err := view.Draft.Add(entities.PrescriptionItem{MedicationID: 1, Name: "Aspirin"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		_, err := view.Submit(context.Background(), entities.Session{Username: "drhouse"})
		if !errors.Is(err, ErrMissingDosage) {
			t.Fatalf("Expected ErrMissingDosage, got: %v", err)
		}
		if api.calls != 0 {
			t.Errorf("Expected no network calls, got %d", api.calls)
		}
	})

	t.Run("missing patient", func(t *testing.T) {
		api := &stubAPI{}
		view := NewCreatePrescriptionView(api)
		if err := view.Draft.Add(entities.PrescriptionItem{MedicationID: 1, Name: "Aspirin", Dosage: "1 daily"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		_, err := view.Submit(context.Background(), entities.Session{Username: "drhouse"})
		if err == nil {
			t.Fatal("Expected error for missing patient name")
		}
		if api.calls != 0 {
			t.Errorf("Expected no network calls, got %d", api.calls)
		}
	})

	t.Run("valid submit", func(t *testing.T) {
		api := &stubAPI{}
		view := NewCreatePrescriptionView(api)
		view.PatientName = "Greg"
		if err := view.Draft.Add(entities.PrescriptionItem{MedicationID: 1, Name: "Aspirin", Dosage: "1 daily"}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		id, err := view.Submit(context.Background(), entities.Session{Username: "drhouse"})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if id != 1 {
			t.Errorf("Expected prescription id 1, got %d", id)
		}
		if !view.Draft.Empty() {
			t.Error("Expected draft cleared after submit")
		}
	})
}

func TestSignupView_GatesBeforeNetwork(t *testing.T) {
	t.Run("password mismatch", func(t *testing.T) {
		api := &stubAPI{}
		view := NewSignupView(api, &fakeSessions{})

		_, err := view.Submit(context.Background(), "alice", "a@example.com", "pass1", "pass2", entities.RoleCustomer)
		if err == nil {
			t.Fatal("Expected error for mismatched passwords")
		}
		if api.calls != 0 {
			t.Errorf("Expected no network calls, got %d", api.calls)
		}
	})

	t.Run("missing role", func(t *testing.T) {
		api := &stubAPI{}
		view := NewSignupView(api, &fakeSessions{})

		_, err := view.Submit(context.Background(), "alice", "a@example.com", "pass", "pass", entities.Role(""))
		if err == nil {
			t.Fatal("Expected error for missing role")
		}
		if api.calls != 0 {
			t.Errorf("Expected no network calls, got %d", api.calls)
		}
	})
}

func TestLoginView_StoresSession(t *testing.T) {
	api := &stubAPI{loginResult: entities.Session{Username: "alice", Role: entities.RoleCustomer}}
	sessions := &fakeSessions{}
	view := NewLoginView(api, sessions)

	sess, err := view.Submit(context.Background(), "alice", "pass1234")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if sess.Username != "alice" {
		t.Errorf("Unexpected session: %+v", sess)
	}
	if !sessions.set {
		t.Error("Expected session to be persisted")
	}
}

func TestHomeView_RenderListsInventory(t *testing.T) {
	api := &stubAPI{inventory: []entities.Medication{
		{ID: 1, Name: "Paracetamol 500mg", Price: 1234.5, Quantity: 10},
	}}
	view := NewHomeView(api)

	text, err := view.Render(context.Background(), entities.Session{Username: "alice", Role: entities.RoleCustomer})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(text, "Paracetamol 500mg") {
		t.Errorf("Expected medication name in output:\n%s", text)
	}
	if !strings.Contains(text, "$1,234.50") {
		t.Errorf("Expected formatted price in output:\n%s", text)
	}
}
