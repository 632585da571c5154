package validation

import (
	"testing"

	"github.com/mylittlefarma/pharmacy-api/entities"
)

func TestNewDataValidator(t *testing.T) {
	validator := NewDataValidator()

	if validator == nil {
		t.Fatal("NewDataValidator returned nil")
	}

	if _, ok := validator.(*DataValidatorImpl); !ok {
		t.Error("NewDataValidator should return *DataValidatorImpl")
	}
}

func TestValidateInput_DangerousPatterns(t *testing.T) {
	validator := NewDataValidator()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain text", "Paracetamol 500mg", false},
		{"script tag", "<script>alert(1)</script>", true},
		{"sql union", "x union select password", true},
		{"sql comment", "name -- drop", true},
		{"path traversal", "../../etc/passwd", true},
		{"mixed case", "<ScRiPt>", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInput(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMedication(t *testing.T) {
	validator := NewDataValidator()

	tests := []struct {
		name     string
		drugName string
		quantity int
		price    float64
		wantErr  bool
	}{
		{"valid", "Aspirin 100mg", 50, 3.99, false},
		{"empty name", "", 50, 3.99, true},
		{"whitespace name", "   ", 50, 3.99, true},
		{"zero price", "Aspirin", 50, 0, true},
		{"negative price", "Aspirin", 50, -1, true},
		{"price too large", "Aspirin", 50, 1000000.0, true},
		{"negative quantity", "Aspirin", -1, 3.99, true},
		{"zero quantity ok", "Aspirin", 0, 3.99, false},
		{"quantity too large", "Aspirin", 1000000, 3.99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateMedication(tt.drugName, tt.quantity, tt.price)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMedication error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSignup(t *testing.T) {
	validator := NewDataValidator()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		role     entities.Role
		wantErr  bool
	}{
		{"valid customer", "alice", "alice@example.com", "pass1234", entities.RoleCustomer, false},
		{"valid practitioner", "dr.house", "house@example.com", "vicodin", entities.RolePractitioner, false},
		{"empty username", "", "a@example.com", "pass1234", entities.RoleCustomer, true},
		{"username with spaces", "dr house", "a@example.com", "pass1234", entities.RoleCustomer, true},
		{"invalid email", "alice", "not-an-email", "pass1234", entities.RoleCustomer, true},
		{"short password", "alice", "a@example.com", "abc", entities.RoleCustomer, true},
		{"unknown role", "alice", "a@example.com", "pass1234", entities.Role("admin"), true},
		{"missing role", "alice", "a@example.com", "pass1234", entities.Role(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSignup(tt.username, tt.email, tt.password, tt.role)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSignup error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateOrder(t *testing.T) {
	validator := NewDataValidator()

	valid := func() *entities.Order {
		return &entities.Order{
			Customer: "alice",
			Items: []entities.OrderItem{
				{MedicationID: 1, Name: "Aspirin", Price: 3.0, Quantity: 2},
			},
		}
	}

	t.Run("valid order", func(t *testing.T) {
		if err := validator.ValidateOrder(valid()); err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
	})

	t.Run("nil order", func(t *testing.T) {
		if err := validator.ValidateOrder(nil); err == nil {
			t.Error("Expected error for nil order")
		}
	})

	t.Run("missing customer", func(t *testing.T) {
		o := valid()
		o.Customer = " "
		if err := validator.ValidateOrder(o); err == nil {
			t.Error("Expected error for missing customer")
		}
	})

	t.Run("empty items", func(t *testing.T) {
		o := valid()
		o.Items = nil
		if err := validator.ValidateOrder(o); err == nil {
			t.Error("Expected error for empty order")
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		o := valid()
		o.Items[0].Quantity = 0
		if err := validator.ValidateOrder(o); err == nil {
			t.Error("Expected error for zero quantity")
		}
	})

	t.Run("duplicate medication", func(t *testing.T) {
		o := valid()
		o.Items = append(o.Items, o.Items[0])
		if err := validator.ValidateOrder(o); err == nil {
			t.Error("Expected error for duplicate medication")
		}
	})
}

func TestValidatePrescription(t *testing.T) {
	validator := NewDataValidator()

	valid := func() *entities.Prescription {
		return &entities.Prescription{
			Doctor:      "drhouse",
			PatientName: "Greg",
			Type:        entities.PrescriptionRegular,
			Medications: []entities.PrescriptionItem{
				{MedicationID: 1, Name: "Aspirin", Dosage: "1 daily"},
			},
		}
	}

	t.Run("valid prescription", func(t *testing.T) {
		if err := validator.ValidatePrescription(valid()); err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
	})

	t.Run("nil prescription", func(t *testing.T) {
		if err := validator.ValidatePrescription(nil); err == nil {
			t.Error("Expected error for nil prescription")
		}
	})

	t.Run("missing patient", func(t *testing.T) {
		p := valid()
		p.PatientName = ""
		if err := validator.ValidatePrescription(p); err == nil {
			t.Error("Expected error for missing patient name")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		p := valid()
		p.Type = entities.PrescriptionType("verbal")
		if err := validator.ValidatePrescription(p); err == nil {
			t.Error("Expected error for unknown type")
		}
	})

	t.Run("empty dosage", func(t *testing.T) {
		p := valid()
		p.Medications[0].Dosage = "  "
		if err := validator.ValidatePrescription(p); err == nil {
			t.Error("Expected error for empty dosage")
		}
	})

	t.Run("duplicate medication", func(t *testing.T) {
		p := valid()
		p.Medications = append(p.Medications, p.Medications[0])
		if err := validator.ValidatePrescription(p); err == nil {
			t.Error("Expected error for duplicate medication")
		}
	})
}
