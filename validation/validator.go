// Package validation provides request validation for the pharmacy API.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/mylittlefarma/pharmacy-api/entities"
	"github.com/mylittlefarma/pharmacy-api/interfaces"
)

// Validation limits
const (
	MaxNameLength = 100
	MaxPrice      = 999999.99
	MaxQuantity   = 999999
	MaxNotes      = 2000
	MaxUsername   = 50
	MinPassword   = 4
)

// Pre-compiled regex patterns, compiled once at package initialization
var (
	// Usernames: alphanumeric plus a few safe separators
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

	// Dangerous patterns as strings (faster than regex for substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "onload=", "onerror=",
		"onclick=", "eval(", "expression(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from",
		"insert into", "--", "/*", "*/",
		// Path traversal patterns
		"../", "..\\", "file://",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateInput screens user-supplied strings for dangerous content
func (v *DataValidatorImpl) ValidateInput(input string) error {
	lowered := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("input contains forbidden sequence")
		}
	}
	return nil
}

// ValidateMedication checks a new inventory item
func (v *DataValidatorImpl) ValidateMedication(name string, quantity int, price float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("drug name is required")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("drug name cannot exceed %d characters", MaxNameLength)
	}
	if err := v.ValidateInput(name); err != nil {
		return err
	}

	if price <= 0 {
		return fmt.Errorf("price must be greater than 0")
	}
	if price > MaxPrice {
		return fmt.Errorf("price is too large")
	}

	if quantity < 0 {
		return fmt.Errorf("quantity must be 0 or greater")
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("quantity is too large")
	}

	return nil
}

// ValidateSignup checks a registration request
func (v *DataValidatorImpl) ValidateSignup(username, email, password string, role entities.Role) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > MaxUsername {
		return fmt.Errorf("username cannot exceed %d characters", MaxUsername)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username contains invalid characters")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address")
	}

	if len(password) < MinPassword {
		return fmt.Errorf("password must be at least %d characters", MinPassword)
	}

	if !entities.KnownRole(role) {
		return fmt.Errorf("role must be one of: customer, pharmacist, practitioner")
	}

	return nil
}

// ValidateOrder checks an incoming order
func (v *DataValidatorImpl) ValidateOrder(o *entities.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	if strings.TrimSpace(o.Customer) == "" {
		return fmt.Errorf("customer is required")
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	if len(o.Notes) > MaxNotes {
		return fmt.Errorf("notes cannot exceed %d characters", MaxNotes)
	}

	seen := make(map[int64]bool, len(o.Items))
	for _, it := range o.Items {
		if it.MedicationID <= 0 {
			return fmt.Errorf("invalid medication id: %d", it.MedicationID)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("quantity must be positive for %s", it.Name)
		}
		if it.Quantity > MaxQuantity {
			return fmt.Errorf("quantity is too large for %s", it.Name)
		}
		if seen[it.MedicationID] {
			return fmt.Errorf("duplicate medication in order: %s", it.Name)
		}
		seen[it.MedicationID] = true
	}

	return nil
}

// ValidatePrescription checks an incoming prescription
func (v *DataValidatorImpl) ValidatePrescription(p *entities.Prescription) error {
	if p == nil {
		return fmt.Errorf("prescription is nil")
	}
	if strings.TrimSpace(p.Doctor) == "" {
		return fmt.Errorf("doctor is required")
	}
	if strings.TrimSpace(p.PatientName) == "" {
		return fmt.Errorf("patient name is required")
	}
	if err := v.ValidateInput(p.PatientName); err != nil {
		return err
	}

	switch p.Type {
	case entities.PrescriptionRegular, entities.PrescriptionControlled, entities.PrescriptionRecurring:
	default:
		return fmt.Errorf("unknown prescription type: %s", p.Type)
	}

	if len(p.Medications) == 0 {
		return fmt.Errorf("prescription must contain at least one medication")
	}

	seen := make(map[int64]bool, len(p.Medications))
	for _, it := range p.Medications {
		if it.MedicationID <= 0 {
			return fmt.Errorf("invalid medication id: %d", it.MedicationID)
		}
		if strings.TrimSpace(it.Dosage) == "" {
			return fmt.Errorf("dosage is required for %s", it.Name)
		}
		if seen[it.MedicationID] {
			return fmt.Errorf("duplicate medication in prescription: %s", it.Name)
		}
		seen[it.MedicationID] = true
	}

	return nil
}
