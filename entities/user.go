package entities

import "time"

// Role identifies what a signed-in user is allowed to do.
type Role string

const (
	RoleCustomer     Role = "customer"
	RolePharmacist   Role = "pharmacist"
	RolePractitioner Role = "practitioner"
)

// KnownRole reports whether r is one of the roles the system hands out.
func KnownRole(r Role) bool {
	switch r {
	case RoleCustomer, RolePharmacist, RolePractitioner:
		return true
	}
	return false
}

type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	CreatedDate time.Time `json:"created_date"`
}

// Session is the client-held identity record. It is unsigned and entirely
// client-asserted; the server issues a token on login but never checks it.
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
