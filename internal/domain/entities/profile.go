package entities

import "time"

// Role is the resolved role of an actor. Authorization checks consume only
// the role, never credentials; token validation happens at the HTTP edge.

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupplier Role = "supplier"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSupplier, RoleAdmin:
		return true
	}
	return false
}

// Actor is an authenticated caller: an opaque id plus its resolved role.
// The empty Actor represents the system itself (scheduled jobs, payment
// reconciliation) and is recorded in history with an empty changed_by.
type Actor struct {
	ID   string
	Role Role
}

// System is the actor used for machine-triggered transitions.
var System = Actor{}

func (a Actor) IsSystem() bool {
	return a.ID == ""
}

// Profile is the stored identity record backing role resolution.
//
// Storage model (DynamoDB):
//   - PK: id
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        Role      `json:"role"`
	CompanyName string    `json:"company_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
