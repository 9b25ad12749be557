package entities

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDonor      Role = "donor"
	RoleStudent    Role = "student"
	RoleDepartment Role = "department"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDonor, RoleStudent, RoleDepartment:
		return true
	}
	return false
}

// User is an account in the identity context. PasswordHash is a bcrypt hash
// and never leaves this context.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Department   string
	StudentID    string
	SourceTag    string
	CreatedAt    time.Time
}

// Identity is the resolved caller handed to the ledgers after credential
// verification.
type Identity struct {
	UserID    int64
	Role      Role
	SourceTag string
}
