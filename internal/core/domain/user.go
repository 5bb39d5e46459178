package domain

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Role         UserRole
	PasswordHash string // empty for invisible registrations
	CreatedAt    time.Time
}

type IdentityKind int

const (
	IdentityAuthenticated IdentityKind = iota
	IdentityExistingAccount
	IdentityNewAccount
)

// Identity is the resolved owner of an order, one of three variants:
// an authenticated session, an existing account matched by email,
// or a freshly created passwordless account.
type Identity struct {
	Kind IdentityKind
	User User
}
