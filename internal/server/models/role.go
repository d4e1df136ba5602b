package models

// Well-known role names. Admin is granted exactly once, to the first
// account ever registered; everyone after that gets User.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type Role struct {
	ID   string
	Name string
}

// RoleAssignment binds an account to a role. The schema allows at most one
// assignment per account.
type RoleAssignment struct {
	AccountID string
	RoleID    string
}
