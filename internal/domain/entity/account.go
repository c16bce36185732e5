// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Account is the core entity in the system, representing a single user record.
// The ID is assigned by the store on first persistence; a zero ID means the
// account has never been saved.
type Account struct {
	ID           int64     // Store-assigned identifier, present only after the first save.
	Email        string    // Unique login/contact address across all accounts.
	LastName     string    // The account holder's family name.
	FirstName    string    // The account holder's given name.
	PasswordHash string    // One-way credential digest. Never holds the plaintext secret.
	Roles        []*Role   // The role assignments owned by this account. Order carries no meaning.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// RoleNames returns the names of the account's role assignments.
func (a *Account) RoleNames() []string {
	names := make([]string, 0, len(a.Roles))
	for _, role := range a.Roles {
		names = append(names, role.Name)
	}

	return names
}

// HasRole reports whether the account owns a role with the given name.
func (a *Account) HasRole(name string) bool {
	for _, role := range a.Roles {
		if role.Name == name {
			return true
		}
	}

	return false
}
