// Package entity contains the core business objects of the project.
package entity

import "time"

// Role is a named permission tag owned by exactly one account. Roles have no
// identity of their own outside their owner: they are created and destroyed
// wholesale alongside the owning account's saves and deletes.
type Role struct {
	ID        int64     // Store-assigned identifier.
	AccountID int64     // The owning account's id. Roles are never shared between accounts.
	Name      string    // Free-form role tag, e.g. "ADMIN".
	CreatedAt time.Time // Timestamp of when this role row was inserted.
}
