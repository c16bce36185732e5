// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Email uniqueness is enforced by the service through FindByEmail; the store is
// only expected to make the email queryable.
type AccountRepository interface {
	// Create persists a new account and assigns its id.
	// Role rows are managed separately through RoleRepository.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account's own fields and reports the
	// store-maintained timestamps back on the entity. Role rows are untouched.
	Update(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by id, hydrated with its roles.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByEmail retrieves a single account by exact email match, hydrated with its roles.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindAll retrieves every account, hydrated with roles, in store-defined order.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// DeleteByID removes an account row. Deleting an absent id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
