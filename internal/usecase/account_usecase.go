// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"
)

// --- Input DTOs ---

// SaveAccountInput defines the data required to create or update an account.
// A nil ID means create; a non-nil ID means update. A nil Roles slice leaves
// the persisted role set untouched; a non-empty slice replaces it wholesale.
type SaveAccountInput struct {
	ID        *int64
	Email     string
	LastName  string
	FirstName string
	// Password is the optional plaintext secret. When blank on an update the
	// previously stored digest is carried forward unchanged.
	Password string
	Roles    []string
}

// ChangePasswordInput defines the data required to change an account's
// password. It is a transient value and is never persisted.
type ChangePasswordInput struct {
	ID              *int64
	Password        string
	ConfirmPassword string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// Save validates the payload, enforces email uniqueness, hashes the
	// credential when supplied, persists the account and replaces its role
	// set when one is given. Returns the hydrated account as persisted.
	Save(ctx context.Context, input *SaveAccountInput) (*entity.Account, error)

	// FindByID returns the hydrated account, or nil when id itself is nil.
	FindByID(ctx context.Context, id *int64) (*entity.Account, error)

	// FindByEmail returns the hydrated account matching the exact email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindAll returns every account, hydrated with roles.
	FindAll(ctx context.Context) ([]*entity.Account, error)

	// Delete removes the account and its roles. A nil id is a no-op, and
	// deleting an absent id does not raise.
	Delete(ctx context.Context, id *int64) error

	// ChangePassword verifies the request, hashes the new secret and
	// overwrites the stored digest. Returns the hydrated account.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) (*entity.Account, error)
}
