package repository

import (
	"context"

	"accounts/internal/domain/entity"
)

// RoleRepository defines persistence operations for the role rows owned by an
// account. Roles are an owned collection: the only write operations are a
// wholesale delete by owner and a batch insert, which together implement the
// service's replace-on-save protocol.
type RoleRepository interface {
	// SaveAll inserts the given role rows, each already tagged with its owning account id.
	SaveAll(ctx context.Context, roles []*entity.Role) error

	// DeleteByAccountID removes every role row owned by the given account.
	// Deleting for an account with no roles is not an error.
	DeleteByAccountID(ctx context.Context, accountID int64) error

	// FindByAccountID retrieves the role rows owned by the given account.
	FindByAccountID(ctx context.Context, accountID int64) ([]*entity.Role, error)
}
