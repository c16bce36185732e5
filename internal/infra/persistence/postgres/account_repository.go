// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account row and reports the assigned id back on the
// entity. Role rows are not written here.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Omit("Roles").Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyUsed.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update modifies an existing account's own columns and reports the
// store-maintained timestamps back on the entity, like Create. The role
// association is deliberately excluded: role rows are replaced through
// RoleRepository inside the same transaction, never cascaded through the
// account row.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", accountM.ID).
		Select("email", "last_name", "first_name", "password_hash", "updated_at").
		Updates(accountM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailAlreadyUsed.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	var stamps model.AccountModel
	err := repo.db.WithContext(ctx).
		Select("created_at", "updated_at").
		Where("id = ?", accountM.ID).
		Take(&stamps).Error
	if err != nil {
		return errors.Wrap(err, "failed to reload account timestamps")
	}
	account.CreatedAt = stamps.CreatedAt
	account.UpdatedAt = stamps.UpdatedAt

	return nil
}

// FindByID retrieves a single account by id, preloading its role rows.
func (repo *accountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("id = ?", id).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by exact email match, preloading its role rows.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Where("email = ?", email).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindAll retrieves every account, preloading role rows. Ordering is the
// store's insertion order by primary key; no stronger contract is offered.
func (repo *accountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	var accountMs []*model.AccountModel
	err := repo.db.WithContext(ctx).
		Preload("Roles").
		Order("id").
		Find(&accountMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountMs))
	for _, accountM := range accountMs {
		accounts = append(accounts, toAccountDomain(accountM))
	}

	return accounts, nil
}

// DeleteByID removes an account row. Deleting an absent id affects zero rows
// and is not an error, preserving idempotent-delete semantics.
func (repo *accountRepository) DeleteByID(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AccountModel{}).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("account still referenced by other rows")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to delete account")
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	roles := make([]*entity.Role, 0, len(data.Roles))
	for _, roleM := range data.Roles {
		roles = append(roles, toRoleDomain(roleM))
	}

	return &entity.Account{
		ID:           data.ID,
		Email:        data.Email,
		LastName:     data.LastName,
		FirstName:    data.FirstName,
		PasswordHash: data.PasswordHash,
		Roles:        roles,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Email:        data.Email,
		LastName:     data.LastName,
		FirstName:    data.FirstName,
		PasswordHash: data.PasswordHash,
	}
}

// toRoleDomain converts a GORM RoleModel to a domain Role entity.
func toRoleDomain(data *model.RoleModel) *entity.Role {
	if data == nil {
		return nil
	}

	return &entity.Role{
		ID:        data.ID,
		AccountID: data.AccountID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
	}
}

// fromRoleDomain converts a domain Role entity to a GORM RoleModel.
func fromRoleDomain(data *entity.Role) *model.RoleModel {
	if data == nil {
		return nil
	}

	return &model.RoleModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		Name:      data.Name,
	}
}
