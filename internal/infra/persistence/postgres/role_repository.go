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

// roleRepository implements the domain.RoleRepository interface using GORM.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// SaveAll batch-inserts role rows and reports assigned ids back on the entities.
func (repo *roleRepository) SaveAll(ctx context.Context, roles []*entity.Role) error {
	if len(roles) == 0 {
		return nil
	}

	roleMs := make([]*model.RoleModel, 0, len(roles))
	for _, role := range roles {
		roleMs = append(roleMs, fromRoleDomain(role))
	}

	if err := repo.db.WithContext(ctx).Create(&roleMs).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("role references a missing account")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("missing required role information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save roles")
	}

	for i, roleM := range roleMs {
		roles[i].ID = roleM.ID
		roles[i].CreatedAt = roleM.CreatedAt
	}

	return nil
}

// DeleteByAccountID removes every role row owned by the given account.
// Zero affected rows is not an error.
func (repo *roleRepository) DeleteByAccountID(ctx context.Context, accountID int64) error {
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.RoleModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete roles by account id")
	}

	return nil
}

// FindByAccountID retrieves the role rows owned by the given account.
func (repo *roleRepository) FindByAccountID(ctx context.Context, accountID int64) ([]*entity.Role, error) {
	var roleMs []*model.RoleModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&roleMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find roles by account id")
	}

	roles := make([]*entity.Role, 0, len(roleMs))
	for _, roleM := range roleMs {
		roles = append(roles, toRoleDomain(roleM))
	}

	return roles, nil
}
