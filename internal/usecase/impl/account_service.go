// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/domain/validation"
	"accounts/internal/metrics"
	"accounts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	roleRepo    repository.RoleRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for the account service, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	RoleRepo    repository.RoleRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		roleRepo:    params.RoleRepo,
		hasher:      params.Hasher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Save creates or updates an account. The payload is validated first, email
// uniqueness is enforced, the credential is hashed (or carried forward on a
// password-less update), and when a role list is given the persisted role set
// is replaced wholesale. The account write and role writes share one
// transaction, so readers never observe a half-replaced role set.
func (srv *accountService) Save(ctx context.Context, input *usecase.SaveAccountInput) (*entity.Account, error) {
	if input == nil {
		return nil, srv.saveFailure(ctx, domainerrors.ErrValidationFailed.WithDetails([]string{"payload is required"}))
	}

	srv.log(ctx).Debug("Saving account", slog.String("email", input.Email), slog.Bool("update", input.ID != nil))

	violations := validation.ValidateAccount(validation.AccountPayload{
		Email:     input.Email,
		LastName:  input.LastName,
		FirstName: input.FirstName,
	})
	if len(violations) > 0 {
		srv.log(ctx).Warn("Account payload rejected", slog.String("email", input.Email), slog.Any("violations", violations))

		return nil, srv.saveFailure(ctx, domainerrors.ErrValidationFailed.WithDetails(violations))
	}

	isUpdate := input.ID != nil

	var saved *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		roleRepo := repoFactory.RoleRepo()

		if err := srv.checkEmailAvailable(ctx, accountRepo, input); err != nil {
			return err
		}

		account := &entity.Account{
			Email:     input.Email,
			LastName:  input.LastName,
			FirstName: input.FirstName,
		}
		if isUpdate {
			account.ID = *input.ID
		}

		if err := srv.resolveCredential(ctx, accountRepo, input, account); err != nil {
			return err
		}

		// Account fields first, roles second. Roles are never written through
		// the account row itself.
		if isUpdate {
			if err := accountRepo.Update(ctx, account); err != nil {
				if errors.Is(err, repository.ErrAccountNotFound) {
					return domainerrors.ErrAccountNotFound.WrapMessage("account to update does not exist")
				}

				return errors.Wrap(err, "failed to update account")
			}
		} else {
			if err := accountRepo.Create(ctx, account); err != nil {
				return errors.Wrap(err, "failed to create account")
			}
		}

		if err := srv.applyRoles(ctx, roleRepo, input, account, isUpdate); err != nil {
			return err
		}

		saved = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account save transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, srv.saveFailure(ctx, err)
	}

	kind := "created"
	if isUpdate {
		kind = "updated"
	}
	metrics.SavesTotal.WithLabelValues(kind).Inc()
	srv.log(ctx).Debug("Account saved", slog.Int64("accountID", saved.ID), slog.String("kind", kind))

	return saved, nil
}

// checkEmailAvailable enforces the email uniqueness invariant. An account may
// keep its own email on update; colliding with a different account's email is
// rejected on both create and update.
func (srv *accountService) checkEmailAvailable(ctx context.Context, accountRepo repository.AccountRepository, input *usecase.SaveAccountInput) error {
	owner, err := accountRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to check email availability")
	}

	if input.ID != nil && owner.ID == *input.ID {
		return nil
	}

	srv.log(ctx).Warn("Email already used by another account", slog.String("email", input.Email), slog.Int64("ownerID", owner.ID))

	return domainerrors.ErrEmailAlreadyUsed.WrapMessage("email already used by another account")
}

// resolveCredential sets the digest on the account-to-persist: a supplied
// secret is hashed, while a password-less update carries the stored digest
// forward so the credential is never silently cleared.
func (srv *accountService) resolveCredential(ctx context.Context, accountRepo repository.AccountRepository, input *usecase.SaveAccountInput, account *entity.Account) error {
	if strings.TrimSpace(input.Password) != "" {
		digest, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during save", slog.Any("error", err))

			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during save")
		}
		account.PasswordHash = digest

		return nil
	}

	if input.ID == nil {
		return nil
	}

	current, err := accountRepo.FindByID(ctx, *input.ID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return domainerrors.ErrAccountNotFound.WrapMessage("account to update does not exist")
	}
	if err != nil {
		return errors.Wrap(err, "failed to load current credential")
	}
	account.PasswordHash = current.PasswordHash

	return nil
}

// applyRoles implements the role-replacement protocol: a non-empty role list
// replaces the persisted set wholesale (delete-by-owner, then batch insert);
// an absent list leaves the persisted set untouched.
func (srv *accountService) applyRoles(ctx context.Context, roleRepo repository.RoleRepository, input *usecase.SaveAccountInput, account *entity.Account, isUpdate bool) error {
	if len(input.Roles) == 0 {
		if !isUpdate {
			account.Roles = []*entity.Role{}

			return nil
		}

		roles, err := roleRepo.FindByAccountID(ctx, account.ID)
		if err != nil {
			return errors.Wrap(err, "failed to load existing roles")
		}
		account.Roles = roles

		return nil
	}

	if isUpdate {
		if err := roleRepo.DeleteByAccountID(ctx, account.ID); err != nil {
			return errors.Wrap(err, "failed to delete existing roles")
		}
	}

	roles := make([]*entity.Role, 0, len(input.Roles))
	for _, name := range input.Roles {
		roles = append(roles, &entity.Role{
			AccountID: account.ID,
			Name:      name,
		})
	}

	if err := roleRepo.SaveAll(ctx, roles); err != nil {
		return errors.Wrap(err, "failed to save roles")
	}
	account.Roles = roles

	return nil
}

// FindByID returns the hydrated account. A nil id is a benign no-op returning
// an absent result, not an error; a real miss fails with ErrAccountNotFound.
func (srv *accountService) FindByID(ctx context.Context, id *int64) (*entity.Account, error) {
	if id == nil {
		srv.log(ctx).Warn("FindByID called with nil id")

		return nil, nil
	}

	account, err := srv.accountRepo.FindByID(ctx, *id)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, srv.findFailure(ctx, domainerrors.ErrAccountNotFound.WrapMessage("no account with the requested id"))
	}
	if err != nil {
		return nil, srv.findFailure(ctx, errors.Wrap(err, "failed to find account by id"))
	}

	return account, nil
}

// FindByEmail returns the hydrated account matching the exact email.
func (srv *accountService) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, srv.findFailure(ctx, domainerrors.ErrAccountNotFound.WrapMessage("no account with the requested email"))
	}
	if err != nil {
		return nil, srv.findFailure(ctx, errors.Wrap(err, "failed to find account by email"))
	}

	return account, nil
}

// FindAll returns every account, hydrated with roles, in store-defined order.
func (srv *accountService) FindAll(ctx context.Context) ([]*entity.Account, error) {
	accounts, err := srv.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, srv.findFailure(ctx, errors.Wrap(err, "failed to list accounts"))
	}

	return accounts, nil
}

// Delete removes the account's role rows first and the account row second, in
// one transaction, to satisfy the referential constraint. A nil id is a
// no-op; deleting an already-absent id does not raise.
func (srv *accountService) Delete(ctx context.Context, id *int64) error {
	if id == nil {
		srv.log(ctx).Warn("Delete called with nil id")

		return nil
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.RoleRepo().DeleteByAccountID(ctx, *id); err != nil {
			return errors.Wrap(err, "failed to delete roles for account")
		}

		if err := repoFactory.AccountRepo().DeleteByID(ctx, *id); err != nil {
			return errors.Wrap(err, "failed to delete account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute account delete transaction", slog.Int64("accountID", *id), slog.Any("error", err))
		metrics.OperationErrorsTotal.WithLabelValues("delete", failureReason(err)).Inc()

		return errors.Wrap(err, "failed to execute account delete transaction")
	}

	metrics.DeletesTotal.Inc()
	srv.log(ctx).Debug("Account deleted", slog.Int64("accountID", *id))

	return nil
}

// ChangePassword verifies the request step by step, each failure reported as a
// distinct reason, then hashes the new secret and overwrites the stored
// digest. Confirmation matching compares the two plaintext inputs before any
// hashing; digests are never compared to each other.
func (srv *accountService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) (*entity.Account, error) {
	if err := validateChangeRequest(input); err != nil {
		srv.log(ctx).Warn("Password change request rejected", slog.Any("error", err))
		metrics.OperationErrorsTotal.WithLabelValues("change_password", failureReason(err)).Inc()

		return nil, err
	}

	account, err := srv.accountRepo.FindByID(ctx, *input.ID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		srv.log(ctx).Warn("No account for password change", slog.Int64("accountID", *input.ID))
		metrics.OperationErrorsTotal.WithLabelValues("change_password", failureReason(domainerrors.ErrAccountNotFound)).Inc()

		return nil, domainerrors.ErrAccountNotFound.WrapMessage("no account with the requested id")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load account for password change")
	}

	digest, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during change", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash new password")
	}
	account.PasswordHash = digest

	// Single-row credential update, no role writes involved. The account can
	// still vanish between the read above and this write.
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account disappeared before password change")
		}

		return nil, errors.Wrap(err, "failed to persist new password")
	}

	metrics.PasswordChangesTotal.Inc()
	srv.log(ctx).Debug("Password changed", slog.Int64("accountID", account.ID))

	return account, nil
}

// validateChangeRequest checks the password change input in contract order:
// request present, id present, both secrets present, secrets equal.
func validateChangeRequest(input *usecase.ChangePasswordInput) error {
	if input == nil {
		return domainerrors.ErrChangeRequestInvalid.WithDetails("missing request")
	}
	if input.ID == nil {
		return domainerrors.ErrChangeRequestInvalid.WithDetails("missing id")
	}
	if strings.TrimSpace(input.Password) == "" || strings.TrimSpace(input.ConfirmPassword) == "" {
		return domainerrors.ErrChangeRequestInvalid.WithDetails("missing secret")
	}
	if input.Password != input.ConfirmPassword {
		return domainerrors.ErrChangeRequestInvalid.WithDetails("mismatch")
	}

	return nil
}

func (srv *accountService) saveFailure(ctx context.Context, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues("save", failureReason(err)).Inc()

	return err
}

func (srv *accountService) findFailure(ctx context.Context, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues("find", failureReason(err)).Inc()

	return err
}

// failureReason extracts the business error code for metric labels, keeping
// label cardinality bounded.
func failureReason(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.ErrorCode()
	}

	return "INTERNAL"
}
