package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/mocks"
	"accounts/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubRepoFactory hands back the test's mock repositories as the
// transaction-bound instances.
type stubRepoFactory struct {
	accountRepo repository.AccountRepository
	roleRepo    repository.RoleRepository
}

func (f *stubRepoFactory) AccountRepo() repository.AccountRepository { return f.accountRepo }

func (f *stubRepoFactory) RoleRepo() repository.RoleRepository { return f.roleRepo }

// stubTxManager runs the unit of work inline and propagates its error, the
// same contract the real manager provides minus the database transaction.
type stubTxManager struct {
	factory *stubRepoFactory
	execErr error
	calls   int
}

func (m *stubTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	m.calls++
	if m.execErr != nil {
		return m.execErr
	}

	return fn(m.factory)
}

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	txManager   *stubTxManager
	accountRepo *mocks.MockAccountRepository
	roleRepo    *mocks.MockRoleRepository
	hasher      *mocks.MockPasswordHasher
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	accountRepo := mocks.NewMockAccountRepository(t)
	roleRepo := mocks.NewMockRoleRepository(t)
	hasher := mocks.NewMockPasswordHasher(t)
	txManager := &stubTxManager{
		factory: &stubRepoFactory{
			accountRepo: accountRepo,
			roleRepo:    roleRepo,
		},
	}

	service := NewAccountService(AccountServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		RoleRepo:    roleRepo,
		Hasher:      hasher,
		Logger:      newDiscardLogger(),
	})

	return accountServiceFixtures{
		service:     service,
		txManager:   txManager,
		accountRepo: accountRepo,
		roleRepo:    roleRepo,
		hasher:      hasher,
	}
}

func requireAppErrorCode(t *testing.T, err error, code string) domainerrors.AppError {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.ErrorCode())

	return appErr
}

func int64Ptr(v int64) *int64 { return &v }

var errBoom = errors.New("boom")
