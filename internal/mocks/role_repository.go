package mocks

import (
	"context"
	"testing"

	"accounts/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockRoleRepository is a mock implementation of repository.RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

// NewMockRoleRepository creates a new mock and registers expectation checks
// with the test's cleanup.
func NewMockRoleRepository(t *testing.T) *MockRoleRepository {
	m := &MockRoleRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRoleRepository) SaveAll(ctx context.Context, roles []*entity.Role) error {
	args := m.Called(ctx, roles)

	return args.Error(0)
}

func (m *MockRoleRepository) DeleteByAccountID(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)

	return args.Error(0)
}

func (m *MockRoleRepository) FindByAccountID(ctx context.Context, accountID int64) ([]*entity.Role, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Role), args.Error(1)
}
