// Package mocks provides testify-based test doubles for the domain contracts.
package mocks

import (
	"context"
	"testing"

	"accounts/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a new mock and registers expectation checks
// with the test's cleanup.
func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
