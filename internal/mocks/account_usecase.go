package mocks

import (
	"context"
	"testing"

	"accounts/internal/domain/entity"
	"accounts/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockAccountUsecase is a mock implementation of usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

// NewMockAccountUsecase creates a new mock and registers expectation checks
// with the test's cleanup.
func NewMockAccountUsecase(t *testing.T) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountUsecase) Save(ctx context.Context, input *usecase.SaveAccountInput) (*entity.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) FindByID(ctx context.Context, id *int64) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) FindAll(ctx context.Context) ([]*entity.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Account), args.Error(1)
}

func (m *MockAccountUsecase) Delete(ctx context.Context, id *int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockAccountUsecase) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) (*entity.Account, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}
