package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cloudpeak/authgate/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, email, verifyToken string) error {
	args := m.Called(ctx, email, verifyToken)
	return args.Error(0)
}
