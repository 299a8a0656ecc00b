package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cloudpeak/authgate/internal/models"
)

type MockAuthFlow struct {
	mock.Mock
}

func (m *MockAuthFlow) Register(ctx context.Context, req models.CredentialsRequest) (*models.RegisterResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegisterResult), args.Error(1)
}

func (m *MockAuthFlow) Login(ctx context.Context, req models.CredentialsRequest) (*models.LoginResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResult), args.Error(1)
}

func (m *MockAuthFlow) ConfirmVerification(ctx context.Context, req models.VerifyRequest) (*models.VerifyResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerifyResult), args.Error(1)
}
