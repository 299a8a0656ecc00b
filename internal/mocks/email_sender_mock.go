package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendVerificationEmail(ctx context.Context, toEmail, verifyToken string) error {
	args := m.Called(ctx, toEmail, verifyToken)
	return args.Error(0)
}
