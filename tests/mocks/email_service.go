package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNewIssueAlert(ctx context.Context, toEmail, adminName, citizenName, issueTitle, category string) error {
	args := m.Called(ctx, toEmail, adminName, citizenName, issueTitle, category)
	return args.Error(0)
}

func (m *EmailService) SendAdminWelcome(ctx context.Context, toEmail, adminName, username string) error {
	args := m.Called(ctx, toEmail, adminName, username)
	return args.Error(0)
}
