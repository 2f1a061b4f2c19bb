package sender

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oforha-ai/account-service/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSender() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSenderService_SendActivationEmail(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*MockTransport)
		expectedError bool
	}{
		{
			name: "success - activation email sent",
			setupMocks: func(tr *MockTransport) {
				mockClient := new(MockSMTPClient)
				mockWriter := new(MockSMTPWriter)

				tr.On("GetSender").Return("no-reply@oforha.ai")
				tr.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "no-reply@oforha.ai").Return(nil).Once()
				mockClient.On("Rcpt", "alice@example.com").Return(nil).Once()
				mockClient.On("Data").Return(mockWriter, nil).Once()
				mockWriter.On("Write", mock.AnythingOfType("[]uint8")).Return(100, nil).Once()
				mockWriter.On("Close").Return(nil).Once()
				mockClient.On("Quit").Return(nil).Once()
				mockClient.On("Close").Return(nil)
			},
			expectedError: false,
		},
		{
			name: "failure - connect error",
			setupMocks: func(tr *MockTransport) {
				tr.On("GetSender").Return("no-reply@oforha.ai")
				tr.On("Connect").Return(nil, errors.New("dial tcp: connection refused")).Once()
			},
			expectedError: true,
		},
		{
			name: "failure - recipient rejected",
			setupMocks: func(tr *MockTransport) {
				mockClient := new(MockSMTPClient)

				tr.On("GetSender").Return("no-reply@oforha.ai")
				tr.On("Connect").Return(mockClient, nil).Once()
				mockClient.On("Mail", "no-reply@oforha.ai").Return(nil).Once()
				mockClient.On("Rcpt", "alice@example.com").Return(errors.New("550 mailbox unavailable")).Once()
				mockClient.On("Close").Return(nil)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			tt.setupMocks(transport)

			svc := NewSenderService(newNoopLogger(), transport)
			err := svc.SendActivationEmail("alice@example.com", "alice",
				"https://oforha.ai/api/v1/activate?code=deadbeef")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			transport.AssertExpectations(t)
		})
	}
}
