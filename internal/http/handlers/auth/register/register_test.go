package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oforha-ai/account-service/internal/services/auth"
)

// Мок сервиса с методом Register
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, username, email, password string) (string, error) {
	args := m.Called(ctx, username, email, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockErr        error
		mockNeeded     bool
		wantStatusCode int
		wantData       map[string]any
		wantError      string
		wantStatus     string
	}{
		{
			name: "valid registration",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockNeeded:     true,
			wantStatusCode: http.StatusCreated,
			wantData: map[string]any{
				"message":  "registration successful, check your email to activate your account",
				"username": "user1",
			},
			wantStatus: "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "validation error - missing password",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name: "validation error - malformed email",
			requestBody: Request{
				Username: "user1",
				Email:    "not-an-email",
				Password: "password123",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Email must be a valid email address",
			wantStatus:     "Error",
		},
		{
			// min=3 на HTTP-слое пропускает пробелы, отказ приходит из сервиса
			name: "whitespace-only username",
			requestBody: Request{
				Username: "   ",
				Email:    "blank@example.com",
				Password: "password123",
			},
			mockNeeded:     true,
			mockErr:        fmt.Errorf("auth.Register: %w", auth.ErrInvalidUsername),
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "username must not be empty",
			wantStatus:     "Error",
		},
		{
			name: "duplicate identity",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockNeeded:     true,
			mockErr:        fmt.Errorf("auth.Register: %w", auth.ErrDuplicateIdentity),
			wantStatusCode: http.StatusConflict,
			wantError:      "username or email already taken, choose another",
			wantStatus:     "Error",
		},
		{
			name: "notification failed",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockNeeded:     true,
			mockErr:        fmt.Errorf("auth.Register: %w", auth.ErrNotificationFailed),
			wantStatusCode: http.StatusBadGateway,
			wantError:      "unable to send activation email, try again later",
			wantStatus:     "Error",
		},
		{
			name: "store error",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockNeeded:     true,
			mockErr:        errors.New("connection reset"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "unable to register at this time, try again later",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.mockNeeded {
				authMock.On("Register", mock.Anything,
					mock.Anything,
					mock.Anything,
					mock.Anything,
				).Return("uid-1", tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), authMock)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
			}

			if tt.wantData != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				for k, v := range tt.wantData {
					assert.Equal(t, v, data[k])
				}
			} else {
				assert.Nil(t, got["data"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
