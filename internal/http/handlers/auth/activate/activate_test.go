package activate

import (
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

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Activate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestActivateHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "successful activation",
			code:           "deadbeefdeadbeefdeadbeefdeadbeef",
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "unknown or consumed code",
			code:           "deadbeefdeadbeefdeadbeefdeadbeef",
			mockErr:        fmt.Errorf("auth.Activate: %w", auth.ErrInvalidOrAlreadyActivated),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid activation code or account already activated",
			wantStatus:     "Error",
		},
		{
			name:           "store error",
			code:           "deadbeefdeadbeefdeadbeefdeadbeef",
			mockErr:        errors.New("connection reset"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "unable to activate your account, try again later",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			authMock.On("Activate", mock.Anything, tt.code).Return(tt.mockErr).Once()

			handler := New(newNoopLogger(), authMock)

			req := httptest.NewRequest(http.MethodGet, "/activate?code="+tt.code, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
