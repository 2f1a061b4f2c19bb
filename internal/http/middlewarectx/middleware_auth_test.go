package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type SessionValidatorMock struct {
	mock.Mock
}

func (m *SessionValidatorMock) Validate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSessionMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(m *SessionValidatorMock)
		wantStatusCode int
		wantUsername   string
	}{
		{
			name:       "valid session",
			authHeader: "Bearer good-token",
			setupMocks: func(m *SessionValidatorMock) {
				m.On("Validate", mock.Anything, "good-token").Return("alice", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantUsername:   "alice",
		},
		{
			name:           "missing header",
			authHeader:     "",
			setupMocks:     func(_ *SessionValidatorMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMocks:     func(_ *SessionValidatorMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "expired session",
			authHeader: "Bearer stale-token",
			setupMocks: func(m *SessionValidatorMock) {
				m.On("Validate", mock.Anything, "stale-token").
					Return("", assert.AnError).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(SessionValidatorMock)
			tt.setupMocks(validator)

			var gotUsername string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUsername, _ = r.Context().Value(User).(string)
				w.WriteHeader(http.StatusOK)
			})

			handler := SessionMiddleware(validator, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantUsername != "" {
				assert.Equal(t, tt.wantUsername, gotUsername)
			}
			validator.AssertExpectations(t)
		})
	}
}
