package welcome

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oforha-ai/account-service/internal/http/middlewarectx"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestWelcomeHandler_ServeHTTP(t *testing.T) {
	handler := New(newNoopLogger())

	t.Run("greets authenticated user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, "alice"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		data, ok := got["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice", data["username"])
		assert.Equal(t, "welcome, alice", data["message"])
	})

	t.Run("rejects missing session context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/welcome", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
