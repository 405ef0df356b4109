package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/blogicum/config"
)

func TestNew_Routes(t *testing.T) {
	// pg.Connect is lazy; the routes below never reach the database.
	conn := pg.Connect(&pg.Options{Addr: "127.0.0.1:1"})
	defer conn.Close()

	a := New(config.Default(), conn, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, rpcPath, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"blog.unknown"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	require.NotEqual(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}
