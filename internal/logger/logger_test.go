package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_RoleField verifies that every entry produced by a named
// logger carries the "role" field identifying the process.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("custody-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := logEntry(t, &buf)
	assert.Equal(t, "custody-server", entry["role"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNewLogger_GlobalSetup verifies the process-wide zerolog settings the
// constructor applies: debug level and "func" as the caller field name.
func TestNewLogger_GlobalSetup(t *testing.T) {
	l := NewLogger("custody-server")
	require.NotNil(t, l)

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

// TestNop_DiscardsOutput verifies that the test logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	require.NotNil(t, l)
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// TestGetChildLogger verifies that a child is a distinct instance that
// still carries the parent's context fields.
func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("mail-dispatcher")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	require.NotNil(t, child)
	assert.NotSame(t, parent, child)

	child.Logger = child.Output(&buf)
	child.Info().Msg("child message")

	assert.Equal(t, "mail-dispatcher", logEntry(t, &buf)["role"])
}

// TestFromContext verifies both branches: a logger attached to the context
// is returned with its fields, and a bare context still yields a usable
// logger rather than nil.
func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "trace-1").Logger()
	ctx := zl.WithContext(context.Background())

	l := FromContext(ctx)
	require.NotNil(t, l)
	l.Info().Msg("from context")

	assert.Equal(t, "trace-1", logEntry(t, &buf)["trace_id"])
}

// TestFromRequest verifies that the request-scoped logger set up by the
// middleware chain is recovered from the request context.
func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	require.NotNil(t, FromRequest(req))

	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "trace-2").Logger()
	req = req.WithContext(zl.WithContext(req.Context()))

	l := FromRequest(req)
	require.NotNil(t, l)
	l.Info().Msg("from request")

	assert.Equal(t, "trace-2", logEntry(t, &buf)["trace_id"])
}
