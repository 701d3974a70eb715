package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inkhive/pkg/logger"
	"github.com/dmitrymomot/inkhive/pkg/requestid"
)

func serve(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()
	h := requestid.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctxID = requestid.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(requestid.Header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(requestid.Header)
}

func TestMiddleware_ReusesValidIDs(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"abc123", "ABC-123_xyz", "550e8400-e29b-41d4-a716-446655440000"} {
		ctxID, headerID := serve(t, id)
		assert.Equal(t, id, ctxID)
		assert.Equal(t, id, headerID)
	}
}

func TestMiddleware_ReplacesInvalidIDs(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "a b", "a/b", "<script>", strings.Repeat("x", 129)} {
		ctxID, headerID := serve(t, id)
		require.NotEmpty(t, ctxID)
		assert.NotEqual(t, id, ctxID)
		assert.Equal(t, ctxID, headerID)
	}
}

func TestPropagate(t *testing.T) {
	t.Parallel()

	h := http.Header{}
	requestid.Propagate(context.Background(), h)
	assert.Empty(t, h.Get(requestid.Header))

	requestid.Propagate(requestid.WithContext(context.Background(), "req-1"), h)
	assert.Equal(t, "req-1", h.Get(requestid.Header))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithContextExtractors(requestid.LoggerExtractor()))

	log.InfoContext(requestid.WithContext(context.Background(), "req-7"), "hello")
	assert.Contains(t, buf.String(), `"request_id":"req-7"`)
}
