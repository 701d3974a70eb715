package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inkhive/pkg/environment"
	"github.com/dmitrymomot/inkhive/pkg/logger"
)

type ctxKey struct{}

func TestNew_JSONWithContextValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithAttr(slog.String("service", "test")),
		logger.WithContextValue("request_id", ctxKey{}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.InfoContext(ctx, "hello", logger.Component("session"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "test", rec["service"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "session", rec["component"])
}

func TestNew_EnvironmentDefaults(t *testing.T) {
	t.Parallel()

	t.Run("dev logs debug as text", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment(environment.Local, "svc"), logger.WithOutput(&buf))
		log.Debug("visible")
		assert.Contains(t, buf.String(), "msg=visible")
		assert.Contains(t, buf.String(), "env=local")
	})

	t.Run("prod drops debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment(environment.Production, "svc"), logger.WithOutput(&buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())
		log.Info("shown")
		assert.Contains(t, buf.String(), `"env":"prod"`)
	})
}

func TestWithLevelName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevelName("warn"))
	log.Info("dropped")
	assert.Empty(t, buf.String())
	log.Warn("kept")
	assert.NotEmpty(t, buf.String())

	buf.Reset()
	log = logger.New(logger.WithOutput(&buf), logger.WithLevelName("nonsense"))
	log.Info("default level kept")
	assert.NotEmpty(t, buf.String())
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.True(t, logger.Username("").Equal(slog.Attr{}))
	assert.Equal(t, "alice", logger.Username("alice").Value.String())
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "duration_ms", logger.Duration(1500*time.Microsecond).Key)
	assert.Equal(t, 1.5, logger.Duration(1500*time.Microsecond).Value.Float64())

	h := logger.HTTPRequest("GET", "/posts", 200)
	require.Equal(t, slog.KindGroup, h.Value.Kind())
	assert.Len(t, h.Value.Group(), 3)
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	assert.False(t, logger.Discard().Enabled(context.Background(), slog.LevelError))
}
