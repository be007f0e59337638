package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, format logFormat) (*slog.Logger, func() string) {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	handler := newStructuredHandler(handlerConfig{
		level:    slog.LevelDebug,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	return slog.New(handler), func() string {
		require.NoError(t, aw.Close())
		return strings.TrimSpace(buf.String())
	}
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	ctx := WithRID(context.Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	LogEvent(ctx, log.With("component", "service.exchange"), slog.LevelInfo, "draft.started",
		slog.String("status", "ok"),
		slog.String("state", "awaiting_address"),
	)

	tokens := strings.Split(read(), " ")
	require.GreaterOrEqual(t, len(tokens), 6)
	expected := []string{"ts=", "level=INFO", "component=service.exchange", "event=draft.started", "status=ok", "rid=rid-123"}
	for i, prefix := range expected {
		assert.True(t, strings.HasPrefix(tokens[i], prefix), "token %d = %s, want prefix %s", i, tokens[i], prefix)
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	log, read := newTestLogger(t, formatJSON)
	ctx := WithUpdateMeta(WithRID(context.Background(), "rid-json"), 11, 22, 33)

	LogEvent(ctx, log.With("component", "service.orders"), slog.LevelError, "order.create",
		slog.String("status", "fail"),
		slog.Any("err", errors.New("boom")),
		slog.Int64("order_id", 5),
	)

	line := read()
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"service.orders"`, `"event":"order.create"`, `"status":"fail"`, `"rid":"rid-json"`, `"user_id":22`, `"order_id":5`, `"err":"boom"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		require.Greater(t, idx, pos, "prefix %s out of order in %s", pref, line)
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	t.Run("kv omits rid_full", func(t *testing.T) {
		log, read := newTestLogger(t, formatKV)
		LogEvent(WithRID(context.Background(), "123:456:789"), log, slog.LevelInfo, "rid.test")
		line := read()
		assert.Contains(t, line, "rid="+CompactRID("123:456:789"))
		assert.NotContains(t, line, "rid_full=")
	})

	t.Run("json keeps rid_full", func(t *testing.T) {
		log, read := newTestLogger(t, formatJSON)
		LogEvent(WithRID(context.Background(), "12:34:56"), log, slog.LevelInfo, "rid.test")
		line := read()
		assert.Contains(t, line, `"rid":"c.y.1k"`)
		assert.Contains(t, line, `"rid_full":"12:34:56"`)
		assert.Contains(t, line, `"ts_unix_nano"`)
	})
}

func TestStructuredHandlerNormalizesValues(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	LogEvent(context.Background(), log, slog.LevelInfo, "",
		slog.Duration("duration", 1500*time.Microsecond),
		slog.String("outcome", "bogus"),
		slog.String("payload", "two words"),
		slog.String("empty", ""),
	)
	line := read()
	assert.Contains(t, line, "event=unknown")
	assert.Contains(t, line, "component=app")
	assert.Contains(t, line, "duration_ms=2")
	assert.Contains(t, line, `payload="two words"`)
	assert.NotContains(t, line, "outcome=")
	assert.NotContains(t, line, "empty=")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "PS*****23", Mask("PSC-12323", 2))
	assert.Equal(t, "***", Mask("abc", 2))
	assert.Equal(t, "", Mask("  ", 2))
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	got := []bool{s.Allow(), s.Allow(), s.Allow(), s.Allow()}
	assert.Equal(t, []bool{true, false, false, true}, got)

	s.Set(0, 0)
	assert.True(t, s.Allow())

	num, den := parseRatioSpec("2/10")
	assert.Equal(t, 2, num)
	assert.Equal(t, 10, den)
	num, den = parseRatioSpec("25")
	assert.Equal(t, 1, num)
	assert.Equal(t, 25, den)
}
