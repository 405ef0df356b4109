package db

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryLogger(slow time.Duration, verbose bool) (*QueryLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewQueryLogger(log, slow, verbose), &buf
}

func TestQueryLogger_AfterQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("FastQueryIsQuietByDefault", func(t *testing.T) {
		hook, buf := newTestQueryLogger(time.Second, false)
		require.NoError(t, hook.AfterQuery(ctx, &pg.QueryEvent{StartTime: time.Now(), Query: "SELECT 1"}))
		assert.Empty(t, buf.String())
	})

	t.Run("VerboseLogsEveryQueryAtDebug", func(t *testing.T) {
		hook, buf := newTestQueryLogger(time.Second, true)
		require.NoError(t, hook.AfterQuery(ctx, &pg.QueryEvent{StartTime: time.Now(), Query: "SELECT 1"}))
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), `msg="query executed"`)
	})

	t.Run("SlowQueryIsWarned", func(t *testing.T) {
		hook, buf := newTestQueryLogger(time.Second, false)
		event := &pg.QueryEvent{StartTime: time.Now().Add(-2 * time.Second), Query: "SELECT pg_sleep(2)"}
		require.NoError(t, hook.AfterQuery(ctx, event))
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), `msg="slow query"`)
		assert.Contains(t, buf.String(), "elapsed=")
	})

	t.Run("ZeroThresholdDisablesSlowReports", func(t *testing.T) {
		hook, buf := newTestQueryLogger(0, false)
		event := &pg.QueryEvent{StartTime: time.Now().Add(-time.Hour), Query: "SELECT 1"}
		require.NoError(t, hook.AfterQuery(ctx, event))
		assert.Empty(t, buf.String())
	})

	t.Run("FailedQueryIsAnError", func(t *testing.T) {
		hook, buf := newTestQueryLogger(time.Second, false)
		event := &pg.QueryEvent{StartTime: time.Now(), Query: "SELECT nope", Err: errors.New("column does not exist")}
		require.NoError(t, hook.AfterQuery(ctx, event))
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), `msg="query failed"`)
		assert.Contains(t, buf.String(), "column does not exist")
	})

	t.Run("NoRowsIsNotAFailure", func(t *testing.T) {
		hook, buf := newTestQueryLogger(time.Second, false)
		event := &pg.QueryEvent{StartTime: time.Now(), Query: "SELECT 1", Err: pg.ErrNoRows}
		require.NoError(t, hook.AfterQuery(ctx, event))
		assert.Empty(t, buf.String())
	})
}
