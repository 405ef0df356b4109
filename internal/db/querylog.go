package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"
)

// QueryLogger is a pg.QueryHook. Failed statements are logged at error level,
// statements slower than the threshold at warn level. Anything else is logged
// at debug level only in verbose mode.
type QueryLogger struct {
	log     *slog.Logger
	slow    time.Duration
	verbose bool
}

// NewQueryLogger returns a hook that reports statements taking at least slow.
// A zero slow disables slow statement reports.
func NewQueryLogger(log *slog.Logger, slow time.Duration, verbose bool) *QueryLogger {
	return &QueryLogger{
		log:     log,
		slow:    slow,
		verbose: verbose,
	}
}

func (q *QueryLogger) BeforeQuery(ctx context.Context, _ *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

func (q *QueryLogger) AfterQuery(ctx context.Context, event *pg.QueryEvent) error {
	elapsed := time.Since(event.StartTime)

	level, msg := slog.LevelDebug, "query executed"
	switch {
	case event.Err != nil && !errors.Is(event.Err, pg.ErrNoRows):
		level, msg = slog.LevelError, "query failed"
	case q.slow > 0 && elapsed >= q.slow:
		level, msg = slog.LevelWarn, "slow query"
	case !q.verbose:
		return nil
	}

	if !q.log.Enabled(ctx, level) {
		return nil
	}

	attrs := []slog.Attr{slog.Duration("elapsed", elapsed)}
	if query, err := event.FormattedQuery(); err != nil {
		attrs = append(attrs, slog.String("formatError", err.Error()))
	} else {
		attrs = append(attrs, slog.String("query", string(query)))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
	}
	if event.Result != nil {
		attrs = append(attrs, slog.Int("rows", event.Result.RowsReturned()))
	}

	q.log.LogAttrs(ctx, level, msg, attrs...)
	return nil
}
