package helpers

import (
	"context"
	"io"
	"log/slog"

	"github.com/GregMSThompson/covid-tracker/pkg/logger"
)

// TestCtx returns a context carrying a logger that discards everything,
// debug included, so debug-only branches still run.
func TestCtx() context.Context {
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))
	return logger.ToContext(context.Background(), log)
}

// CaptureCtx returns a context whose logger writes Cloud Run JSON lines to w.
func CaptureCtx(w io.Writer) context.Context {
	log := slog.New(logger.NewCloudRunWriterHandler(w, slog.LevelDebug))
	return logger.ToContext(context.Background(), log)
}
