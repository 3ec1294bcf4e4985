package report

import (
	"context"
	"log/slog"
)

// Logger writes findings to structured logs, one line per finding.
type Logger struct {
	log *slog.Logger
}

// NewLogger constructs a slog-backed sink. A nil logger falls back to
// slog.Default.
func NewLogger(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log}
}

func (l *Logger) Problem(ctx context.Context, subject, message string) {
	l.log.WarnContext(ctx, "finding",
		slog.String("severity", string(SeverityProblem)),
		slog.String("subject", subject),
		slog.String("message", message),
	)
}

func (l *Logger) OK(ctx context.Context, subject, message string) {
	l.log.InfoContext(ctx, "finding",
		slog.String("severity", string(SeverityOK)),
		slog.String("subject", subject),
		slog.String("message", message),
	)
}
