package inbox

import (
	"context"
	"log/slog"
)

// LogSink writes inquiries to a structured logger and stores nothing.
// It is the default sink when no backing store is configured.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger uses slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Deliver implements Sink.
func (s *LogSink) Deliver(ctx context.Context, inq *Inquiry) error {
	if err := validate(inq); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "contact inquiry received",
		slog.String("id", inq.ID),
		slog.String("name", inq.Name),
		slog.String("email", inq.Email),
		slog.String("phone", inq.Phone),
		slog.String("company", inq.Company),
		slog.String("subject", inq.Subject),
		slog.Int("message_len", len([]rune(inq.Message))),
		slog.Time("submitted_at", inq.SubmittedAt),
	)
	return nil
}
