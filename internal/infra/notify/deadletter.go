package notify

import (
	"context"
	"log/slog"

	"rental-booking/internal/infra/repository"
)

type DeadLetterWriter interface {
	CreateDeadLetter(ctx context.Context, dl repository.DeadLetter) error
}

// DBDeadLetters persists undeliverable messages for later inspection.
type DBDeadLetters struct {
	writer DeadLetterWriter
}

func NewDBDeadLetters(writer DeadLetterWriter) *DBDeadLetters {
	return &DBDeadLetters{writer: writer}
}

func (s *DBDeadLetters) Store(ctx context.Context, msg Message, attempts int, lastErr error) error {
	dl := repository.DeadLetter{
		Kind:      string(msg.Kind),
		Recipient: msg.To,
		Subject:   msg.Subject,
		Body:      msg.Body,
		Attempts:  attempts,
	}
	if lastErr != nil {
		dl.LastError = lastErr.Error()
	}
	return s.writer.CreateDeadLetter(ctx, dl)
}

type LogDeadLetters struct{}

func NewLogDeadLetters() *LogDeadLetters {
	return &LogDeadLetters{}
}

func (LogDeadLetters) Store(ctx context.Context, msg Message, attempts int, lastErr error) error {
	slog.WarnContext(ctx, "dead letter",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"attempts", attempts,
		"error", lastErr,
	)
	return nil
}
