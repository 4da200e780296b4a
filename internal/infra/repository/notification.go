package repository

import (
	"context"

	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
)

type NotificationWriteQueries interface {
	CreateNotificationDeadLetter(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationDeadLetterParams) error
}

// DeadLetter is a notification that exhausted its delivery attempts.
type DeadLetter struct {
	Kind      string
	Recipient string
	Subject   string
	Body      string
	LastError string
	Attempts  int
}

type NotificationRepository struct {
	queries NotificationWriteQueries
	db      sqlc.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db sqlc.DBTX) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *NotificationRepository) CreateDeadLetter(ctx context.Context, dl DeadLetter) error {
	params := sqlc.CreateNotificationDeadLetterParams{
		Kind:      dl.Kind,
		Recipient: dl.Recipient,
		Subject:   dl.Subject,
		Body:      dl.Body,
		LastError: dl.LastError,
		Attempts:  int32(dl.Attempts), // #nosec G115 -- bounded by NOTIFY_MAX_ATTEMPTS
	}

	if err := r.queries.CreateNotificationDeadLetter(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to record notification dead letter", err)
	}
	return nil
}
