// Maintained by hand in the layout sqlc v1.29.0 emits for sqlc.yaml.
// `go generate ./internal/infra/sqlc` rewrites it; keep it matching queries/.
// source: notifications.sql

package sqlc

import (
	"context"
)

const createNotificationDeadLetter = `-- name: CreateNotificationDeadLetter :exec
INSERT INTO notification_dead_letters (
    kind, recipient, subject, body, last_error, attempts
) VALUES (
    $1, $2, $3, $4, $5, $6
)
`

type CreateNotificationDeadLetterParams struct {
	Kind      string `json:"kind"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	LastError string `json:"last_error"`
	Attempts  int32  `json:"attempts"`
}

func (q *Queries) CreateNotificationDeadLetter(ctx context.Context, db DBTX, arg CreateNotificationDeadLetterParams) error {
	_, err := db.Exec(ctx, createNotificationDeadLetter,
		arg.Kind,
		arg.Recipient,
		arg.Subject,
		arg.Body,
		arg.LastError,
		arg.Attempts,
	)
	return err
}

const listNotificationDeadLetters = `-- name: ListNotificationDeadLetters :many
SELECT id, kind, recipient, subject, body, last_error, attempts, created_at FROM notification_dead_letters
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) ListNotificationDeadLetters(ctx context.Context, db DBTX, limit int32) ([]NotificationDeadLetters, error) {
	rows, err := db.Query(ctx, listNotificationDeadLetters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []NotificationDeadLetters{}
	for rows.Next() {
		var i NotificationDeadLetters
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Recipient,
			&i.Subject,
			&i.Body,
			&i.LastError,
			&i.Attempts,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
