// Maintained by hand in the layout sqlc v1.29.0 emits for sqlc.yaml.
// `go generate ./internal/infra/sqlc` rewrites it; keep it matching queries/.
// source: vehicles.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
)

const createVehicle = `-- name: CreateVehicle :one
INSERT INTO vehicles (
    owner_id, vehicle_type, plate, model, model_year, daily_rate_cents, approval_status
) VALUES (
    $1, $2, $3, $4, $5, $6, $7
)
RETURNING id
`

type CreateVehicleParams struct {
	OwnerID        uuid.UUID `json:"owner_id"`
	VehicleType    string    `json:"vehicle_type"`
	Plate          string    `json:"plate"`
	Model          string    `json:"model"`
	ModelYear      int32     `json:"model_year"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	ApprovalStatus string    `json:"approval_status"`
}

func (q *Queries) CreateVehicle(ctx context.Context, db DBTX, arg CreateVehicleParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createVehicle,
		arg.OwnerID,
		arg.VehicleType,
		arg.Plate,
		arg.Model,
		arg.ModelYear,
		arg.DailyRateCents,
		arg.ApprovalStatus,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const getVehicleForBooking = `-- name: GetVehicleForBooking :one
SELECT id, owner_id, daily_rate_cents
FROM vehicles
WHERE id = $1
`

type GetVehicleForBookingRow struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	DailyRateCents int64     `json:"daily_rate_cents"`
}

func (q *Queries) GetVehicleForBooking(ctx context.Context, db DBTX, id uuid.UUID) (GetVehicleForBookingRow, error) {
	row := db.QueryRow(ctx, getVehicleForBooking, id)
	var i GetVehicleForBookingRow
	err := row.Scan(&i.ID, &i.OwnerID, &i.DailyRateCents)
	return i, err
}

const lockVehicle = `-- name: LockVehicle :exec
SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))
`

func (q *Queries) LockVehicle(ctx context.Context, db DBTX, vehicleKey string) error {
	_, err := db.Exec(ctx, lockVehicle, vehicleKey)
	return err
}
