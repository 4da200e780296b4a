// Maintained by hand in the layout sqlc v1.29.0 emits for sqlc.yaml.
// `go generate ./internal/infra/sqlc` rewrites it; keep it matching queries/.
// source: reservations.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const countActiveOverlapping = `-- name: CountActiveOverlapping :one
SELECT COUNT(*) FROM reservations
WHERE vehicle_id = $1
  AND status = 'active'
  AND (
       (start_at <= $2 AND end_at >= $2)
    OR (start_at <= $3 AND end_at >= $3)
    OR (start_at >= $2 AND end_at <= $3)
  )
`

type CountActiveOverlappingParams struct {
	VehicleID uuid.UUID          `json:"vehicle_id"`
	NewStart  pgtype.Timestamptz `json:"new_start"`
	NewEnd    pgtype.Timestamptz `json:"new_end"`
}

func (q *Queries) CountActiveOverlapping(ctx context.Context, db DBTX, arg CountActiveOverlappingParams) (int64, error) {
	row := db.QueryRow(ctx, countActiveOverlapping, arg.VehicleID, arg.NewStart, arg.NewEnd)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createReservation = `-- name: CreateReservation :one
INSERT INTO reservations (
    id, client_id, vehicle_id, start_at, end_at,
    origin_address, destination_address, status, total_price_cents, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
)
RETURNING id
`

type CreateReservationParams struct {
	ID                 uuid.UUID          `json:"id"`
	ClientID           uuid.UUID          `json:"client_id"`
	VehicleID          uuid.UUID          `json:"vehicle_id"`
	StartAt            pgtype.Timestamptz `json:"start_at"`
	EndAt              pgtype.Timestamptz `json:"end_at"`
	OriginAddress      string             `json:"origin_address"`
	DestinationAddress string             `json:"destination_address"`
	Status             string             `json:"status"`
	TotalPriceCents    int64              `json:"total_price_cents"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
	UpdatedAt          pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createReservation,
		arg.ID,
		arg.ClientID,
		arg.VehicleID,
		arg.StartAt,
		arg.EndAt,
		arg.OriginAddress,
		arg.DestinationAddress,
		arg.Status,
		arg.TotalPriceCents,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const getBookingContacts = `-- name: GetBookingContacts :one
SELECT
    c.email AS client_email,
    c.first_name AS client_first_name,
    o.email AS owner_email,
    o.first_name AS owner_first_name,
    v.plate AS vehicle_plate,
    v.model AS vehicle_model
FROM vehicles v
JOIN users o ON o.id = v.owner_id
JOIN users c ON c.id = $1
WHERE v.id = $2
`

type GetBookingContactsParams struct {
	ClientID  uuid.UUID `json:"client_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
}

type GetBookingContactsRow struct {
	ClientEmail     string `json:"client_email"`
	ClientFirstName string `json:"client_first_name"`
	OwnerEmail      string `json:"owner_email"`
	OwnerFirstName  string `json:"owner_first_name"`
	VehiclePlate    string `json:"vehicle_plate"`
	VehicleModel    string `json:"vehicle_model"`
}

func (q *Queries) GetBookingContacts(ctx context.Context, db DBTX, arg GetBookingContactsParams) (GetBookingContactsRow, error) {
	row := db.QueryRow(ctx, getBookingContacts, arg.ClientID, arg.VehicleID)
	var i GetBookingContactsRow
	err := row.Scan(
		&i.ClientEmail,
		&i.ClientFirstName,
		&i.OwnerEmail,
		&i.OwnerFirstName,
		&i.VehiclePlate,
		&i.VehicleModel,
	)
	return i, err
}

const getReservationByID = `-- name: GetReservationByID :one
SELECT id, client_id, vehicle_id, start_at, end_at, origin_address, destination_address, status, total_price_cents, created_at, updated_at FROM reservations
WHERE id = $1
`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	row := db.QueryRow(ctx, getReservationByID, id)
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.ClientID,
		&i.VehicleID,
		&i.StartAt,
		&i.EndAt,
		&i.OriginAddress,
		&i.DestinationAddress,
		&i.Status,
		&i.TotalPriceCents,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getReservationByIDForUpdate = `-- name: GetReservationByIDForUpdate :one
SELECT id, client_id, vehicle_id, start_at, end_at, origin_address, destination_address, status, total_price_cents, created_at, updated_at FROM reservations
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetReservationByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	row := db.QueryRow(ctx, getReservationByIDForUpdate, id)
	var i Reservations
	err := row.Scan(
		&i.ID,
		&i.ClientID,
		&i.VehicleID,
		&i.StartAt,
		&i.EndAt,
		&i.OriginAddress,
		&i.DestinationAddress,
		&i.Status,
		&i.TotalPriceCents,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listActiveReservationsByVehicle = `-- name: ListActiveReservationsByVehicle :many
SELECT id, client_id, vehicle_id, start_at, end_at, origin_address, destination_address, status, total_price_cents, created_at, updated_at FROM reservations
WHERE vehicle_id = $1 AND status = 'active'
ORDER BY start_at
`

func (q *Queries) ListActiveReservationsByVehicle(ctx context.Context, db DBTX, vehicleID uuid.UUID) ([]Reservations, error) {
	rows, err := db.Query(ctx, listActiveReservationsByVehicle, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Reservations{}
	for rows.Next() {
		var i Reservations
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.VehicleID,
			&i.StartAt,
			&i.EndAt,
			&i.OriginAddress,
			&i.DestinationAddress,
			&i.Status,
			&i.TotalPriceCents,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listActiveReservationsInRange = `-- name: ListActiveReservationsInRange :many
SELECT id, client_id, vehicle_id, start_at, end_at, origin_address, destination_address, status, total_price_cents, created_at, updated_at FROM reservations
WHERE vehicle_id = $1
  AND status = 'active'
  AND end_at >= $2
  AND start_at <= $3
ORDER BY start_at
`

type ListActiveReservationsInRangeParams struct {
	VehicleID  uuid.UUID          `json:"vehicle_id"`
	RangeStart pgtype.Timestamptz `json:"range_start"`
	RangeEnd   pgtype.Timestamptz `json:"range_end"`
}

func (q *Queries) ListActiveReservationsInRange(ctx context.Context, db DBTX, arg ListActiveReservationsInRangeParams) ([]Reservations, error) {
	rows, err := db.Query(ctx, listActiveReservationsInRange, arg.VehicleID, arg.RangeStart, arg.RangeEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Reservations{}
	for rows.Next() {
		var i Reservations
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.VehicleID,
			&i.StartAt,
			&i.EndAt,
			&i.OriginAddress,
			&i.DestinationAddress,
			&i.Status,
			&i.TotalPriceCents,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listReservations = `-- name: ListReservations :many
SELECT id, client_id, vehicle_id, start_at, end_at, origin_address, destination_address, status, total_price_cents, created_at, updated_at FROM reservations
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListReservations(ctx context.Context, db DBTX) ([]Reservations, error) {
	rows, err := db.Query(ctx, listReservations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Reservations{}
	for rows.Next() {
		var i Reservations
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.VehicleID,
			&i.StartAt,
			&i.EndAt,
			&i.OriginAddress,
			&i.DestinationAddress,
			&i.Status,
			&i.TotalPriceCents,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listReservationsByClientFirstPage = `-- name: ListReservationsByClientFirstPage :many
SELECT id, client_id, vehicle_id, start_at, end_at, origin_address, destination_address, status, total_price_cents, created_at, updated_at FROM reservations
WHERE client_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListReservationsByClientFirstPageParams struct {
	ClientID uuid.UUID `json:"client_id"`
	Limit    int32     `json:"limit"`
}

func (q *Queries) ListReservationsByClientFirstPage(ctx context.Context, db DBTX, arg ListReservationsByClientFirstPageParams) ([]Reservations, error) {
	rows, err := db.Query(ctx, listReservationsByClientFirstPage, arg.ClientID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Reservations{}
	for rows.Next() {
		var i Reservations
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.VehicleID,
			&i.StartAt,
			&i.EndAt,
			&i.OriginAddress,
			&i.DestinationAddress,
			&i.Status,
			&i.TotalPriceCents,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listReservationsByClientKeyset = `-- name: ListReservationsByClientKeyset :many
SELECT id, client_id, vehicle_id, start_at, end_at, origin_address, destination_address, status, total_price_cents, created_at, updated_at FROM reservations
WHERE client_id = $1
  AND (created_at, id) < ($2::timestamptz, $3::uuid)
ORDER BY created_at DESC, id DESC
LIMIT $4
`

type ListReservationsByClientKeysetParams struct {
	ClientID  uuid.UUID          `json:"client_id"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	ID        uuid.UUID          `json:"id"`
	RowLimit  int32              `json:"row_limit"`
}

func (q *Queries) ListReservationsByClientKeyset(ctx context.Context, db DBTX, arg ListReservationsByClientKeysetParams) ([]Reservations, error) {
	rows, err := db.Query(ctx, listReservationsByClientKeyset,
		arg.ClientID,
		arg.CreatedAt,
		arg.ID,
		arg.RowLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Reservations{}
	for rows.Next() {
		var i Reservations
		if err := rows.Scan(
			&i.ID,
			&i.ClientID,
			&i.VehicleID,
			&i.StartAt,
			&i.EndAt,
			&i.OriginAddress,
			&i.DestinationAddress,
			&i.Status,
			&i.TotalPriceCents,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const updateReservationStatus = `-- name: UpdateReservationStatus :exec
UPDATE reservations
SET status = $2, updated_at = $3
WHERE id = $1
`

type UpdateReservationStatusParams struct {
	ID        uuid.UUID          `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) error {
	_, err := db.Exec(ctx, updateReservationStatus, arg.ID, arg.Status, arg.UpdatedAt)
	return err
}
