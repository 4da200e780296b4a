package readstore

import (
	"context"
	"time"

	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	ListReservationsByClientFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByClientFirstPageParams) ([]sqlc.Reservations, error)
	ListReservationsByClientKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByClientKeysetParams) ([]sqlc.Reservations, error)
	ListActiveReservationsByVehicle(ctx context.Context, db sqlc.DBTX, vehicleID uuid.UUID) ([]sqlc.Reservations, error)
	ListActiveReservationsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsInRangeParams) ([]sqlc.Reservations, error)
	ListReservations(ctx context.Context, db sqlc.DBTX) ([]sqlc.Reservations, error)
	GetBookingContacts(ctx context.Context, db sqlc.DBTX, arg sqlc.GetBookingContactsParams) (sqlc.GetBookingContactsRow, error)
	GetVehicleForBooking(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetVehicleForBookingRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(
				infra.WrapRepoErr("reservation not found", err, infra.KindNotFound),
				errs.ErrReservationNotFound,
			)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return toReservationView(row), nil
}

func (r *ReservationReadStore) FindByClientFirstPage(ctx context.Context, clientID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsByClientFirstPage(ctx, r.db, sqlc.ListReservationsByClientFirstPageParams{
		ClientID: clientID,
		Limit:    limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations first page", err)
	}
	return toReservationViews(rows), nil
}

func (r *ReservationReadStore) FindByClientKeyset(ctx context.Context, clientID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservationsByClientKeyset(ctx, r.db, sqlc.ListReservationsByClientKeysetParams{
		ClientID:  clientID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		RowLimit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations keyset", err)
	}
	return toReservationViews(rows), nil
}

func (r *ReservationReadStore) FindActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListActiveReservationsByVehicle(ctx, r.db, vehicleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	return toReservationViews(rows), nil
}

// FindActiveInRange returns active reservations touching [from, to].
func (r *ReservationReadStore) FindActiveInRange(ctx context.Context, vehicleID uuid.UUID, from, to time.Time) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListActiveReservationsInRange(ctx, r.db, sqlc.ListActiveReservationsInRangeParams{
		VehicleID:  vehicleID,
		RangeStart: pgconv.TimeToPgtype(from),
		RangeEnd:   pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations in range", err)
	}
	return toReservationViews(rows), nil
}

func (r *ReservationReadStore) FindAll(ctx context.Context) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListReservations(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return toReservationViews(rows), nil
}

func (r *ReservationReadStore) VehicleExists(ctx context.Context, vehicleID uuid.UUID) (bool, error) {
	if _, err := r.queries.GetVehicleForBooking(ctx, r.db, vehicleID); err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to find vehicle", err)
	}
	return true, nil
}

func (r *ReservationReadStore) BookingContacts(ctx context.Context, clientID, vehicleID uuid.UUID) (*shared.BookingContacts, error) {
	row, err := r.queries.GetBookingContacts(ctx, r.db, sqlc.GetBookingContactsParams{
		ClientID:  clientID,
		VehicleID: vehicleID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking contacts not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking contacts", err)
	}

	return &shared.BookingContacts{
		ClientEmail:  row.ClientEmail,
		ClientName:   row.ClientFirstName,
		OwnerEmail:   row.OwnerEmail,
		OwnerName:    row.OwnerFirstName,
		VehiclePlate: row.VehiclePlate,
		VehicleModel: row.VehicleModel,
	}, nil
}

func toReservationViews(rows []sqlc.Reservations) []*queries.ReservationView {
	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = toReservationView(row)
	}
	return result
}

func toReservationView(row sqlc.Reservations) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                 row.ID,
		VehicleID:          row.VehicleID,
		ClientID:           row.ClientID,
		StartAt:            pgconv.TimeFromPgtype(row.StartAt),
		EndAt:              pgconv.TimeFromPgtype(row.EndAt),
		OriginAddress:      row.OriginAddress,
		DestinationAddress: row.DestinationAddress,
		Status:             row.Status,
		TotalPriceCents:    row.TotalPriceCents,
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
