package repository

import (
	"context"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// default names Postgres gives the inline REFERENCES clauses
const (
	constraintReservationsClient  = "reservations_client_id_fkey"
	constraintReservationsVehicle = "reservations_vehicle_id_fkey"
)

type ReservationWriteQueries interface {
	CountActiveOverlapping(ctx context.Context, db sqlc.DBTX, arg sqlc.CountActiveOverlappingParams) (int64, error)
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (uuid.UUID, error)
	GetReservationByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	UpdateReservationStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStatusParams) error
}

type ReservationRepository struct {
	queries ReservationWriteQueries
}

func NewReservationRepository(queries ReservationWriteQueries) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
	}
}

// CountActiveOverlapping counts active reservations of the vehicle that block slot.
func (r *ReservationRepository) CountActiveOverlapping(ctx context.Context, tx sqlc.DBTX, vehicleID uuid.UUID, slot reservation.TimeSlot) (int64, error) {
	count, err := r.queries.CountActiveOverlapping(ctx, tx, sqlc.CountActiveOverlappingParams{
		VehicleID: vehicleID,
		NewStart:  pgconv.TimeToPgtype(slot.Start()),
		NewEnd:    pgconv.TimeToPgtype(slot.End()),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping reservations", err)
	}
	return count, nil
}

func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params := converter.ReservationToInfra(res)

	resultID, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		repoErr := infra.WrapRepoErr("failed to create reservation", err)
		switch {
		case infra.IsKind(repoErr, infra.KindConflict):
			return uuid.Nil, errs.Mark(repoErr, errs.ErrSlotUnavailable)
		case infra.IsKind(repoErr, infra.KindForeignKeyViolated):
			switch infra.ConstraintOf(repoErr) {
			case constraintReservationsVehicle:
				return uuid.Nil, errs.Mark(repoErr, errs.ErrVehicleNotFound)
			case constraintReservationsClient:
				return uuid.Nil, errs.Mark(repoErr, errs.ErrUserNotFound)
			}
		}
		return uuid.Nil, repoErr
	}

	return resultID, nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByIDForUpdate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(
				infra.WrapRepoErr("reservation not found", err, infra.KindNotFound),
				errs.ErrReservationNotFound,
			)
		}
		return nil, infra.WrapRepoErr("failed to load reservation", err)
	}

	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	err := r.queries.UpdateReservationStatus(ctx, tx, sqlc.UpdateReservationStatusParams{
		ID:        res.ID(),
		Status:    res.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	return nil
}
