package repository

import (
	"context"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type VehicleQueries interface {
	GetVehicleForBooking(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetVehicleForBookingRow, error)
	LockVehicle(ctx context.Context, db sqlc.DBTX, vehicleKey string) error
}

type VehicleRepository struct {
	queries VehicleQueries
}

func NewVehicleRepository(queries VehicleQueries) *VehicleRepository {
	return &VehicleRepository{
		queries: queries,
	}
}

// Lock takes a transaction-scoped advisory lock keyed by the vehicle id.
func (r *VehicleRepository) Lock(ctx context.Context, tx sqlc.DBTX, vehicleID uuid.UUID) error {
	if err := r.queries.LockVehicle(ctx, tx, vehicleID.String()); err != nil {
		return infra.WrapRepoErr("failed to lock vehicle", err)
	}
	return nil
}

func (r *VehicleRepository) FindForBooking(ctx context.Context, tx sqlc.DBTX, vehicleID uuid.UUID) (reservation.VehicleSpec, error) {
	row, err := r.queries.GetVehicleForBooking(ctx, tx, vehicleID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return reservation.VehicleSpec{}, errs.Mark(
				infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound),
				errs.ErrVehicleNotFound,
			)
		}
		return reservation.VehicleSpec{}, infra.WrapRepoErr("failed to load vehicle", err)
	}

	return reservation.VehicleSpec{
		ID:             row.ID,
		OwnerID:        row.OwnerID,
		DailyRateCents: row.DailyRateCents,
	}, nil
}
