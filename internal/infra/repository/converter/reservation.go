package converter

import (
	"rental-booking/internal/domain/reservation"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/pgconv"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	slot := res.TimeSlot()
	addrs := res.Addresses()

	return sqlc.CreateReservationParams{
		ID:                 res.ID(),
		ClientID:           res.ClientID(),
		VehicleID:          res.VehicleID(),
		StartAt:            pgconv.TimeToPgtype(slot.Start()),
		EndAt:              pgconv.TimeToPgtype(slot.End()),
		OriginAddress:      addrs.Origin(),
		DestinationAddress: addrs.Destination(),
		Status:             res.Status().String(),
		TotalPriceCents:    res.Price().Cents(),
		CreatedAt:          pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt:          pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

// ReservationFromInfra rebuilds the aggregate from a stored row. Stored rows
// are already normalized, so NewTimeSlot leaves the endpoints untouched.
func ReservationFromInfra(row sqlc.Reservations) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(row.StartAt.Time, row.EndAt.Time)
	if err != nil {
		return nil, errs.Wrapf(err, "stored reservation %s has an invalid slot", row.ID)
	}
	addrs, err := reservation.NewAddresses(row.OriginAddress, row.DestinationAddress)
	if err != nil {
		return nil, errs.Wrapf(err, "stored reservation %s has invalid addresses", row.ID)
	}
	price, err := reservation.NewMoney(row.TotalPriceCents)
	if err != nil {
		return nil, errs.Wrapf(err, "stored reservation %s has an invalid price", row.ID)
	}
	status := reservation.Status(row.Status)
	if !status.IsValid() {
		return nil, errs.Newf("stored reservation %s has unknown status %q", row.ID, row.Status)
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.VehicleID,
		row.ClientID,
		slot,
		addrs,
		status,
		price,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
