//go:build unit || e2e

package builder

import (
	"time"

	"rental-booking/internal/domain/reservation"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationBuilder struct {
	ID                 uuid.UUID
	VehicleID          uuid.UUID
	ClientID           uuid.UUID
	Start              time.Time
	End                time.Time
	OriginAddress      string
	DestinationAddress string
	Status             reservation.Status
	PriceCents         int64
	CreatedAt          time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:                 uuid.New(),
		VehicleID:          uuid.New(),
		ClientID:           uuid.New(),
		Start:              time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		End:                time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC),
		OriginAddress:      "Calle 10 # 5-20",
		DestinationAddress: "Carrera 7 # 71-21",
		Status:             reservation.StatusActive,
		PriceCents:         120000,
		CreatedAt:          time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReservationBuilder) BuildSlot() (reservation.TimeSlot, error) {
	return reservation.NewTimeSlot(r.Start, r.End)
}

func (r *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	slot, err := r.BuildSlot()
	if err != nil {
		return nil, err
	}
	addrs, err := reservation.NewAddresses(r.OriginAddress, r.DestinationAddress)
	if err != nil {
		return nil, err
	}
	price, err := reservation.NewMoney(r.PriceCents)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		r.ID, r.VehicleID, r.ClientID, slot, addrs, r.Status, price, r.CreatedAt, r.CreatedAt,
	), nil
}

func (r *ReservationBuilder) BuildInfra() sqlc.Reservations {
	return sqlc.Reservations{
		ID:                 r.ID,
		ClientID:           r.ClientID,
		VehicleID:          r.VehicleID,
		StartAt:            pgtype.Timestamptz{Time: r.Start, Valid: true},
		EndAt:              pgtype.Timestamptz{Time: r.End, Valid: true},
		OriginAddress:      r.OriginAddress,
		DestinationAddress: r.DestinationAddress,
		Status:             r.Status.String(),
		TotalPriceCents:    r.PriceCents,
		CreatedAt:          pgtype.Timestamptz{Time: r.CreatedAt, Valid: true},
		UpdatedAt:          pgtype.Timestamptz{Time: r.CreatedAt, Valid: true},
	}
}

func (r *ReservationBuilder) BuildReadModel() *queries.ReservationView {
	return &queries.ReservationView{
		ID:                 r.ID,
		VehicleID:          r.VehicleID,
		ClientID:           r.ClientID,
		StartAt:            r.Start,
		EndAt:              r.End,
		OriginAddress:      r.OriginAddress,
		DestinationAddress: r.DestinationAddress,
		Status:             r.Status.String(),
		TotalPriceCents:    r.PriceCents,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.CreatedAt,
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithWindow(start, end time.Time) *ReservationBuilder {
	r.Start = start
	r.End = end
	return r
}

func (r *ReservationBuilder) WithVehicle(id uuid.UUID) *ReservationBuilder {
	r.VehicleID = id
	return r
}

func (r *ReservationBuilder) WithClient(id uuid.UUID) *ReservationBuilder {
	r.ClientID = id
	return r
}

func (r *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	r.Status = status
	return r
}
