package reservation

import (
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type Reservation struct {
	id        uuid.UUID
	vehicleID uuid.UUID
	clientID  uuid.UUID
	timeSlot  TimeSlot
	addresses Addresses
	status    Status
	price     Money
	createdAt time.Time
	updatedAt time.Time
}

func NewReservation(
	vehicleID, clientID uuid.UUID,
	slot TimeSlot,
	addresses Addresses,
	price Money,
	now time.Time,
) (*Reservation, error) {
	if vehicleID == uuid.Nil {
		return nil, errs.Mark(errs.New("vehicle id is required"), errs.ErrMissingField)
	}
	if clientID == uuid.Nil {
		return nil, errs.Mark(errs.New("client id is required"), errs.ErrMissingField)
	}

	return &Reservation{
		id:        uuid.New(),
		vehicleID: vehicleID,
		clientID:  clientID,
		timeSlot:  slot,
		addresses: addresses,
		status:    StatusActive,
		price:     price,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id, vehicleID, clientID uuid.UUID,
	timeSlot TimeSlot,
	addresses Addresses,
	status Status,
	price Money,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		vehicleID: vehicleID,
		clientID:  clientID,
		timeSlot:  timeSlot,
		addresses: addresses,
		status:    status,
		price:     price,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Cancel moves an active reservation to cancelled. It returns false without
// error when the reservation was already cancelled.
func (r *Reservation) Cancel(now time.Time) (bool, error) {
	return r.transition(StatusCancelled, now)
}

// Finalize moves an active reservation to finalized. It returns false without
// error when the reservation was already finalized.
func (r *Reservation) Finalize(now time.Time) (bool, error) {
	return r.transition(StatusFinalized, now)
}

func (r *Reservation) transition(to Status, now time.Time) (bool, error) {
	switch r.status {
	case to:
		return false, nil
	case StatusActive:
		r.status = to
		r.updatedAt = now
		return true, nil
	default:
		return false, errs.Wrapf(errs.ErrInvalidTransition, "cannot move %s reservation to %s", r.status, to)
	}
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

// Conflicts reports whether r is active and its slot blocks requested.
func (r *Reservation) Conflicts(requested TimeSlot) bool {
	return r.IsActive() && r.timeSlot.Blocks(requested)
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) VehicleID() uuid.UUID { return r.vehicleID }
func (r *Reservation) ClientID() uuid.UUID  { return r.clientID }
func (r *Reservation) TimeSlot() TimeSlot   { return r.timeSlot }
func (r *Reservation) Addresses() Addresses { return r.addresses }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) Price() Money         { return r.price }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
