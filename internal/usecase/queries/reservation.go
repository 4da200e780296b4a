package queries

import (
	"context"
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// ListByClient pages newest first. The returned cursor is nil on the last page.
	ListByClient(ctx context.Context, clientID uuid.UUID, after *Cursor, limit int) ([]*ReservationView, *Cursor, error)
	ListActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*ReservationView, error)
	ListAll(ctx context.Context) ([]*ReservationView, error)
	Availability(ctx context.Context, vehicleID uuid.UUID, from, to string) (*AvailabilityView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByClientFirstPage(ctx context.Context, clientID uuid.UUID, limit int32) ([]*ReservationView, error)
	FindByClientKeyset(ctx context.Context, clientID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationView, error)
	FindActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*ReservationView, error)
	FindActiveInRange(ctx context.Context, vehicleID uuid.UUID, from, to time.Time) ([]*ReservationView, error)
	FindAll(ctx context.Context) ([]*ReservationView, error)
	VehicleExists(ctx context.Context, vehicleID uuid.UUID) (bool, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
	location  *time.Location
}

func NewReservationQueries(readStore ReservationReadStore, location *time.Location) ReservationQueries {
	if location == nil {
		location = time.UTC
	}
	return &reservationQueriesImpl{
		readStore: readStore,
		location:  location,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, readErr(err)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByClient(ctx context.Context, clientID uuid.UUID, after *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	limit = ValidateLimit(limit)
	// one extra row tells whether another page exists
	fetch := int32(limit + 1)

	var (
		rows []*ReservationView
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.readStore.FindByClientFirstPage(ctx, clientID, fetch)
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(after.After)
		if derr != nil {
			return nil, nil, derr
		}
		rows, err = q.readStore.FindByClientKeyset(ctx, clientID, lastCreatedAt, lastID, fetch)
	}
	if err != nil {
		return nil, nil, readErr(err)
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	last := rows[len(rows)-1]
	return rows, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}

func (q *reservationQueriesImpl) ListActiveByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*ReservationView, error) {
	rows, err := q.readStore.FindActiveByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, readErr(err)
	}
	return rows, nil
}

func (q *reservationQueriesImpl) ListAll(ctx context.Context) ([]*ReservationView, error) {
	rows, err := q.readStore.FindAll(ctx)
	if err != nil {
		return nil, readErr(err)
	}
	return rows, nil
}

// Availability is derived on every call from the vehicle's active
// reservations; nothing about it is stored.
func (q *reservationQueriesImpl) Availability(ctx context.Context, vehicleID uuid.UUID, from, to string) (*AvailabilityView, error) {
	if vehicleID == uuid.Nil {
		return nil, errs.Mark(errs.New("missing vehicle_id"), errs.ErrMissingField)
	}
	start, err := clock.ParseInstant(from, q.location)
	if err != nil {
		return nil, err
	}
	end, err := clock.ParseInstant(to, q.location)
	if err != nil {
		return nil, err
	}
	window, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return nil, err
	}

	exists, err := q.readStore.VehicleExists(ctx, vehicleID)
	if err != nil {
		return nil, readErr(err)
	}
	if !exists {
		return nil, errs.Wrapf(errs.ErrVehicleNotFound, "vehicle %s", vehicleID)
	}

	busy, err := q.readStore.FindActiveInRange(ctx, vehicleID, window.Start(), window.End())
	if err != nil {
		return nil, readErr(err)
	}

	slots := make([]reservation.TimeSlot, 0, len(busy))
	for _, b := range busy {
		slot, err := reservation.NewTimeSlot(b.StartAt, b.EndAt)
		if err != nil {
			return nil, errs.Mark(errs.Wrapf(err, "stored reservation %s", b.ID), errs.ErrStorage)
		}
		slots = append(slots, slot)
	}

	free := reservation.FreeWindows(window, slots)
	windows := make([]AvailabilityWindow, len(free))
	for i, w := range free {
		windows[i] = AvailabilityWindow{Start: w.Start(), End: w.End()}
	}

	return &AvailabilityView{
		VehicleID: vehicleID,
		From:      window.Start(),
		To:        window.End(),
		Free:      windows,
		Busy:      busy,
	}, nil
}

// readErr keeps not-found sentinels and reports everything else as storage.
func readErr(err error) error {
	if errs.IsAny(err, errs.ErrReservationNotFound, errs.ErrVehicleNotFound, errs.ErrUserNotFound) {
		return err
	}
	return errs.Mark(err, errs.ErrStorage)
}
