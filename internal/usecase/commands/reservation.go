package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/keylock"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// domainErrors pass through unchanged; anything else leaving a command is
// reported as ErrStorage.
var domainErrors = []error{
	errs.ErrMissingField,
	errs.ErrInvalidTimestamp,
	errs.ErrInvalidInterval,
	errs.ErrInvalidPrice,
	errs.ErrSlotUnavailable,
	errs.ErrReservationNotFound,
	errs.ErrVehicleNotFound,
	errs.ErrInvalidTransition,
	errs.ErrNoPendingFlow,
	errs.ErrCodeMismatch,
	errs.ErrDuplicateEmail,
	errs.ErrDuplicateDocument,
	errs.ErrUserNotFound,
	errs.ErrInvalidCredentials,
	user.ErrInvalidEmail,
	user.ErrInvalidRole,
}

func asStorage(err error) error {
	if err == nil || errs.IsAny(err, domainErrors...) || errs.Is(err, errs.ErrStorage) {
		return err
	}
	return errs.Mark(err, errs.ErrStorage)
}

// CreateReservationInput carries raw instants; they are parsed in the booking
// time zone when they have no offset.
type CreateReservationInput struct {
	VehicleID          uuid.UUID
	ClientID           uuid.UUID
	Start              string
	End                string
	OriginAddress      string
	DestinationAddress string
	TotalPriceCents    *int64
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
	FinalizeReservation(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationUseCaseImpl struct {
	uow      shared.UnitOfWork
	factory  *reservation.Factory
	notifier NotificationSender
	locks    *keylock.KeyedMutex[uuid.UUID]
	clock    clock.Clock
	location *time.Location
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	factory *reservation.Factory,
	notifier NotificationSender,
	clock clock.Clock,
	location *time.Location,
) ReservationCommands {
	if location == nil {
		location = time.UTC
	}
	return &reservationUseCaseImpl{
		uow:      uow,
		factory:  factory,
		notifier: notifier,
		locks:    keylock.New[uuid.UUID](),
		clock:    clock,
		location: location,
	}
}

func (r *reservationUseCaseImpl) CreateReservation(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error) {
	slot, addresses, err := r.parseInput(in)
	if err != nil {
		return nil, err
	}

	// The in-process lock orders requests from this instance; the advisory
	// lock taken inside the transaction orders them across instances.
	unlock := r.locks.Lock(in.VehicleID)
	defer unlock()

	var created *reservation.Reservation
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Vehicles().Lock(ctx, tx.DB(), in.VehicleID); err != nil {
			return err
		}

		vehicle, err := tx.Vehicles().FindForBooking(ctx, tx.DB(), in.VehicleID)
		if err != nil {
			return err
		}

		res, err := r.factory.CreateReservation(vehicle, in.ClientID, slot, addresses, in.TotalPriceCents)
		if err != nil {
			return err
		}

		blocking, err := tx.Reservations().CountActiveOverlapping(ctx, tx.DB(), vehicle.ID, slot)
		if err != nil {
			return err
		}
		if blocking > 0 {
			return errs.Wrapf(errs.ErrSlotUnavailable, "vehicle %s has %d active reservation(s) blocking %s", vehicle.ID, blocking, slot)
		}

		if _, err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, asStorage(err)
	}

	r.notify(ctx, created, r.notifier.SendReservationCreated)
	return ReservationViewFromDomain(created), nil
}

func (r *reservationUseCaseImpl) parseInput(in CreateReservationInput) (reservation.TimeSlot, reservation.Addresses, error) {
	required := []struct {
		field string
		empty bool
	}{
		{"vehicle_id", in.VehicleID == uuid.Nil},
		{"client_id", in.ClientID == uuid.Nil},
		{"start", strings.TrimSpace(in.Start) == ""},
		{"end", strings.TrimSpace(in.End) == ""},
		{"origin_address", strings.TrimSpace(in.OriginAddress) == ""},
		{"destination_address", strings.TrimSpace(in.DestinationAddress) == ""},
	}
	for _, f := range required {
		if f.empty {
			return reservation.TimeSlot{}, reservation.Addresses{}, errs.Mark(errs.Newf("missing %s", f.field), errs.ErrMissingField)
		}
	}

	start, err := clock.ParseInstant(in.Start, r.location)
	if err != nil {
		return reservation.TimeSlot{}, reservation.Addresses{}, err
	}
	end, err := clock.ParseInstant(in.End, r.location)
	if err != nil {
		return reservation.TimeSlot{}, reservation.Addresses{}, err
	}

	slot, err := reservation.NewTimeSlot(start, end)
	if err != nil {
		return reservation.TimeSlot{}, reservation.Addresses{}, err
	}

	addresses, err := reservation.NewAddresses(in.OriginAddress, in.DestinationAddress)
	if err != nil {
		return reservation.TimeSlot{}, reservation.Addresses{}, err
	}
	return slot, addresses, nil
}

func (r *reservationUseCaseImpl) CancelReservation(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	res, changed, err := r.transition(ctx, id, (*reservation.Reservation).Cancel)
	if err != nil {
		return nil, err
	}
	if changed {
		r.notify(ctx, res, r.notifier.SendReservationCancelled)
	}
	return ReservationViewFromDomain(res), nil
}

func (r *reservationUseCaseImpl) FinalizeReservation(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	res, _, err := r.transition(ctx, id, (*reservation.Reservation).Finalize)
	if err != nil {
		return nil, err
	}
	return ReservationViewFromDomain(res), nil
}

// transition applies apply under a row lock. Repeating the transition that
// already happened is a no-op reported with changed=false.
func (r *reservationUseCaseImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	apply func(*reservation.Reservation, time.Time) (bool, error),
) (*reservation.Reservation, bool, error) {
	var (
		res     *reservation.Reservation
		changed bool
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Reservations().FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			return err
		}

		changed, err = apply(found, r.clock.Now())
		if err != nil {
			return err
		}
		res = found
		if !changed {
			return nil
		}
		return tx.Reservations().UpdateStatus(ctx, tx.DB(), found)
	})
	if err != nil {
		return nil, false, asStorage(err)
	}
	return res, changed, nil
}

// notify runs after commit and addresses both the client and the vehicle
// owner. Failures are logged and never reach the caller.
func (r *reservationUseCaseImpl) notify(
	ctx context.Context,
	res *reservation.Reservation,
	send func(context.Context, ReservationNotice) error,
) {
	contacts, err := r.uow.CommandReads().BookingContacts(ctx, res.ClientID(), res.VehicleID())
	if err != nil {
		slog.WarnContext(ctx, "skipping reservation notification",
			"reservation_id", res.ID(),
			"error", err,
		)
		return
	}

	notice := ReservationNotice{
		ReservationID: res.ID(),
		ClientEmail:   contacts.ClientEmail,
		ClientName:    contacts.ClientName,
		OwnerEmail:    contacts.OwnerEmail,
		OwnerName:     contacts.OwnerName,
		VehiclePlate:  contacts.VehiclePlate,
		VehicleModel:  contacts.VehicleModel,
		Origin:        res.Addresses().Origin(),
		Destination:   res.Addresses().Destination(),
		StartAt:       res.TimeSlot().Start(),
		EndAt:         res.TimeSlot().End(),
		PriceCents:    res.Price().Cents(),
	}
	if err := send(ctx, notice); err != nil {
		slog.WarnContext(ctx, "reservation notification not accepted",
			"reservation_id", res.ID(),
			"error", err,
		)
	}
}

func ReservationViewFromDomain(res *reservation.Reservation) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                 res.ID(),
		VehicleID:          res.VehicleID(),
		ClientID:           res.ClientID(),
		StartAt:            res.TimeSlot().Start(),
		EndAt:              res.TimeSlot().End(),
		OriginAddress:      res.Addresses().Origin(),
		DestinationAddress: res.Addresses().Destination(),
		Status:             res.Status().String(),
		TotalPriceCents:    res.Price().Cents(),
		CreatedAt:          res.CreatedAt(),
		UpdatedAt:          res.UpdatedAt(),
	}
}
