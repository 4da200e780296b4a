package shared

import (
	"context"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/domain/user"
	sqlc "rental-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Vehicles() VehicleRepository
	Users() UserRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

type CommandReads interface {
	UserByEmail(ctx context.Context, email string) (*user.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	DocumentExists(ctx context.Context, documentNumber string) (bool, error)
	BookingContacts(ctx context.Context, clientID, vehicleID uuid.UUID) (*BookingContacts, error)
}

// IntervalStore answers overlap questions about a vehicle's active reservations.
type IntervalStore interface {
	CountActiveOverlapping(ctx context.Context, tx sqlc.DBTX, vehicleID uuid.UUID, slot reservation.TimeSlot) (int64, error)
}

type ReservationRepository interface {
	IntervalStore
	Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	FindByIDForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
}

type VehicleRepository interface {
	// Lock serializes bookings of one vehicle until the transaction ends.
	Lock(ctx context.Context, tx sqlc.DBTX, vehicleID uuid.UUID) error
	FindForBooking(ctx context.Context, tx sqlc.DBTX, vehicleID uuid.UUID) (reservation.VehicleSpec, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, u *user.User) (uuid.UUID, error)
	UpdatePassword(ctx context.Context, tx sqlc.DBTX, email, passwordHash string) error
}
