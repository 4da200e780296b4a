package commands

import (
	"context"
	"encoding/json"
	"time"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/domain/verification"

	"github.com/google/uuid"
)

// CodeStore keeps at most one pending verification per key. Issuing over an
// existing entry replaces it.
type CodeStore interface {
	Issue(ctx context.Context, key verification.Key, payload json.RawMessage) (string, error)
	// Reissue replaces the code of an existing entry and keeps its payload.
	Reissue(ctx context.Context, key verification.Key) (string, error)
	Peek(ctx context.Context, key verification.Key) (*verification.Pending, error)
	// Check returns the payload when code matches without removing the entry.
	Check(ctx context.Context, key verification.Key, code string) (json.RawMessage, error)
	// Consume removes the entry when code matches and returns it. Of several
	// callers holding the same code, exactly one succeeds.
	Consume(ctx context.Context, key verification.Key, code string) (*verification.Pending, error)
	// Restore puts back an entry taken by Consume whose flow could not be
	// finalized. An entry issued for the key in the meantime is kept instead.
	Restore(ctx context.Context, p verification.Pending) error
	Discard(ctx context.Context, key verification.Key) error
}

// ReservationNotice carries what a booking e-mail needs.
type ReservationNotice struct {
	ReservationID uuid.UUID
	ClientEmail   string
	ClientName    string
	OwnerEmail    string
	OwnerName     string
	VehiclePlate  string
	VehicleModel  string
	Origin        string
	Destination   string
	StartAt       time.Time
	EndAt         time.Time
	PriceCents    int64
}

// NotificationSender hands messages to delivery. Implementations must not
// block on the transport; an error means the message was not accepted.
type NotificationSender interface {
	SendVerificationCode(ctx context.Context, to string, kind verification.Kind, code string) error
	SendReservationCreated(ctx context.Context, notice ReservationNotice) error
	SendReservationCancelled(ctx context.Context, notice ReservationNotice) error
	SendPasswordChanged(ctx context.Context, to string) error
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string, role user.Role) (string, error)
	TokenDuration() time.Duration
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}
