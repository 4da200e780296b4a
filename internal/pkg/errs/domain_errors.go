package errs

import "errors"

// Sentinels shared by the booking and verification use cases.
var (
	// Input errors
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidInterval  = errors.New("reservation end precedes start")
	ErrInvalidPrice     = errors.New("price cannot be negative")

	// Reservation errors
	ErrSlotUnavailable     = errors.New("slot unavailable")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrInvalidTransition   = errors.New("invalid reservation status transition")

	// Verification errors
	ErrNoPendingFlow      = errors.New("no pending verification")
	ErrCodeMismatch       = errors.New("verification code mismatch")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateDocument  = errors.New("document already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Persistence failures surface as this opaque error; the enclosing
	// transaction is rolled back before it reaches the caller.
	ErrStorage = errors.New("storage error")
)
