package reservation

import (
	"fmt"
	"strings"
	"time"

	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
)

// TimeSlot is a closed interval [start, end] with both ends truncated to the hour.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if start.IsZero() || end.IsZero() {
		return TimeSlot{}, errs.Mark(errs.New("start and end are required"), errs.ErrMissingField)
	}

	start, end = clock.Normalize(start), clock.Normalize(end)
	if end.Before(start) {
		return TimeSlot{}, errs.Mark(
			errs.New(fmt.Sprintf("end %s precedes start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))),
			errs.ErrInvalidInterval,
		)
	}

	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Blocks reports whether ts, an existing active slot, prevents booking
// requested. The three clauses are kept as written; the Postgres query in
// infra/sqlc/queries/reservations.sql evaluates the same predicate.
func (ts TimeSlot) Blocks(requested TimeSlot) bool {
	return (!ts.start.After(requested.start) && !ts.end.Before(requested.start)) ||
		(!ts.start.After(requested.end) && !ts.end.Before(requested.end)) ||
		(!ts.start.Before(requested.start) && !ts.end.After(requested.end))
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s, %s]", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

type Addresses struct {
	origin      string
	destination string
}

func NewAddresses(origin, destination string) (Addresses, error) {
	origin, destination = strings.TrimSpace(origin), strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return Addresses{}, errs.Mark(errs.New("origin and destination addresses are required"), errs.ErrMissingField)
	}
	return Addresses{origin: origin, destination: destination}, nil
}

func (a Addresses) Origin() string {
	return a.origin
}

func (a Addresses) Destination() string {
	return a.destination
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.Mark(errs.New("money cannot be negative"), errs.ErrInvalidPrice)
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Amount() float64 {
	return float64(m.cents) / 100.0
}
