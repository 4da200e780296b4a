package verification

import (
	"encoding/json"
	"time"

	"rental-booking/internal/pkg/errs"
)

var (
	ErrPendingNotFound = errs.New("pending verification not found")
	ErrCodeMismatch    = errs.New("code does not match")
)

// Pending is the state held for one (identity, kind) while a flow awaits its
// code. Payload is the JSON encoding of the flow's payload type.
type Pending struct {
	Key      Key
	Code     string
	Payload  json.RawMessage
	IssuedAt time.Time
}

// Expired reports whether p is older than ttl. A non-positive ttl never expires.
func (p Pending) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(p.IssuedAt) >= ttl
}

// Matches compares codes by plain string equality.
func (p Pending) Matches(code string) bool {
	return p.Code == code
}
