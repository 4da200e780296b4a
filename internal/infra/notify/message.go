// Package notify delivers e-mail notifications off the request path.
package notify

import "strings"

type Kind string

const (
	KindVerificationCode     Kind = "verification_code"
	KindReservationCreated   Kind = "reservation_created"
	KindReservationCancelled Kind = "reservation_cancelled"
	KindPasswordChanged      Kind = "password_changed"
)

// Message is one e-mail addressed to a single recipient.
type Message struct {
	Kind    Kind   `json:"kind"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (m Message) valid() bool {
	return strings.TrimSpace(m.To) != "" && m.Subject != ""
}
