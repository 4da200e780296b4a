package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental-booking/internal/domain/verification"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
)

type Enqueuer interface {
	Enqueue(msg Message) error
}

// Notifier renders use-case events into messages and queues them. It never
// waits on delivery.
type Notifier struct {
	queue    Enqueuer
	location *time.Location
}

var _ commands.NotificationSender = (*Notifier)(nil)

func NewNotifier(queue Enqueuer, location *time.Location) *Notifier {
	if location == nil {
		location = time.UTC
	}
	return &Notifier{queue: queue, location: location}
}

func (n *Notifier) SendVerificationCode(_ context.Context, to string, kind verification.Kind, code string) error {
	var purpose string
	switch kind {
	case verification.KindRegister:
		purpose = "finish creating your account"
	case verification.KindLogin:
		purpose = "sign in"
	case verification.KindPasswordReset:
		purpose = "reset your password"
	default:
		purpose = "continue"
	}

	return n.queue.Enqueue(Message{
		Kind:    KindVerificationCode,
		To:      to,
		Subject: "Your verification code",
		Body: fmt.Sprintf(
			"Use this code to %s:\n\n    %s\n\nIf you did not request it, you can ignore this message.\n",
			purpose, code,
		),
	})
}

// SendReservationCreated confirms the booking to the client and tells the
// owner that the vehicle was booked.
func (n *Notifier) SendReservationCreated(_ context.Context, notice commands.ReservationNotice) error {
	if notice.ClientEmail == "" && notice.OwnerEmail == "" {
		return errs.Wrapf(ErrInvalidMessage, "kind %s has no recipients", KindReservationCreated)
	}

	details := n.details(notice)
	var first error
	if notice.ClientEmail != "" {
		first = n.queue.Enqueue(Message{
			Kind:    KindReservationCreated,
			To:      notice.ClientEmail,
			Subject: "Reservation confirmed",
			Body: fmt.Sprintf("Hello %s,\n\nYour reservation is confirmed.\n\n%s",
				greetingName(notice.ClientName), details),
		})
	}
	if notice.OwnerEmail != "" {
		err := n.queue.Enqueue(Message{
			Kind:    KindReservationCreated,
			To:      notice.OwnerEmail,
			Subject: "Your vehicle has a new reservation",
			Body: fmt.Sprintf("Hello %s,\n\n%s booked your vehicle.\n\n%s",
				greetingName(notice.OwnerName), greetingClient(notice.ClientName), details),
		})
		if first == nil {
			first = err
		}
	}
	return first
}

func (n *Notifier) SendReservationCancelled(_ context.Context, notice commands.ReservationNotice) error {
	body := fmt.Sprintf("The following reservation has been cancelled.\n\n%s", n.details(notice))
	return n.fanOut(KindReservationCancelled, recipients(notice), "Reservation cancelled", body)
}

func (n *Notifier) SendPasswordChanged(_ context.Context, to string) error {
	return n.queue.Enqueue(Message{
		Kind:    KindPasswordChanged,
		To:      to,
		Subject: "Your password was changed",
		Body:    "The password for your account was just changed. If this was not you, contact support right away.\n",
	})
}

func (n *Notifier) details(notice commands.ReservationNotice) string {
	const layout = "2006-01-02 15:04 MST"
	var b strings.Builder
	fmt.Fprintf(&b, "Reservation: %s\n", notice.ReservationID)
	if notice.VehiclePlate != "" {
		fmt.Fprintf(&b, "Vehicle:     %s %s\n", notice.VehicleModel, notice.VehiclePlate)
	}
	fmt.Fprintf(&b, "From:        %s\n", notice.StartAt.In(n.location).Format(layout))
	fmt.Fprintf(&b, "To:          %s\n", notice.EndAt.In(n.location).Format(layout))
	fmt.Fprintf(&b, "Pickup:      %s\n", notice.Origin)
	fmt.Fprintf(&b, "Drop-off:    %s\n", notice.Destination)
	fmt.Fprintf(&b, "Total:       %d.%02d\n", notice.PriceCents/100, notice.PriceCents%100)
	return b.String()
}

// fanOut queues one message per recipient and reports the first refusal.
func (n *Notifier) fanOut(kind Kind, recipients []string, subject, body string) error {
	if len(recipients) == 0 {
		return errs.Wrapf(ErrInvalidMessage, "kind %s has no recipients", kind)
	}
	var first error
	for _, to := range recipients {
		if err := n.queue.Enqueue(Message{Kind: kind, To: to, Subject: subject, Body: body}); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func recipients(notice commands.ReservationNotice) []string {
	var to []string
	for _, addr := range []string{notice.ClientEmail, notice.OwnerEmail} {
		if addr != "" {
			to = append(to, addr)
		}
	}
	return to
}

func greetingClient(name string) string {
	if strings.TrimSpace(name) == "" {
		return "A client"
	}
	return name
}

func greetingName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "there"
	}
	return name
}
