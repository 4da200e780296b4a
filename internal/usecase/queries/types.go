package queries

import (
	"time"

	"github.com/google/uuid"
)

// UserView is the public profile of an account; it never carries the password hash.
type UserView struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	SecondName     string    `json:"second_name,omitempty"`
	FirstSurname   string    `json:"first_surname"`
	SecondSurname  string    `json:"second_surname,omitempty"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

type ReservationView struct {
	ID                 uuid.UUID `json:"id"`
	VehicleID          uuid.UUID `json:"vehicle_id"`
	ClientID           uuid.UUID `json:"client_id"`
	StartAt            time.Time `json:"start_at"`
	EndAt              time.Time `json:"end_at"`
	OriginAddress      string    `json:"origin_address"`
	DestinationAddress string    `json:"destination_address"`
	Status             string    `json:"status"`
	TotalPriceCents    int64     `json:"total_price_cents"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type AvailabilityWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityView lists the free windows of a vehicle inside [From, To]
// together with the active reservations that shape them.
type AvailabilityView struct {
	VehicleID uuid.UUID            `json:"vehicle_id"`
	From      time.Time            `json:"from"`
	To        time.Time            `json:"to"`
	Free      []AvailabilityWindow `json:"free"`
	Busy      []*ReservationView   `json:"busy"`
}
