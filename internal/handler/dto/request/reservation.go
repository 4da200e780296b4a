package request

import (
	"rental-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateReservationRequest takes instants as strings: RFC 3339, or a local
// "2006-01-02T15:04:05" read in the booking time zone. Missing fields are
// reported by the use case so clients see a single error taxonomy.
type CreateReservationRequest struct {
	VehicleID          uuid.UUID `json:"vehicle_id"`
	StartAt            string    `json:"start_at"`
	EndAt              string    `json:"end_at"`
	OriginAddress      string    `json:"origin_address"`
	DestinationAddress string    `json:"destination_address"`
	TotalPriceCents    *int64    `json:"total_price_cents,omitempty"`
}

func (r *CreateReservationRequest) ToInput(clientID uuid.UUID) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		VehicleID:          r.VehicleID,
		ClientID:           clientID,
		Start:              r.StartAt,
		End:                r.EndAt,
		OriginAddress:      r.OriginAddress,
		DestinationAddress: r.DestinationAddress,
		TotalPriceCents:    r.TotalPriceCents,
	}
}

type ListReservationsQuery struct {
	Cursor    string `form:"cursor"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	VehicleID string `form:"vehicle_id" binding:"omitempty,uuid"`
}

type AvailabilityQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}
