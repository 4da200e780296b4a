package response

import (
	"time"

	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
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

type ReservationListResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor *string                `json:"next_cursor,omitempty"`
}

type WindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityResponse struct {
	VehicleID uuid.UUID              `json:"vehicle_id"`
	From      time.Time              `json:"from"`
	To        time.Time              `json:"to"`
	Free      []WindowResponse       `json:"free"`
	Busy      []*ReservationResponse `json:"busy"`
}

func FromReservationView(v *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromReservationViews(views []*queries.ReservationView, next *queries.Cursor) (*ReservationListResponse, error) {
	items := make([]*ReservationResponse, 0, len(views))
	if err := copier.Copy(&items, &views); err != nil {
		return nil, err
	}
	resp := &ReservationListResponse{Items: items}
	if next != nil && next.After != "" {
		resp.NextCursor = &next.After
	}
	return resp, nil
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	resp := &AvailabilityResponse{
		VehicleID: v.VehicleID,
		From:      v.From,
		To:        v.To,
		Free:      make([]WindowResponse, 0, len(v.Free)),
		Busy:      make([]*ReservationResponse, 0, len(v.Busy)),
	}
	if err := copier.Copy(&resp.Free, &v.Free); err != nil {
		return nil, err
	}
	if err := copier.Copy(&resp.Busy, &v.Busy); err != nil {
		return nil, err
	}
	return resp, nil
}
