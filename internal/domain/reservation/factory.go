package reservation

import (
	"math"

	"rental-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

// VehicleSpec is the part of a vehicle listing needed to book it.
type VehicleSpec struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	DailyRateCents int64
}

type PriceCalculator interface {
	CalculatePriceCents(vehicle VehicleSpec, slot TimeSlot) int64
}

// DailyRateCalculator prorates the vehicle's daily rate by the hour.
type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (DailyRateCalculator) CalculatePriceCents(vehicle VehicleSpec, slot TimeSlot) int64 {
	hours := slot.Duration().Hours()
	return int64(math.Round(hours * float64(vehicle.DailyRateCents) / 24.0))
}

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateReservation builds an active reservation. When quotedCents is nil the
// price is derived from the vehicle's daily rate.
func (f *Factory) CreateReservation(
	vehicle VehicleSpec,
	clientID uuid.UUID,
	slot TimeSlot,
	addresses Addresses,
	quotedCents *int64,
) (*Reservation, error) {
	var cents int64
	if quotedCents != nil {
		cents = *quotedCents
	} else {
		cents = f.PriceCalculator.CalculatePriceCents(vehicle, slot)
	}

	price, err := NewMoney(cents)
	if err != nil {
		return nil, err
	}

	return NewReservation(vehicle.ID, clientID, slot, addresses, price, f.Clock.Now())
}
