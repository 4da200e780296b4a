package shared

// BookingContacts addresses the two parties notified about a booking.
type BookingContacts struct {
	ClientEmail  string
	ClientName   string
	OwnerEmail   string
	OwnerName    string
	VehiclePlate string
	VehicleModel string
}
