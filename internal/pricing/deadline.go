package pricing

import "time"

// PaymentDeadline derives the advisory "pay before" time for a booking. The
// window shrinks as departure approaches and is always capped at four hours
// before departure. Purely informational; unpaid bookings are not
// auto-cancelled on expiry.
func PaymentDeadline(departure, booked time.Time) time.Time {
	hoursToDeparture := departure.Sub(booked).Hours()

	var window time.Duration
	switch {
	case hoursToDeparture > 72:
		window = 12 * time.Hour
	case hoursToDeparture > 24:
		window = 4 * time.Hour
	default:
		window = time.Hour
	}

	ceiling := departure.Add(-4 * time.Hour)
	deadline := booked.Add(window)
	if deadline.After(ceiling) {
		deadline = ceiling
	}
	if deadline.Before(booked) {
		// Booked pathologically close to departure.
		deadline = booked.Add(30 * time.Minute)
		if deadline.After(ceiling) {
			deadline = ceiling
		}
	}
	return deadline
}
