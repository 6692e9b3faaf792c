package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentDeadline_Tiers(t *testing.T) {
	booked := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		departure time.Time
		expected  time.Time
	}{
		{
			name:      "more than 72h out gives 12h window",
			departure: booked.Add(100 * time.Hour),
			expected:  booked.Add(12 * time.Hour),
		},
		{
			name:      "between 24h and 72h gives 4h window",
			departure: booked.Add(48 * time.Hour),
			expected:  booked.Add(4 * time.Hour),
		},
		{
			name:      "under 24h gives 1h window",
			departure: booked.Add(20 * time.Hour),
			expected:  booked.Add(time.Hour),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PaymentDeadline(tc.departure, booked))
		})
	}
}

func TestPaymentDeadline_CeilingWins(t *testing.T) {
	booked := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// 4.5h to departure: the 1h window would land past departure-4h, so the
	// ceiling caps the deadline at booked+30m.
	departure := booked.Add(4*time.Hour + 30*time.Minute)

	deadline := PaymentDeadline(departure, booked)
	assert.Equal(t, departure.Add(-4*time.Hour), deadline)
}

func TestPaymentDeadline_EmergencyWindow(t *testing.T) {
	booked := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// Departure under 4h away: ceiling is already in the past, so the
	// emergency 30-minute window applies, still ceiling-capped.
	departure := booked.Add(3 * time.Hour)

	deadline := PaymentDeadline(departure, booked)
	assert.Equal(t, departure.Add(-4*time.Hour), deadline)
}

func TestPaymentDeadline_Bounds(t *testing.T) {
	booked := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for _, hours := range []int{5, 12, 25, 48, 73, 100, 500} {
		departure := booked.Add(time.Duration(hours) * time.Hour)
		deadline := PaymentDeadline(departure, booked)

		assert.False(t, deadline.After(departure.Add(-4*time.Hour)),
			"deadline must not pass the 4h-before-departure ceiling (%dh out)", hours)
		assert.False(t, deadline.Before(booked),
			"deadline must not precede booking time (%dh out)", hours)
	}
}
