//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 6, 1, hour, min, 0, 0, time.UTC)
}

func mustSlot(t *testing.T, start, end time.Time) reservation.TimeSlot {
	t.Helper()
	slot, err := reservation.NewTimeSlot(start, end)
	require.NoError(t, err)
	return slot
}

func TestNewTimeSlot(t *testing.T) {
	t.Run("endpoints are truncated to the hour", func(t *testing.T) {
		slot := mustSlot(t, at(12, 30), time.Date(2024, 6, 1, 16, 59, 59, 999, time.UTC))

		assert.Equal(t, at(12, 0), slot.Start())
		assert.Equal(t, at(16, 0), slot.End())
		assert.Equal(t, 4*time.Hour, slot.Duration())
	})

	t.Run("zero length slot is accepted", func(t *testing.T) {
		slot := mustSlot(t, at(10, 15), at(10, 45))
		assert.Equal(t, time.Duration(0), slot.Duration())
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := reservation.NewTimeSlot(at(14, 0), at(10, 0))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidInterval))
	})

	t.Run("zero instant is a missing field", func(t *testing.T) {
		_, err := reservation.NewTimeSlot(time.Time{}, at(10, 0))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrMissingField))
	})
}

func TestTimeSlot_Blocks(t *testing.T) {
	existing := mustSlot(t, at(10, 0), at(14, 0))

	cases := []struct {
		name       string
		start, end time.Time
		blocked    bool
	}{
		{name: "starts inside existing", start: at(12, 30), end: at(16, 0), blocked: true},
		{name: "ends inside existing", start: at(8, 0), end: at(11, 0), blocked: true},
		{name: "contains existing", start: at(9, 0), end: at(15, 0), blocked: true},
		{name: "inside existing", start: at(11, 0), end: at(12, 0), blocked: true},
		{name: "identical", start: at(10, 0), end: at(14, 0), blocked: true},
		// strict half-open overlap would accept these two
		{name: "starts at existing end", start: at(14, 0), end: at(18, 0), blocked: true},
		{name: "ends at existing start", start: at(6, 0), end: at(10, 0), blocked: true},
		{name: "after existing", start: at(15, 0), end: at(18, 0), blocked: false},
		{name: "before existing", start: at(6, 0), end: at(9, 0), blocked: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			requested := mustSlot(t, c.start, c.end)
			assert.Equal(t, c.blocked, existing.Blocks(requested))
		})
	}
}

func TestNewAddresses(t *testing.T) {
	addrs, err := reservation.NewAddresses(" Calle 1 ", "Calle 2")
	require.NoError(t, err)
	assert.Equal(t, "Calle 1", addrs.Origin())
	assert.Equal(t, "Calle 2", addrs.Destination())

	_, err = reservation.NewAddresses("Calle 1", "   ")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrMissingField))
}

func TestNewMoney(t *testing.T) {
	m, err := reservation.NewMoney(12345)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), m.Cents())
	assert.InDelta(t, 123.45, m.Amount(), 0.0001)

	_, err = reservation.NewMoney(-1)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrInvalidPrice))
}
