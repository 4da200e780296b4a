//go:build unit

package clock_test

import (
	"testing"
	"time"

	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	kolkata := time.FixedZone("IST", 5*60*60+30*60)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "minutes and seconds are dropped",
			in:   time.Date(2024, 6, 1, 12, 30, 45, 999, time.UTC),
			want: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "already aligned instant is unchanged",
			in:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "offset is preserved",
			in:   time.Date(2024, 6, 1, 23, 59, 59, 0, bogota),
			want: time.Date(2024, 6, 1, 23, 0, 0, 0, bogota),
		},
		{
			name: "half hour offset truncates on local wall clock",
			in:   time.Date(2024, 6, 1, 9, 45, 0, 0, kolkata),
			want: time.Date(2024, 6, 1, 9, 0, 0, 0, kolkata),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clock.Normalize(tt.in)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, tt.in.Location(), got.Location())
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		x := base.Add(time.Duration(i) * 7919 * time.Second).Add(time.Duration(i) * time.Millisecond)
		once := clock.Normalize(x)
		twice := clock.Normalize(once)
		require.True(t, once.Equal(twice), "normalize(normalize(%s)) = %s, want %s", x, twice, once)
		require.Zero(t, once.Minute())
		require.Zero(t, once.Second())
		require.Zero(t, once.Nanosecond())
	}
}

func TestParseInstant(t *testing.T) {
	loc := time.FixedZone("COT", -5*60*60)

	t.Run("RFC3339 keeps its own offset", func(t *testing.T) {
		got, err := clock.ParseInstant("2024-06-01T12:30:00+02:00", loc)
		require.NoError(t, err)
		_, offset := got.Zone()
		assert.Equal(t, 2*60*60, offset)
	})

	t.Run("naive timestamps use the given location", func(t *testing.T) {
		for _, in := range []string{"2024-06-01T12:30:00", "2024-06-01 12:30:00", "2024-06-01T12:30"} {
			got, err := clock.ParseInstant(in, loc)
			require.NoError(t, err, in)
			assert.True(t, time.Date(2024, 6, 1, 12, 30, 0, 0, loc).Equal(got), in)
		}
	})

	t.Run("malformed input is InvalidTimestamp", func(t *testing.T) {
		for _, in := range []string{"", "tomorrow", "2024-13-01T10:00:00", "01/06/2024 10:00"} {
			_, err := clock.ParseInstant(in, loc)
			require.Error(t, err, in)
			assert.True(t, errs.Is(err, errs.ErrInvalidTimestamp), in)
		}
	})
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)
	assert.Equal(t, start, c.Now())

	c.Add(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
