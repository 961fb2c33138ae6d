package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T, utc string) *Clock {
	t.Helper()
	instant, err := time.Parse(time.RFC3339, utc)
	require.NoError(t, err)
	c := Default()
	c.now = func() time.Time { return instant }
	return c
}

func TestClock_Now_AppliesFixedOffset(t *testing.T) {
	// 18:50 UTC is 00:20 the next day in IST.
	c := fixedClock(t, "2025-08-13T18:50:00Z")

	now := c.Now()
	assert.Equal(t, "2025-08-14T00:20", c.Format(now, Minute))
}

func TestClock_Format(t *testing.T) {
	c := Default()
	ts := time.Date(2025, 8, 14, 9, 5, 7, 0, time.FixedZone("IST", 330*60))

	tests := []struct {
		name      string
		precision Precision
		want      string
	}{
		{name: "day", precision: Day, want: "2025-08-14"},
		{name: "minute", precision: Minute, want: "2025-08-14T09:05"},
		{name: "second", precision: Second, want: "2025-08-14T09:05:07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Format(ts, tt.precision))
		})
	}
}

func TestClock_Format_Injective(t *testing.T) {
	// Distinct wall-clock minutes never format identically.
	c := Default()
	seen := make(map[string]bool)
	start := time.Date(2025, 8, 14, 23, 0, 0, 0, time.UTC)
	for i := 0; i < 180; i++ {
		s := c.Format(start.Add(time.Duration(i)*time.Minute), Minute)
		assert.False(t, seen[s], "minute format collision: %s", s)
		seen[s] = true
	}
}

func TestClock_ToDisplay(t *testing.T) {
	c := Default()
	ist := time.FixedZone("IST", 330*60)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{
			name: "morning",
			ts:   time.Date(2025, 5, 14, 0, 43, 0, 0, ist),
			want: "14 May 2025 12:43 AM",
		},
		{
			name: "noon maps to twelve",
			ts:   time.Date(2025, 5, 14, 12, 0, 0, 0, ist),
			want: "14 May 2025 12:00 PM",
		},
		{
			name: "afternoon",
			ts:   time.Date(2025, 5, 3, 15, 9, 0, 0, ist),
			want: "3 May 2025 3:09 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ToDisplay(tt.ts))
		})
	}
}

func TestClock_ParseWire(t *testing.T) {
	c := Default()

	t.Run("second precision", func(t *testing.T) {
		ts, err := c.ParseWire("2025-08-14T10:30:45")
		require.NoError(t, err)
		assert.Equal(t, "2025-08-14T10:30:45", c.Format(ts, Second))
	})

	t.Run("minute precision completed with seconds", func(t *testing.T) {
		ts, err := c.ParseWire("2025-08-14T00:20")
		require.NoError(t, err)
		assert.Equal(t, "2025-08-14T00:20:00", c.Format(ts, Second))
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := c.ParseWire("14/08/2025")
		assert.Error(t, err)
	})
}

func TestClock_RoundTrip(t *testing.T) {
	c := fixedClock(t, "2025-08-13T18:50:12Z")

	formatted := c.Format(c.Now(), Second)
	parsed, err := c.ParseWire(formatted)
	require.NoError(t, err)

	// Parsing back lands within the same second.
	assert.Equal(t, formatted, c.Format(parsed, Second))
	assert.True(t, c.Now().Sub(parsed) < time.Second)
}

func TestBucketDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "second precision", input: "2025-08-14T10:30:45", want: "2025-08-14"},
		{name: "minute precision", input: "2025-08-14T10:30", want: "2025-08-14"},
		{name: "no time separator returns input", input: "2025-08-14", want: "2025-08-14"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketDate(tt.input))
		})
	}
}
