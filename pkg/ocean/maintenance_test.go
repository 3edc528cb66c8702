package ocean

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaintenanceWindow(t *testing.T) {
	t.Parallel()

	t.Run("utc time", func(t *testing.T) {
		t.Parallel()

		start := time.Date(2026, 1, 5, 4, 30, 0, 0, time.UTC)

		window, err := NewMaintenanceWindow("monday", start)
		require.NoError(t, err)

		assert.Equal(t, "monday", window.Day)
		assert.Equal(t, "04:30", window.Hour)
	})

	t.Run("offset time normalized to utc", func(t *testing.T) {
		t.Parallel()

		loc := time.FixedZone("UTC+2", 2*60*60)
		start := time.Date(2026, 1, 5, 1, 15, 0, 0, loc)

		window, err := NewMaintenanceWindow("Sunday", start)
		require.NoError(t, err)

		assert.Equal(t, "sunday", window.Day)
		assert.Equal(t, "23:15", window.Hour)
	})

	t.Run("any day accepted", func(t *testing.T) {
		t.Parallel()

		window, err := NewMaintenanceWindow(AnyDay, time.Date(2026, 1, 5, 2, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, AnyDay, window.Day)
	})

	t.Run("unknown day rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewMaintenanceWindow("someday", time.Date(2026, 1, 5, 2, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, ErrInvalidMaintenanceDay)
	})

	t.Run("sub-minute start rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewMaintenanceWindow("monday", time.Date(2026, 1, 5, 2, 0, 30, 0, time.UTC))
		assert.ErrorIs(t, err, ErrMaintenanceSubMinute)

		_, err = NewMaintenanceWindow("monday", time.Date(2026, 1, 5, 2, 0, 0, 500, time.UTC))
		assert.ErrorIs(t, err, ErrMaintenanceSubMinute)
	})
}

func TestMaintenanceWindow_Start(t *testing.T) {
	t.Parallel()

	window := MaintenanceWindow{Day: "monday", Hour: "23:15"}
	ref := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+2", 2*60*60)

	start, err := window.Start(ref, loc)
	require.NoError(t, err)

	assert.Equal(t, 1, start.Hour())
	assert.Equal(t, 15, start.Minute())
	assert.Equal(t, loc, start.Location())

	// Round-tripping through a constructor preserves the wall clock.
	rebuilt, err := NewMaintenanceWindow(window.Day, start)
	require.NoError(t, err)
	assert.True(t, window.Equal(rebuilt))
}

func TestMaintenanceWindow_StartMalformedHour(t *testing.T) {
	t.Parallel()

	window := MaintenanceWindow{Day: "monday", Hour: "25:99"}

	_, err := window.Start(time.Now(), time.UTC)
	assert.Error(t, err)
}

func TestMaintenanceWindow_EqualAndIsZero(t *testing.T) {
	t.Parallel()

	a := MaintenanceWindow{Day: "monday", Hour: "04:30"}
	b := MaintenanceWindow{Day: "monday", Hour: "04:30"}
	c := MaintenanceWindow{Day: "tuesday", Hour: "04:30"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	assert.True(t, MaintenanceWindow{}.IsZero())
	assert.False(t, a.IsZero())
}
