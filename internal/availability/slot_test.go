package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("full day tiles without gaps", func(t *testing.T) {
		slots, err := GenerateSlots(date, "06:00", "22:00", time.Hour)
		require.NoError(t, err)
		require.Len(t, slots, 16)

		assert.Equal(t, time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC), slots[0].Start)
		for i, s := range slots {
			assert.Equal(t, time.Hour, s.End.Sub(s.Start))
			if i > 0 {
				// No gaps, no overlaps: each slot starts where the previous ended.
				assert.Equal(t, slots[i-1].End, s.Start)
			}
		}
		closing := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
		assert.False(t, slots[len(slots)-1].End.After(closing))
	})

	t.Run("last partial slot is dropped", func(t *testing.T) {
		slots, err := GenerateSlots(date, "09:00", "17:30", time.Hour)
		require.NoError(t, err)
		require.Len(t, slots, 8)
		assert.Equal(t, time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC), slots[len(slots)-1].End)
	})

	t.Run("open time floors to slot boundary", func(t *testing.T) {
		slots, err := GenerateSlots(date, "09:30", "12:00", time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, slots)
		assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), slots[0].Start)
	})

	t.Run("30 minute width", func(t *testing.T) {
		slots, err := GenerateSlots(date, "10:00", "12:00", 30*time.Minute)
		require.NoError(t, err)
		assert.Len(t, slots, 4)
	})

	t.Run("seconds in configured hours are accepted", func(t *testing.T) {
		slots, err := GenerateSlots(date, "09:00:00", "18:00:00", time.Hour)
		require.NoError(t, err)
		assert.Len(t, slots, 9)
	})

	t.Run("malformed open time is an error", func(t *testing.T) {
		_, err := GenerateSlots(date, "9am", "18:00", time.Hour)
		assert.Error(t, err)
	})

	t.Run("close before open is an error", func(t *testing.T) {
		_, err := GenerateSlots(date, "18:00", "09:00", time.Hour)
		assert.Error(t, err)
	})

	t.Run("window narrower than slot width yields nothing", func(t *testing.T) {
		slots, err := GenerateSlots(date, "09:00", "09:30", time.Hour)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		a, err := GenerateSlots(date, "06:00", "22:00", time.Hour)
		require.NoError(t, err)
		b, err := GenerateSlots(date, "06:00", "22:00", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
