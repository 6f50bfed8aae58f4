package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkInterval(t *testing.T, start, end string) Interval {
	t.Helper()
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	s, err := ParseClock(start)
	require.NoError(t, err)
	e, err := ParseClock(end)
	require.NoError(t, err)
	return Interval{Start: At(date, s), End: At(date, e)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "back-to-back intervals do not overlap",
			a:    mkInterval(t, "09:00", "10:00"),
			b:    mkInterval(t, "10:00", "11:00"),
			want: false,
		},
		{
			name: "partial overlap",
			a:    mkInterval(t, "09:00", "10:00"),
			b:    mkInterval(t, "09:30", "10:30"),
			want: true,
		},
		{
			name: "containment",
			a:    mkInterval(t, "09:00", "12:00"),
			b:    mkInterval(t, "10:00", "11:00"),
			want: true,
		},
		{
			name: "identical intervals",
			a:    mkInterval(t, "09:00", "10:00"),
			b:    mkInterval(t, "09:00", "10:00"),
			want: true,
		},
		{
			name: "disjoint intervals",
			a:    mkInterval(t, "08:00", "09:00"),
			b:    mkInterval(t, "14:00", "15:00"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// The predicate must be symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "09:00", want: 9 * time.Hour},
		{in: "09:30", want: 9*time.Hour + 30*time.Minute},
		{in: "00:00", want: 0},
		{in: "23:59", want: 23*time.Hour + 59*time.Minute},
		{in: "06:00:00", want: 6 * time.Hour},
		{in: "9am", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "", wantErr: true},
		{in: "12:61", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
