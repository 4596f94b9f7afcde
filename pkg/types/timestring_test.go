package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []string{"00:00", "09:05", "19:59", "23:59"}
	for _, s := range valid {
		assert.NoError(t, TimeString(s).Validate(), s)
	}

	invalid := []string{"", "9:00", "24:00", "12:60", "12:5", "ab:cd", "12:00:00", " 12:00"}
	for _, s := range invalid {
		assert.ErrorIs(t, TimeString(s).Validate(), ErrInvalidTimeString, s)
	}
}

func TestTimeString_MinutesRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		ts := FromMinutes(m)
		require.NoError(t, ts.Validate())
		assert.Equal(t, m, ts.Minutes())
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		start    TimeString
		duration int
		expected TimeString
	}{
		{"09:00", 60, "10:00"},
		{"09:30", 45, "10:15"},
		{"17:00", 0, "17:00"},
		{"23:30", 60, "00:30"},
		{"23:59", 1, "00:00"},
		{"00:10", -20, "23:50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.start.AddMinutes(tt.duration), "%s + %d", tt.start, tt.duration)
	}
}

func TestTimeString_OrderMatchesMinutes(t *testing.T) {
	samples := []TimeString{"00:00", "00:30", "09:00", "09:05", "12:00", "17:30", "23:59"}
	for _, a := range samples {
		for _, b := range samples {
			assert.Equal(t, a.Minutes() < b.Minutes(), a.IsBefore(b), "%s < %s", a, b)
			assert.Equal(t, a.Minutes() > b.Minutes(), a.IsAfter(b), "%s > %s", a, b)
		}
	}
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), TimeString("14:30").OnDate(date))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 22, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("22:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.Equal(t, TimeString(""), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Time TimeString `json:"time"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"time":"11:00"}`), &payload))
	assert.Equal(t, TimeString("11:00"), payload.Time)

	assert.Error(t, json.Unmarshal([]byte(`{"time":"25:00"}`), &payload))
}
