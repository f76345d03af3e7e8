package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasurvey/transect-backend-go/internal/models"
)

func TestFormatDate_UTC(t *testing.T) {
	tests := []struct {
		epoch int64
		want  string
	}{
		{1000, "1970-01-01 00:16:40"},
		{-1, "1969-12-31 23:59:59"},
		{time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC).Unix(), "2024-06-01 12:30:00"},
		{models.MinDate, "0001-01-01 00:00:00"},
		{models.MaxDate, "9999-12-31 23:59:59"},
	}
	for _, tt := range tests {
		got, err := formatDate(tt.epoch)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatDate_OutOfRange(t *testing.T) {
	for _, epoch := range []int64{models.MaxDate + 1, models.MinDate - 1, 1 << 40, -(1 << 40)} {
		_, err := formatDate(epoch)
		assert.ErrorIs(t, err, ErrDateOutOfRange, "epoch %d", epoch)
	}
}

func TestEpochTime_Scan(t *testing.T) {
	want := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC).Unix()
	local := time.FixedZone("NZST", 12*3600)

	tests := []struct {
		name string
		src  any
	}{
		{"storage string", "2024-06-01 12:30:00"},
		{"bytes", []byte("2024-06-01 12:30:00")},
		{"rfc3339", "2024-06-01T12:30:00Z"},
		{"rfc3339 offset", "2024-06-02T00:30:00+12:00"},
		{"time utc", time.Unix(want, 0).UTC()},
		{"time other zone", time.Unix(want, 0).In(local)},
		{"epoch integer", want},
		{"epoch text", "1717245000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e epochTime
			require.NoError(t, e.Scan(tt.src))
			assert.Equal(t, want, int64(e))
		})
	}
}

func TestEpochTime_ScanRejects(t *testing.T) {
	var e epochTime
	assert.Error(t, e.Scan(nil))
	assert.Error(t, e.Scan("yesterday"))
	assert.Error(t, e.Scan(3.5))
}

func TestFormatDate_RoundTrip(t *testing.T) {
	for _, epoch := range []int64{0, 1, 1000, 4600, -86400, -86401, 1717245000, 4102444800, models.MinDate, models.MaxDate} {
		s, err := formatDate(epoch)
		require.NoError(t, err)

		var e epochTime
		require.NoError(t, e.Scan(s))
		assert.Equal(t, epoch, int64(e))
	}
}

func TestNullHelpers(t *testing.T) {
	n := int64(3)
	f := float32(1.5)
	s := "calm"

	assert.Equal(t, int64(3), nullInt64(&n).Int64)
	assert.True(t, nullInt64(&n).Valid)
	assert.False(t, nullInt64(nil).Valid)
	assert.InDelta(t, 1.5, nullFloat32(&f).Float64, 1e-9)
	assert.False(t, nullFloat32(nil).Valid)
	assert.Equal(t, "calm", nullString(&s).String)
	assert.False(t, nullString(nil).Valid)
}
