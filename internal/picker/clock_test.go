package picker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_HourRoundTrip(t *testing.T) {
	f := DefaultClockFace()
	for h := 0; h <= 23; h++ {
		x, y := f.TimeToPoint(h, HourMode)
		got, _ := f.PointToTime(x, y, HourMode)
		assert.Equal(t, h, got, "hour %d", h)
	}
}

func TestClock_MinuteRoundTrip(t *testing.T) {
	f := DefaultClockFace()
	for m := 0; m <= 59; m++ {
		x, y := f.TimeToPoint(m, MinuteMode)
		got, ring := f.PointToTime(x, y, MinuteMode)
		assert.Equal(t, m, got, "minute %d", m)
		assert.Equal(t, OuterRing, ring)
	}
}

func TestClock_Hour12RoundTrip(t *testing.T) {
	f := DefaultClockFace()
	f.Hour12 = true
	for h := 1; h <= 12; h++ {
		x, y := f.TimeToPoint(h, HourMode)
		got, ring := f.PointToTime(x, y, HourMode)
		assert.Equal(t, h, got, "hour %d", h)
		assert.Equal(t, OuterRing, ring)
	}
}

func TestClock_Rings(t *testing.T) {
	f := DefaultClockFace()

	// 12 o'clock on the inner ring is 12, on the outer ring it is 0
	h, ring := f.PointToTime(0, -f.InnerRadius, HourMode)
	assert.Equal(t, 12, h)
	assert.Equal(t, InnerRing, ring)

	h, ring = f.PointToTime(0, -f.OuterRadius, HourMode)
	assert.Equal(t, 0, h)
	assert.Equal(t, OuterRing, ring)

	// 3 o'clock
	h, _ = f.PointToTime(f.InnerRadius, 0, HourMode)
	assert.Equal(t, 3, h)
	h, _ = f.PointToTime(f.OuterRadius, 0, HourMode)
	assert.Equal(t, 15, h)

	// Midpoint test: just inside the midpoint picks the inner ring
	mid := (f.InnerRadius + f.OuterRadius) / 2
	_, ring = f.PointToTime(0, mid-1, HourMode)
	assert.Equal(t, InnerRing, ring)
	_, ring = f.PointToTime(0, mid+1, HourMode)
	assert.Equal(t, OuterRing, ring)
}

func TestClock_SnapsToNearestStep(t *testing.T) {
	f := DefaultClockFace()

	// 7 degrees past twelve is closest to minute 1
	a := 7 * math.Pi / 180
	m, _ := f.PointToTime(math.Sin(a)*f.OuterRadius, -math.Cos(a)*f.OuterRadius, MinuteMode)
	assert.Equal(t, 1, m)

	// Just short of a full turn wraps back to 0
	a = 2*math.Pi - 0.01
	m, _ = f.PointToTime(math.Sin(a)*f.OuterRadius, -math.Cos(a)*f.OuterRadius, MinuteMode)
	assert.Equal(t, 0, m)
}

func TestClock_TimeToPointOrientation(t *testing.T) {
	f := DefaultClockFace()

	x, y := f.TimeToPoint(0, MinuteMode)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, -f.OuterRadius, y, 1e-9)

	x, y = f.TimeToPoint(15, MinuteMode)
	assert.InDelta(t, f.OuterRadius, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	x, y = f.TimeToPoint(6, HourMode)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, f.InnerRadius, y, 1e-9)
}

func TestClock_HandAngleNormalized(t *testing.T) {
	f := DefaultClockFace()
	for h := 0; h <= 23; h++ {
		hand := f.Hand(h, HourMode)
		assert.GreaterOrEqual(t, hand.Angle, 0.0)
		assert.Less(t, hand.Angle, 2*math.Pi)
	}

	hand := f.Hand(12, HourMode)
	assert.Equal(t, 0.0, hand.Angle)
	assert.Equal(t, InnerRing, hand.Ring)
}

func TestClock_Labels(t *testing.T) {
	f := DefaultClockFace()

	hours := f.Labels(HourMode)
	require.Len(t, hours, 24)
	assert.Equal(t, "00", hours[0].Text)
	assert.Equal(t, OuterRing, hours[0].Ring)
	assert.Equal(t, "12", hours[12].Text)
	assert.Equal(t, InnerRing, hours[12].Ring)

	minutes := f.Labels(MinuteMode)
	require.Len(t, minutes, 12)
	assert.Equal(t, "05", minutes[1].Text)

	f.Hour12 = true
	assert.Len(t, f.Labels(HourMode), 12)
}

func TestClock_OnDial(t *testing.T) {
	f := DefaultClockFace()
	assert.True(t, f.OnDial(0, 0))
	assert.True(t, f.OnDial(0, -f.DialRadius))
	assert.False(t, f.OnDial(f.DialRadius, f.DialRadius))
}
