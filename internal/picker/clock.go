package picker

import (
	"fmt"
	"math"
)

// ClockMode selects which unit the dial represents
type ClockMode int

const (
	HourMode ClockMode = iota
	MinuteMode
)

func (m ClockMode) String() string {
	if m == MinuteMode {
		return "minute"
	}
	return "hour"
}

// Ring identifies the circle a dial value sits on
type Ring int

const (
	OuterRing Ring = iota
	InnerRing
)

func (r Ring) String() string {
	if r == InnerRing {
		return "inner"
	}
	return "outer"
}

const (
	hourUnit   = math.Pi / 6
	minuteUnit = math.Pi / 30
	fullTurn   = 2 * math.Pi
)

// ClockFace holds the dial geometry. Coordinates are offsets from the dial
// center with y growing downward, so 12 o'clock is (0, -r).
type ClockFace struct {
	DialRadius  float64
	OuterRadius float64
	InnerRadius float64
	TickRadius  float64

	// Hour12 puts hours 1..12 on a single ring instead of the two-ring 24h face
	Hour12 bool
}

// HandPosition is the pointer's offset from the dial center
type HandPosition struct {
	X, Y  float64
	Angle float64 // radians in [0, 2π)
	Ring  Ring
}

// Label is a tick label drawn on the dial
type Label struct {
	Value int
	Text  string
	X, Y  float64
	Ring  Ring
}

// DefaultClockFace returns the 24h dial geometry
func DefaultClockFace() ClockFace {
	return ClockFace{
		DialRadius:  120,
		OuterRadius: 99,
		InnerRadius: 66,
		TickRadius:  17,
	}
}

// PointToTime maps a dial offset to a discrete hour or minute.
//
// On the 24h face the inner ring carries 1..12 and the outer ring carries 0
// and 13..23; the ring is whichever radius the point is closer to.
func (f ClockFace) PointToTime(x, y float64, mode ClockMode) (int, Ring) {
	radius := math.Hypot(x, y)
	angle := normalizeAngle(math.Atan2(x, -y))

	if mode == MinuteMode {
		raw := int(math.Round(angle / minuteUnit))
		return raw % 60, OuterRing
	}

	raw := int(math.Round(angle/hourUnit)) % 12
	if f.Hour12 {
		if raw == 0 {
			raw = 12
		}
		return raw, OuterRing
	}
	if math.Abs(radius-f.InnerRadius) < math.Abs(radius-f.OuterRadius) {
		if raw == 0 {
			raw = 12
		}
		return raw, InnerRing
	}
	if raw == 0 {
		return 0, OuterRing
	}
	return raw + 12, OuterRing
}

// TimeToPoint is the inverse of PointToTime
func (f ClockFace) TimeToPoint(value int, mode ClockMode) (float64, float64) {
	radius := f.radiusFor(value, mode)
	angle := float64(value) * unitFor(mode)
	return math.Sin(angle) * radius, -math.Cos(angle) * radius
}

// Hand returns the pointer position for value
func (f ClockFace) Hand(value int, mode ClockMode) HandPosition {
	x, y := f.TimeToPoint(value, mode)
	return HandPosition{
		X:     x,
		Y:     y,
		Angle: normalizeAngle(float64(value%stepsFor(mode)) * unitFor(mode)),
		Ring:  f.ringFor(value, mode),
	}
}

// OnDial reports whether the offset lies within the dial
func (f ClockFace) OnDial(x, y float64) bool {
	return math.Hypot(x, y) <= f.DialRadius
}

// Labels returns the tick labels for mode
func (f ClockFace) Labels(mode ClockMode) []Label {
	var values []int
	switch {
	case mode == MinuteMode:
		for m := 0; m < 60; m += 5 {
			values = append(values, m)
		}
	case f.Hour12:
		for h := 1; h <= 12; h++ {
			values = append(values, h)
		}
	default:
		for h := 0; h < 24; h++ {
			values = append(values, h)
		}
	}

	labels := make([]Label, 0, len(values))
	for _, v := range values {
		x, y := f.TimeToPoint(v, mode)
		text := fmt.Sprintf("%d", v)
		if mode == MinuteMode || (v == 0 && !f.Hour12) {
			text = fmt.Sprintf("%02d", v)
		}
		labels = append(labels, Label{Value: v, Text: text, X: x, Y: y, Ring: f.ringFor(v, mode)})
	}
	return labels
}

func (f ClockFace) radiusFor(value int, mode ClockMode) float64 {
	if f.ringFor(value, mode) == InnerRing {
		return f.InnerRadius
	}
	return f.OuterRadius
}

func (f ClockFace) ringFor(value int, mode ClockMode) Ring {
	if mode == HourMode && !f.Hour12 && value >= 1 && value <= 12 {
		return InnerRing
	}
	return OuterRing
}

func unitFor(mode ClockMode) float64 {
	if mode == MinuteMode {
		return minuteUnit
	}
	return hourUnit
}

// stepsFor is the number of steps in one full turn
func stepsFor(mode ClockMode) int {
	if mode == MinuteMode {
		return 60
	}
	return 12
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, fullTurn)
	if a < 0 {
		a += fullTurn
	}
	if a >= fullTurn {
		a = 0
	}
	return a
}
