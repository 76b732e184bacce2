package mvcontext

import (
	"math"
	"strconv"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

// Description is the value a PatternStructure assigns to a set of objects.
// The set of implementations is closed: Interval and NoDescription.
type Description interface {
	isDescription()
	String() string
}

type emptyDescription struct{}

func (emptyDescription) isDescription() {}
func (emptyDescription) String() string { return "None" }

// NoDescription is the intention of an empty object set. Its extension is
// always empty.
var NoDescription Description = emptyDescription{}

// IsEmpty reports whether d is NoDescription or nil.
func IsEmpty(d Description) bool {
	return d == nil || d == NoDescription
}

// IntervalKind tells the two cases of an Interval apart.
type IntervalKind uint8

const (
	// PointKind is a single value p, equivalent to [p, p].
	PointKind IntervalKind = iota
	// RangeKind is a closed range [min, max] with min < max.
	RangeKind
)

func (k IntervalKind) String() string {
	if k == PointKind {
		return "point"
	}
	return "range"
}

// Interval is the description of the interval pattern structure: either a
// point or a closed range. A range whose bounds are equal is a point, so two
// Intervals describing the same set of values always compare equal with ==.
// The zero value is Point(0).
type Interval struct {
	lo, hi float64
}

// Point returns the point description p.
func Point(p float64) Interval {
	return Interval{lo: p, hi: p}
}

// NewRange returns the closed range [lo, hi], collapsed to a point when
// lo == hi. Infinite bounds are allowed; NaN and lo > hi are not.
func NewRange(lo, hi float64) (Interval, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Interval{}, errors.NewValidationError("interval", "bounds must not be NaN", [2]float64{lo, hi})
	}
	if lo > hi {
		return Interval{}, errors.NewValidationError("interval", "lower bound exceeds upper bound", [2]float64{lo, hi})
	}
	return Interval{lo: lo, hi: hi}, nil
}

func (Interval) isDescription() {}

// Kind reports whether d is a point or a range.
func (d Interval) Kind() IntervalKind {
	if d.lo == d.hi {
		return PointKind
	}
	return RangeKind
}

// IsPoint is shorthand for d.Kind() == PointKind.
func (d Interval) IsPoint() bool {
	return d.lo == d.hi
}

// Lower returns the lower bound (the value itself for a point).
func (d Interval) Lower() float64 { return d.lo }

// Upper returns the upper bound (the value itself for a point).
func (d Interval) Upper() float64 { return d.hi }

// Bounds returns (Lower, Upper).
func (d Interval) Bounds() (float64, float64) {
	return d.lo, d.hi
}

// Contains reports whether v lies in the closed interval. Comparison is exact.
func (d Interval) Contains(v float64) bool {
	return d.lo <= v && v <= d.hi
}

// Covers reports whether o is contained in d. A more general description
// covers a more specific one.
func (d Interval) Covers(o Interval) bool {
	return d.lo <= o.lo && o.hi <= d.hi
}

// String renders a point as "p" and a range as "[min, max]".
func (d Interval) String() string {
	if d.IsPoint() {
		return formatBound(d.lo)
	}
	return "[" + formatBound(d.lo) + ", " + formatBound(d.hi) + "]"
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Descriptions maps attribute names to descriptions.
type Descriptions map[string]Description
