// Package scale provides the closed-interval Range used by every
// speed-facing component to clamp values and to remap them linearly
// between unit systems (for example a motor's caller-facing speed range
// and its driver's native range).
package scale

// Range is a closed interval [Min, Max]. Min must not exceed Max.
// A degenerate Min == Max range divides by zero on remap; guarding that
// is the caller's responsibility, matching the numeric contract of the
// surrounding packages.
type Range struct {
	Min float64
	Max float64
}

// New returns the closed interval [min, max].
func New(min, max float64) Range {
	return Range{Min: min, Max: max}
}

// Contains reports whether v lies inside the interval.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Restrict clamps v into the interval.
func (r Range) Restrict(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// MapTo remaps v from r into target, preserving its relative position
// within the interval.
func (r Range) MapTo(v float64, target Range) float64 {
	return target.Min + (v-r.Min)/(r.Max-r.Min)*(target.Max-target.Min)
}

// MapFrom remaps v from source into r. It is the inverse of MapTo:
// r.MapFrom(source.MapTo(v, r), source) == v up to floating-point error.
func (r Range) MapFrom(v float64, source Range) float64 {
	return source.MapTo(v, r)
}
