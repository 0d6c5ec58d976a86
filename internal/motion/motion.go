// Package motion holds the shared vocabulary of the motion-control stack:
// the error kinds every component reports, the three-component sample
// vector, and the injected time source. Keeping these in one leaf package
// lets the pid, profile, orient and drive packages agree on failure
// classification without importing each other.
package motion

import "errors"

// Error kinds shared across the motion packages. Operations wrap these with
// fmt.Errorf("...: %w", ...) so callers can classify failures with
// errors.Is regardless of which component produced them.
var (
	// ErrInvalidConfiguration marks a component used before valid setup,
	// or configured with non-physical parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument marks malformed call parameters, such as
	// mismatched vector lengths or an out-of-domain time point.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange marks a value outside a declared physical range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrReachedTarget marks a motion whose start equals its target.
	// It is a terminal condition, not necessarily an error.
	ErrReachedTarget = errors.New("reached target")

	// ErrInitFailed marks a sub-component initialisation failure.
	ErrInitFailed = errors.New("initialisation failed")
)

// Vec3 is a three-component sample vector. Angular-velocity vectors are
// indexed yaw, pitch, roll; acceleration vectors are indexed x, y, z.
type Vec3 [3]float64

// TimeSource supplies monotonically non-decreasing timestamps in
// caller-chosen units. The core never reads a system clock itself, so a
// run is fully replayable given identical time and sensor sequences.
type TimeSource func() float64
