// Package profile plans bounded-acceleration point-to-point trajectories.
//
// A configured Profile accelerates at a constant rate to a cruise speed,
// holds it, and decelerates symmetrically — the velocity-vs-time shape is
// a trapezoid. When the distance is too short to reach the configured
// speed limit the cruise phase collapses and the shape degenerates to a
// triangle with a lower peak speed.
package profile

import (
	"fmt"
	"math"

	"github.com/banshee-data/driveline/internal/motion"
)

// State is the instantaneous kinematic state of a planned motion.
type State struct {
	Position     float64
	Speed        float64
	Acceleration float64
}

// Profile is a stateful trajectory planner. The acceleration and speed
// limit magnitudes are fixed at construction; Start derives the phase
// boundaries for one point-to-point motion and Sample evaluates the
// closed-form kinematics at any later time point without mutating state.
//
// Timestamps are caller-supplied monotonic values in whatever units are
// consistent with the configured acceleration and speed limit.
type Profile struct {
	accel float64 // configured acceleration magnitude
	limit float64 // configured speed limit magnitude

	// Derived by Start for the current motion.
	sign      float64 // +1 toward increasing positions, -1 otherwise
	vPeak     float64 // signed effective cruise speed
	t1        float64 // acceleration ends (relative to startTime)
	t2        float64 // cruise ends
	t3        float64 // total duration
	x1        float64 // position at t1
	x2        float64 // position at t2
	x0        float64 // start position
	xt        float64 // target position
	startTime float64

	configured bool
}

// New returns a profile with the given acceleration and speed limit
// magnitudes. Both must be positive for Start to succeed.
func New(acceleration, speedLimit float64) *Profile {
	return &Profile{accel: acceleration, limit: speedLimit}
}

// Acceleration returns the configured acceleration magnitude.
func (p *Profile) Acceleration() float64 {
	return p.accel
}

// SpeedLimit returns the configured speed limit magnitude.
func (p *Profile) SpeedLimit() float64 {
	return p.limit
}

// IsConfigured reports whether a motion is currently planned.
func (p *Profile) IsConfigured() bool {
	return p.configured
}

// Duration returns the total planned motion time, or 0 when no motion is
// configured.
func (p *Profile) Duration() float64 {
	if !p.configured {
		return 0
	}
	return p.t3
}

// Target returns the target position of the current motion, or 0 when no
// motion is configured.
func (p *Profile) Target() float64 {
	if !p.configured {
		return 0
	}
	return p.xt
}

// Reset abandons the current motion. The configured acceleration and
// speed limit survive so a new Start can succeed; everything derived is
// cleared and Sample fails until then.
func (p *Profile) Reset() {
	*p = Profile{accel: p.accel, limit: p.limit}
}

// Start plans a motion from start to target beginning at startTime.
//
// It fails with motion.ErrInvalidConfiguration when the configured
// acceleration or speed limit is not positive, and with
// motion.ErrReachedTarget when start equals target (the already-arrived
// case). On any failure the profile is left unconfigured.
//
// If there is not enough distance to reach the speed limit before the
// deceleration point, the cruise speed is clamped to
// sqrt(acceleration*|target-start|), producing a triangular profile.
func (p *Profile) Start(start, target, startTime float64) error {
	p.configured = false

	if p.accel <= 0 {
		p.Reset()
		return fmt.Errorf("%w: acceleration must be positive, got %v", motion.ErrInvalidConfiguration, p.accel)
	}
	if p.limit <= 0 {
		p.Reset()
		return fmt.Errorf("%w: speed limit must be positive, got %v", motion.ErrInvalidConfiguration, p.limit)
	}
	if start == target {
		p.Reset()
		return fmt.Errorf("%w: motion starts at its target position %v", motion.ErrReachedTarget, target)
	}

	p.sign = 1
	if target < start {
		p.sign = -1
	}

	peak := math.Min(p.limit, math.Sqrt(p.accel*math.Abs(target-start)))
	p.vPeak = p.sign * peak

	p.t1 = peak / p.accel
	p.x1 = start + p.sign*p.accel*p.t1*p.t1/2

	p.t2 = p.t1 + (target+start-2*p.x1)/p.vPeak
	p.x2 = p.x1 + p.vPeak*(p.t2-p.t1)

	p.t3 = p.t1 + p.t2

	p.x0 = start
	p.xt = target
	p.startTime = startTime
	p.configured = true

	return nil
}

// Sample evaluates the planned motion at timePoint.
//
// It fails with motion.ErrInvalidConfiguration when no motion is
// configured and with motion.ErrInvalidArgument when timePoint precedes
// the motion's start time. Past the total duration it returns the
// terminal state — target position, zero speed, zero acceleration — with
// no error; callers end a consumed motion explicitly with Reset.
func (p *Profile) Sample(timePoint float64) (State, error) {
	if !p.configured {
		return State{}, fmt.Errorf("%w: no motion planned, call Start first", motion.ErrInvalidConfiguration)
	}

	t := timePoint - p.startTime
	if t < 0 {
		return State{}, fmt.Errorf("%w: time point %v precedes motion start %v", motion.ErrInvalidArgument, timePoint, p.startTime)
	}

	switch {
	case t <= p.t1:
		return State{
			Position:     p.x0 + p.sign*p.accel*t*t/2,
			Speed:        p.sign * p.accel * t,
			Acceleration: p.sign * p.accel,
		}, nil

	case t < p.t2:
		return State{
			Position:     p.x1 + p.vPeak*(t-p.t1),
			Speed:        p.vPeak,
			Acceleration: 0,
		}, nil

	case t <= p.t3:
		dt := t - p.t2
		return State{
			Position:     p.x2 + p.vPeak*dt - p.sign*p.accel*dt*dt/2,
			Speed:        p.vPeak - p.sign*p.accel*dt,
			Acceleration: -p.sign * p.accel,
		}, nil

	default:
		// Terminal clamp: the motion is complete and holds its target.
		return State{Position: p.xt}, nil
	}
}
