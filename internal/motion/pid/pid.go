// Package pid implements a stateful scalar PID feedback regulator. The
// steering layer uses it to turn a heading error into an angular-speed
// correction, but the regulator itself is unit-agnostic and independent
// of the rest of the stack.
package pid

// Regulator is a proportional-integral-derivative controller. It keeps a
// running integral, the previous error and the previous timestamp; every
// Compute call mutates that state. State is never reset automatically:
// callers needing a fresh regulator construct a new one.
//
// There is no windup clamp on the integral term. Callers whose actuators
// saturate must manage that externally.
type Regulator struct {
	kp, ki, kd float64

	target   float64
	integral float64
	prevErr  float64
	prevTime float64
}

// New returns a regulator with the given gains and a zero setpoint.
func New(kp, ki, kd float64) *Regulator {
	return &Regulator{kp: kp, ki: ki, kd: kd}
}

// NewWithTarget returns a regulator with the given gains and stored
// setpoint for use with Update.
func NewWithTarget(kp, ki, kd, target float64) *Regulator {
	return &Regulator{kp: kp, ki: ki, kd: kd, target: target}
}

// Compute advances the regulator with a measurement taken at time t and
// returns the control output.
//
// A prevTime of zero marks a regulator that has never computed: the first
// call seeds the error and time baseline and returns the proportional
// term only, avoiding a derivative spike and a division by a zero
// time-step on the very first sample.
func (r *Regulator) Compute(measured, target, t float64) float64 {
	err := target - measured

	if r.prevTime == 0 {
		r.prevTime = t
		r.prevErr = err
		return r.kp * err
	}

	dt := t - r.prevTime
	r.integral += err * dt

	derivative := 0.0
	if dt > 0 {
		derivative = (err - r.prevErr) / dt
	}

	out := r.kp*err + r.ki*r.integral + r.kd*derivative

	r.prevErr = err
	r.prevTime = t

	return out
}

// Update is Compute against the stored setpoint.
func (r *Regulator) Update(measured, t float64) float64 {
	return r.Compute(measured, r.target, t)
}

// SetTarget replaces the stored setpoint used by Update.
func (r *Regulator) SetTarget(target float64) {
	r.target = target
}

// Target returns the stored setpoint.
func (r *Regulator) Target() float64 {
	return r.target
}
