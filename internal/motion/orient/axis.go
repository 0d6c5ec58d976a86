// Package orient estimates a platform's yaw, pitch and roll by fusing
// integrated angular velocity with instantaneous accelerometer-derived
// tilt. Each axis runs a complementary blend: the integral term tracks
// fast motion but drifts, the non-integral correction is noisy but
// bias-free, and a weight in [0,1] mixes the two. Yaw has no absolute
// reference available from acceleration alone and stays a pure
// integrator unless a caller installs its own correction.
package orient

import (
	"fmt"
	"math"
)

// Axis selects which angular-velocity component an estimator integrates.
type Axis int

const (
	Yaw Axis = iota
	Pitch
	Roll
)

// AxisConfig tunes one axis estimator.
type AxisConfig struct {
	// IntegralWeight is the complementary blend factor in [0,1].
	// 1 means pure integration, 0 means pure correction.
	IntegralWeight float64

	// Offset is a calibration offset seeded into the integrator when the
	// estimator is built, and grown by Calibrate.
	Offset float64
}

// CorrectionFunc produces the drift-free instantaneous angle estimate for
// one axis. A nil correction contributes a constant zero.
type CorrectionFunc func() (float64, error)

// AxisEstimator fuses one axis's integrated angular velocity with an
// optional non-integral correction.
type AxisEstimator struct {
	axis       Axis
	cfg        AxisConfig
	integrator Integrator
	gyro       AngularVelocitySource
	correction CorrectionFunc
}

// NewAxisEstimator builds an estimator for the given axis. The configured
// offset is folded into the integrator immediately, seeding calibration.
func NewAxisEstimator(axis Axis, cfg AxisConfig, gyro AngularVelocitySource, correction CorrectionFunc) *AxisEstimator {
	e := &AxisEstimator{axis: axis, cfg: cfg, gyro: gyro, correction: correction}
	e.integrator.SetIntegral(e.integrator.Integral() + cfg.Offset)
	return e
}

// Angle returns the current blended estimate without advancing it.
func (e *AxisEstimator) Angle() float64 {
	return e.integrator.Integral()
}

// Estimate advances the estimate to currentTime and returns it.
//
// It reads the angular-velocity source, integrates this axis's component,
// evaluates the correction, blends the two, and writes the blend back
// into the integrator so drift cannot accumulate across updates.
func (e *AxisEstimator) Estimate(currentTime float64) (float64, error) {
	rates, err := e.gyro.AngularVelocity()
	if err != nil {
		return 0, fmt.Errorf("read angular velocity: %w", err)
	}

	integral := e.integrator.Update(currentTime, rates[e.axis])

	nonIntegral := 0.0
	if e.correction != nil {
		nonIntegral, err = e.correction()
		if err != nil {
			return 0, fmt.Errorf("axis correction: %w", err)
		}
	}

	blended := integral*e.cfg.IntegralWeight + nonIntegral*(1-e.cfg.IntegralWeight)
	e.integrator.SetIntegral(blended)

	return blended, nil
}

// Calibrate folds the current estimate into the axis offset and re-seeds
// the integrator from it. Call while the platform is known to be
// stationary and level; the estimator does not verify that precondition.
func (e *AxisEstimator) Calibrate() {
	e.cfg.Offset += e.integrator.Integral()
	e.integrator.SetIntegral(e.cfg.Offset)
}

// PitchCorrection derives pitch from the gravity vector:
// atan2(ay, sqrt(ay²+az²)) in degrees. It reports 0 when the denominator
// vanishes, where the angle is undefined.
func PitchCorrection(accel AccelerationSource) CorrectionFunc {
	return func() (float64, error) {
		a, err := accel.Acceleration()
		if err != nil {
			return 0, fmt.Errorf("read acceleration: %w", err)
		}

		ay, az := a[1], a[2]
		denom := math.Sqrt(ay*ay + az*az)
		if denom == 0 {
			return 0, nil
		}
		return radToDeg(math.Atan2(ay, denom)), nil
	}
}

// RollCorrection derives roll from the gravity vector: atan2(ay, az) in
// degrees, reporting 90 when az is exactly zero.
func RollCorrection(accel AccelerationSource) CorrectionFunc {
	return func() (float64, error) {
		a, err := accel.Acceleration()
		if err != nil {
			return 0, fmt.Errorf("read acceleration: %w", err)
		}

		ay, az := a[1], a[2]
		if az == 0 {
			return 90, nil
		}
		return radToDeg(math.Atan2(ay, az)), nil
	}
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
