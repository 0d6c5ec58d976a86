package orient

import (
	"fmt"

	"github.com/banshee-data/driveline/internal/motion"
)

// YPR is a yaw/pitch/roll orientation triple in the caller's angular
// units.
type YPR struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// GyroData bundles orientation and the raw IMU vectors at one instant.
// It is a pure value produced on demand, never persisted.
type GyroData struct {
	YPR             YPR
	Acceleration    motion.Vec3
	AngularVelocity motion.Vec3
}

// Controller is the estimator surface exposed to embedders: advance the
// estimate to a time point, and null accumulated bias while stationary.
type Controller interface {
	Update(currentTime float64) error
	Calibrate() error
}

// Config carries the per-axis tuning for an Estimator.
type Config struct {
	Yaw   AxisConfig
	Pitch AxisConfig
	Roll  AxisConfig
}

// PureIntegration returns a Config with all three axes fully weighted
// toward the integral term and zero offsets.
func PureIntegration() Config {
	return Config{
		Yaw:   AxisConfig{IntegralWeight: 1},
		Pitch: AxisConfig{IntegralWeight: 1},
		Roll:  AxisConfig{IntegralWeight: 1},
	}
}

// Estimator composes the three per-axis estimators and runs them in
// sequence, failing fast on the first axis error.
type Estimator struct {
	yaw   *AxisEstimator
	pitch *AxisEstimator
	roll  *AxisEstimator

	gyro  AngularVelocitySource
	accel AccelerationSource // nil for pure-integration estimators
}

// NewEstimator builds a pure-integration estimator: all three axes
// integrate angular velocity with no instantaneous correction.
func NewEstimator(gyro AngularVelocitySource, cfg Config) *Estimator {
	return &Estimator{
		yaw:   NewAxisEstimator(Yaw, cfg.Yaw, gyro, nil),
		pitch: NewAxisEstimator(Pitch, cfg.Pitch, gyro, nil),
		roll:  NewAxisEstimator(Roll, cfg.Roll, gyro, nil),
		gyro:  gyro,
	}
}

// NewTiltCompensated builds an estimator whose pitch and roll axes blend
// accelerometer-derived tilt into the integral estimate. Yaw remains a
// pure integrator.
func NewTiltCompensated(gyro AngularVelocitySource, accel AccelerationSource, cfg Config) *Estimator {
	return &Estimator{
		yaw:   NewAxisEstimator(Yaw, cfg.Yaw, gyro, nil),
		pitch: NewAxisEstimator(Pitch, cfg.Pitch, gyro, PitchCorrection(accel)),
		roll:  NewAxisEstimator(Roll, cfg.Roll, gyro, RollCorrection(accel)),
		gyro:  gyro,
		accel: accel,
	}
}

// EstimateYPR advances all three axes to currentTime, in yaw, pitch, roll
// order, failing fast on the first axis error.
func (e *Estimator) EstimateYPR(currentTime float64) (YPR, error) {
	yaw, err := e.yaw.Estimate(currentTime)
	if err != nil {
		return YPR{}, fmt.Errorf("yaw: %w", err)
	}

	pitch, err := e.pitch.Estimate(currentTime)
	if err != nil {
		return YPR{}, fmt.Errorf("pitch: %w", err)
	}

	roll, err := e.roll.Estimate(currentTime)
	if err != nil {
		return YPR{}, fmt.Errorf("roll: %w", err)
	}

	return YPR{Yaw: yaw, Pitch: pitch, Roll: roll}, nil
}

// Update advances the estimate to currentTime, discarding the values.
// It satisfies the Controller interface.
func (e *Estimator) Update(currentTime float64) error {
	_, err := e.EstimateYPR(currentTime)
	return err
}

// Calibrate folds the current estimates into each axis's offset and
// re-seeds the integrators, nulling accumulated bias at the calibration
// instant. The platform must be physically stationary and level when
// this is called; the estimator cannot verify that itself.
func (e *Estimator) Calibrate() error {
	e.yaw.Calibrate()
	e.pitch.Calibrate()
	e.roll.Calibrate()
	return nil
}

// Current returns the latest blended estimates without advancing them.
func (e *Estimator) Current() YPR {
	return YPR{
		Yaw:   e.yaw.Angle(),
		Pitch: e.pitch.Angle(),
		Roll:  e.roll.Angle(),
	}
}

// Yaw reports the current heading estimate, satisfying YawSource.
func (e *Estimator) Yaw() (float64, error) {
	return e.yaw.Angle(), nil
}

// Pitch reports the current pitch estimate.
func (e *Estimator) Pitch() (float64, error) {
	return e.pitch.Angle(), nil
}

// Roll reports the current roll estimate.
func (e *Estimator) Roll() (float64, error) {
	return e.roll.Angle(), nil
}

// GyroData advances the estimate to currentTime and bundles it with the
// raw source vectors, failing fast on the first source error. Estimators
// without an acceleration source report a zero acceleration vector.
func (e *Estimator) GyroData(currentTime float64) (GyroData, error) {
	ypr, err := e.EstimateYPR(currentTime)
	if err != nil {
		return GyroData{}, err
	}

	var accel motion.Vec3
	if e.accel != nil {
		accel, err = e.accel.Acceleration()
		if err != nil {
			return GyroData{}, fmt.Errorf("read acceleration: %w", err)
		}
	}

	rates, err := e.gyro.AngularVelocity()
	if err != nil {
		return GyroData{}, fmt.Errorf("read angular velocity: %w", err)
	}

	return GyroData{YPR: ypr, Acceleration: accel, AngularVelocity: rates}, nil
}
