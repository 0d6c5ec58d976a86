package orient

import "github.com/banshee-data/driveline/internal/motion"

// AngularVelocitySource reports the instantaneous angular velocity as a
// vector indexed yaw, pitch, roll, in caller-chosen angular units per
// caller-chosen time unit.
type AngularVelocitySource interface {
	AngularVelocity() (motion.Vec3, error)
}

// AccelerationSource reports the instantaneous acceleration as an x, y, z
// vector. Only the tilt-compensated pitch and roll estimators need it.
type AccelerationSource interface {
	Acceleration() (motion.Vec3, error)
}

// YawSource reports the current heading estimate. The steering layer
// consumes this capability rather than a concrete estimator.
type YawSource interface {
	Yaw() (float64, error)
}
