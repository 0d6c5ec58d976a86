// Package drive maps platform-level motion commands onto an arbitrary,
// possibly mechanically-coupled, set of motors. It owns the motor
// geometry table, the per-motor ranged speed controllers, the kinematics
// that split a heading/speed/angular-speed command across the motors, and
// the heading-seeking steered platform on top.
package drive

import "github.com/banshee-data/driveline/internal/motion/scale"

// Speed is a scalar speed in caller-chosen units.
type Speed = float64

// SpeedRange bounds a motor's speed in one unit system.
type SpeedRange = scale.Range

// MotorInfo is one motor's static geometry and capability. Entries are
// built from configuration at platform construction; only the
// parallel-axis classification pass mutates them afterwards.
type MotorInfo struct {
	// Angle is the mounting angle in degrees: the direction of positive
	// linear motion in the platform's reference frame.
	Angle float64

	// Distance is the motor's distance from the platform centre, used
	// for its rotational contribution.
	Distance float64

	// WheelRadius converts linear speed at the contact point into wheel
	// angular speed.
	WheelRadius float64

	// InternalRange is the speed range in the driver's native units.
	InternalRange SpeedRange

	// InterfaceRange is the caller-facing speed range.
	InterfaceRange SpeedRange

	// Reversed flips commanded and reported speeds.
	Reversed bool

	// ParallelAxes counts the motors sharing this motor's line of
	// action, including itself. Set by UpdateParallelAxes.
	ParallelAxes int
}

// MotorConfig is the ordered motor geometry table, index-aligned 1:1
// with the platform's controllers.
type MotorConfig []MotorInfo

// MotorSpeeds is an ordered speed vector, index-aligned with a
// MotorConfig.
type MotorSpeeds []Speed
