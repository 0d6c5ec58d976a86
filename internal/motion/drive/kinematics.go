package drive

import (
	"fmt"
	"math"

	"github.com/banshee-data/driveline/internal/motion"
)

// UpdateParallelAxes classifies co-linear motors in place. Every motor's
// count is reset to 1, then each unordered pair whose mounting angles
// differ by 0 or 180 degrees — after rounding the difference to precision
// decimal digits — has both counts incremented. Motors on the same line
// of action must split a commanded linear force between them, and the
// count is the divisor.
func UpdateParallelAxes(config MotorConfig, precision int) {
	for i := range config {
		config[i].ParallelAxes = 1
	}

	pow := math.Pow(10, float64(precision))
	for i := 0; i < len(config); i++ {
		for j := i + 1; j < len(config); j++ {
			diff := math.Round(math.Abs(config[i].Angle-config[j].Angle)*pow) / pow
			if diff == 0 || diff == 180 {
				config[i].ParallelAxes++
				config[j].ParallelAxes++
			}
		}
	}
}

// MotorLinearSpeed projects a commanded platform velocity (heading angle
// in degrees, magnitude speed) onto one motor's axis, splits it across
// the motors sharing that axis and converts it to wheel angular speed.
//
// It fails with motion.ErrInvalidArgument when the motor's parallel-axis
// count is zero (an unclassified table) and with motion.ErrOutOfRange
// when speed falls outside the motor's interface range.
func MotorLinearSpeed(info MotorInfo, angle float64, speed Speed) (Speed, error) {
	if info.ParallelAxes == 0 {
		return 0, fmt.Errorf("%w: motor has a zero parallel-axis count, classify the config first", motion.ErrInvalidArgument)
	}
	if !info.InterfaceRange.Contains(speed) {
		return 0, fmt.Errorf("%w: speed %v outside motor interface range [%v, %v]",
			motion.ErrOutOfRange, speed, info.InterfaceRange.Min, info.InterfaceRange.Max)
	}

	return cosDegrees(angle-info.Angle) * speed / float64(info.ParallelAxes) / info.WheelRadius, nil
}

// MotorRotationalSpeed is one motor's wheel angular speed contribution
// from pure platform rotation. A zero wheel radius is treated as 1 to
// avoid dividing by zero.
func MotorRotationalSpeed(info MotorInfo, angularSpeed float64) Speed {
	r := info.WheelRadius
	if r == 0 {
		r = 1
	}
	return angularSpeed * info.Distance / r
}

// PlatformSpeeds resolves a heading/speed/angular-speed command into an
// index-aligned per-motor speed vector. Each motor gets the sum of its
// linear projection (speed scaled by speedK) and its rotational
// contribution. The first per-motor failure aborts the pass.
func PlatformSpeeds(config MotorConfig, angle float64, speed Speed, speedK, angularSpeed float64) (MotorSpeeds, error) {
	speeds := make(MotorSpeeds, len(config))

	for i, info := range config {
		linear, err := MotorLinearSpeed(info, angle, speed*speedK)
		if err != nil {
			return nil, fmt.Errorf("motor %d: %w", i, err)
		}
		speeds[i] = linear + MotorRotationalSpeed(info, angularSpeed)
	}

	return speeds, nil
}

func cosDegrees(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}
