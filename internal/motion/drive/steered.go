package drive

import (
	"fmt"

	"github.com/banshee-data/driveline/internal/motion"
	"github.com/banshee-data/driveline/internal/motion/orient"
	"github.com/banshee-data/driveline/internal/motion/pid"
)

// HeadingCalculator turns a heading command plus the current yaw into an
// index-aligned motor speed vector. The PID regulator steers the
// platform's measured yaw toward the head angle; its output is added to
// the commanded angular speed.
//
// The calculator never reads sensors itself — the caller passes the yaw
// it already read — so it stays a pure function of its inputs plus the
// regulator state.
type HeadingCalculator struct {
	pid *pid.Regulator
}

// NewHeadingCalculator wraps the given regulator.
func NewHeadingCalculator(reg *pid.Regulator) *HeadingCalculator {
	return &HeadingCalculator{pid: reg}
}

// Speeds resolves a full platform command at time t. travelAngle is the
// heading to move along, headAngle the orientation the PID holds,
// currentYaw the latest yaw estimate.
func (h *HeadingCalculator) Speeds(
	t float64,
	config MotorConfig,
	travelAngle, headAngle, currentYaw float64,
	speed Speed,
	speedK, angularSpeed float64,
) (MotorSpeeds, error) {
	correction := h.pid.Compute(currentYaw, headAngle, t)
	return PlatformSpeeds(config, travelAngle, speed, speedK, angularSpeed+correction)
}

// SteeredPlatform drives a Platform toward a commanded heading. It
// composes an orientation source, an injected clock and a
// HeadingCalculator with the platform base it extends.
type SteeredPlatform struct {
	*Platform

	calc  *HeadingCalculator
	yaw   orient.YawSource
	clock motion.TimeSource
	head  float64
}

// NewSteeredPlatform composes an already-constructed platform with its
// steering collaborators.
func NewSteeredPlatform(p *Platform, calc *HeadingCalculator, yaw orient.YawSource, clock motion.TimeSource) *SteeredPlatform {
	return &SteeredPlatform{Platform: p, calc: calc, yaw: yaw, clock: clock}
}

// SetHead replaces the reference orientation the PID holds.
func (sp *SteeredPlatform) SetHead(angle float64) {
	sp.head = angle
}

// Head returns the current reference orientation.
func (sp *SteeredPlatform) Head() float64 {
	return sp.head
}

// Go issues one heading-seeking motion command.
//
// It reads the clock and the yaw source exactly once. With headSync the
// stored head angle is replaced by the commanded angle before steering.
// The travel angle is the commanded angle as-is, or currentYaw - angle
// when angleRelative is set. Speeds come from the heading calculator and
// are applied through SetSpeeds with its partial-failure aggregation.
func (sp *SteeredPlatform) Go(speed Speed, angle float64, angleRelative, headSync bool, angularSpeed, speedK float64) error {
	t := sp.clock()

	yaw, err := sp.yaw.Yaw()
	if err != nil {
		return fmt.Errorf("read yaw: %w", err)
	}

	if headSync {
		sp.head = angle
	}

	travel := angle
	if angleRelative {
		travel = yaw - angle
	}

	speeds, err := sp.calc.Speeds(t, sp.Config(), travel, sp.head, yaw, speed, speedK, angularSpeed)
	if err != nil {
		return fmt.Errorf("resolve platform speeds: %w", err)
	}

	return sp.SetSpeeds(speeds)
}
