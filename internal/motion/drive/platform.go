package drive

import (
	"errors"
	"fmt"
	"slices"

	"github.com/banshee-data/driveline/internal/motion"
)

// DriverFactory constructs the raw speed driver for one motor. The
// platform calls it once per config entry during construction.
type DriverFactory func(MotorInfo) (Driver, error)

// Platform owns one ranged speed controller per configured motor. The
// configuration is copied and classified at construction and immutable
// afterwards.
type Platform struct {
	config      MotorConfig
	controllers []*Controller
}

// NewPlatform copies the configuration, runs the parallel-axis pass at
// the given precision and builds one controller per motor, index-aligned
// with the config. A factory failure aborts construction with
// motion.ErrInitFailed.
func NewPlatform(config MotorConfig, parallelPrecision int, factory DriverFactory) (*Platform, error) {
	cfg := slices.Clone(config)
	UpdateParallelAxes(cfg, parallelPrecision)

	p := &Platform{
		config:      cfg,
		controllers: make([]*Controller, len(cfg)),
	}

	for i, info := range cfg {
		driver, err := factory(info)
		if err != nil {
			return nil, fmt.Errorf("%w: motor %d driver: %w", motion.ErrInitFailed, i, err)
		}
		p.controllers[i] = NewController(info, driver)
	}

	return p, nil
}

// Config returns the classified motor table. Callers must not mutate it.
func (p *Platform) Config() MotorConfig {
	return p.config
}

// Controllers returns the index-aligned motor controllers.
func (p *Platform) Controllers() []*Controller {
	return p.controllers
}

// SetSpeeds applies an index-aligned speed vector in interface units.
//
// A count mismatch fails with motion.ErrInvalidArgument before anything
// is applied. Individual motor failures do not stop the pass: every
// motor is attempted and all errors come back joined, so a failure on
// one motor never hides another.
func (p *Platform) SetSpeeds(speeds MotorSpeeds) error {
	if len(speeds) != len(p.controllers) {
		return fmt.Errorf("%w: %d speeds for %d controllers",
			motion.ErrInvalidArgument, len(speeds), len(p.controllers))
	}

	var errs []error
	for i, c := range p.controllers {
		if err := c.SetSpeed(speeds[i]); err != nil {
			errs = append(errs, fmt.Errorf("motor %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// SetSpeedsInRanges applies a speed vector where each entry is expressed
// in its own caller-supplied range. Same counting and partial-failure
// semantics as SetSpeeds.
func (p *Platform) SetSpeedsInRanges(speeds MotorSpeeds, ranges []SpeedRange) error {
	if len(speeds) != len(p.controllers) || len(ranges) != len(p.controllers) {
		return fmt.Errorf("%w: %d speeds and %d ranges for %d controllers",
			motion.ErrInvalidArgument, len(speeds), len(ranges), len(p.controllers))
	}

	var errs []error
	for i, c := range p.controllers {
		if err := c.SetSpeedInRange(speeds[i], ranges[i]); err != nil {
			errs = append(errs, fmt.Errorf("motor %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
