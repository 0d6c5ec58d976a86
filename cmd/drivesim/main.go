// drivesim exercises a full steered platform against simulated motors
// and a simulated IMU. It ramps the platform to a target speed along a
// trapezoidal profile while the heading regulator holds a commanded
// head angle, then prints a run summary.
//
// Usage:
//
//	drivesim -config platform.json -speed 0.8 -heading 15 -hold 2
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/driveline/internal/config"
	"github.com/banshee-data/driveline/internal/monitoring"
	"github.com/banshee-data/driveline/internal/motion"
	"github.com/banshee-data/driveline/internal/motion/drive"
	"github.com/banshee-data/driveline/internal/motion/orient"
	"github.com/banshee-data/driveline/internal/motion/pid"
	"github.com/banshee-data/driveline/internal/motion/profile"
	"github.com/banshee-data/driveline/internal/version"
)

// simWorld is the shared state between the simulated motor drivers and
// the simulated IMU: the drivers write wheel speeds, the IMU derives a
// yaw rate from them.
type simWorld struct {
	mu     sync.Mutex
	config drive.MotorConfig
	raw    []drive.Speed
}

func newSimWorld(cfg drive.MotorConfig) *simWorld {
	return &simWorld{config: cfg, raw: make([]drive.Speed, len(cfg))}
}

// yawRate inverts the rotational kinematics: each wheel's speed maps
// back to a platform angular speed estimate, averaged over the motors.
func (w *simWorld) yawRate() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.raw) == 0 {
		return 0
	}

	var sum float64
	for i, info := range w.config {
		r := info.WheelRadius
		if r == 0 {
			r = 1
		}
		d := info.Distance
		if d == 0 {
			d = 1
		}
		sum += w.raw[i] * r / d
	}
	return sum / float64(len(w.raw))
}

type simDriver struct {
	world *simWorld
	index int
}

func (d *simDriver) SetRawSpeed(v drive.Speed) error {
	d.world.mu.Lock()
	defer d.world.mu.Unlock()
	d.world.raw[d.index] = v
	return nil
}

func (d *simDriver) RawSpeed() (drive.Speed, error) {
	d.world.mu.Lock()
	defer d.world.mu.Unlock()
	return d.world.raw[d.index], nil
}

// simIMU reports the world's derived yaw rate on the yaw axis and a
// level 1g acceleration vector.
type simIMU struct {
	world *simWorld
}

func (s *simIMU) AngularVelocity() (motion.Vec3, error) {
	return motion.Vec3{s.world.yawRate(), 0, 0}, nil
}

func (s *simIMU) Acceleration() (motion.Vec3, error) {
	return motion.Vec3{0, 0, 1}, nil
}

// defaultMotors is the built-in four-motor X layout used when no config
// file supplies one.
func defaultMotors() []config.MotorEntry {
	entries := make([]config.MotorEntry, 0, 4)
	for _, angle := range []float64{45, 135, 225, 315} {
		entries = append(entries, config.MotorEntry{
			Angle:        angle,
			Distance:     0.2,
			WheelRadius:  0.05,
			InternalMin:  -1000,
			InternalMax:  1000,
			InterfaceMin: -100,
			InterfaceMax: 100,
		})
	}
	return entries
}

func run() error {
	configPath := flag.String("config", "", "platform tuning JSON (optional)")
	speed := flag.Float64("speed", 0.8, "target platform speed in interface units")
	heading := flag.Float64("heading", 0, "head angle to hold, degrees")
	travel := flag.Float64("travel", 0, "travel angle, degrees")
	hold := flag.Float64("hold", 1, "seconds to hold target speed after the ramp")
	dt := flag.Float64("dt", 0.01, "simulation step, seconds")
	debug := flag.Bool("debug", false, "enable per-step debug logging")
	flag.Parse()

	monitoring.SetDebug(*debug)

	cfg := config.Empty()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if len(cfg.Motors) == 0 {
		cfg.Motors = defaultMotors()
	}

	runID := uuid.NewString()
	monitoring.Logf("drivesim %s (%s) run %s: %d motors, target speed %.2f, heading %.1f°",
		version.Version, version.GitSHA, runID, len(cfg.Motors), *speed, *heading)

	world := newSimWorld(cfg.MotorConfig())

	nextMotor := 0
	platform, err := drive.NewPlatform(cfg.MotorConfig(), cfg.GetParallelPrecision(),
		func(drive.MotorInfo) (drive.Driver, error) {
			d := &simDriver{world: world, index: nextMotor}
			nextMotor++
			return d, nil
		})
	if err != nil {
		return fmt.Errorf("build platform: %w", err)
	}

	imu := &simIMU{world: world}
	estimator := orient.NewTiltCompensated(imu, imu, cfg.OrientConfig())

	calc := drive.NewHeadingCalculator(pid.New(cfg.GetHeadingKp(), cfg.GetHeadingKi(), cfg.GetHeadingKd()))

	now := 0.0
	clock := func() float64 { return now }
	sp := drive.NewSteeredPlatform(platform, calc, estimator, clock)
	sp.SetHead(*heading)

	ramp := profile.New(cfg.GetProfileAcceleration(), cfg.GetProfileSpeedLimit())
	if err := ramp.Start(0, *speed, now); err != nil {
		return fmt.Errorf("start speed ramp: %w", err)
	}

	end := ramp.Duration() + *hold
	yawTrace := make([]float64, 0, int(end / *dt)+1)

	for ; now <= end; now += *dt {
		if err := estimator.Update(now); err != nil {
			return fmt.Errorf("t=%.3f: update estimator: %w", now, err)
		}

		state, err := ramp.Sample(now)
		if err != nil {
			return fmt.Errorf("t=%.3f: sample ramp: %w", now, err)
		}

		if err := sp.Go(state.Position, *travel, false, false, 0, 1); err != nil {
			return fmt.Errorf("t=%.3f: go: %w", now, err)
		}

		yaw, _ := estimator.Yaw()
		yawTrace = append(yawTrace, yaw)
		monitoring.Debugf("t=%.3f speed=%.3f yaw=%.3f", now, state.Position, yaw)
	}

	final := make([]float64, len(platform.Controllers()))
	for i, c := range platform.Controllers() {
		v, err := c.Speed()
		if err != nil {
			return fmt.Errorf("read motor %d speed: %w", i, err)
		}
		final[i] = v
	}

	monitoring.Logf("drivesim run %s complete: %d steps over %.2fs", runID, len(yawTrace), end)
	monitoring.Logf("yaw range [%.3f°, %.3f°], final yaw %.3f°",
		floats.Min(yawTrace), floats.Max(yawTrace), yawTrace[len(yawTrace)-1])
	monitoring.Logf("final motor speeds (interface units): %v", final)
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if err := run(); err != nil {
		log.Printf("drivesim: %v", err)
		os.Exit(1)
	}
}
