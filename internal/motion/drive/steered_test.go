package drive

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/driveline/internal/motion/pid"
	"github.com/banshee-data/driveline/internal/motion/scale"
)

type stubYaw struct {
	yaw float64
	err error
}

func (s *stubYaw) Yaw() (float64, error) { return s.yaw, s.err }

func wideMotor(angle float64) MotorInfo {
	info := testMotor(angle)
	info.InternalRange = scale.New(-10, 10)
	info.InterfaceRange = scale.New(-10, 10)
	return info
}

func newSteered(t *testing.T, yaw *stubYaw, kp float64) (*SteeredPlatform, []*fakeDriver) {
	t.Helper()

	p, drivers := newTestPlatform(t, MotorConfig{wideMotor(0), wideMotor(90)})

	clock := func() float64 { return 1 }
	calc := NewHeadingCalculator(pid.New(kp, 0, 0))
	return NewSteeredPlatform(p, calc, yaw, clock), drivers
}

func TestHeadingCalculatorSpeeds(t *testing.T) {
	t.Parallel()

	config := MotorConfig{wideMotor(0), wideMotor(90)}
	UpdateParallelAxes(config, 0)

	t.Run("no yaw error means no correction", func(t *testing.T) {
		t.Parallel()
		calc := NewHeadingCalculator(pid.New(1, 0, 0))

		speeds, err := calc.Speeds(1, config, 0, 0, 0, 1, 1, 0)
		require.NoError(t, err)
		assert.InDelta(t, 1, speeds[0], tol)
		assert.InDelta(t, 0, speeds[1], tol)
	})

	t.Run("yaw error feeds the angular term", func(t *testing.T) {
		t.Parallel()
		calc := NewHeadingCalculator(pid.New(1, 0, 0))

		// Heading 0, yaw 2: the regulator's first pass contributes
		// kp * (0 - 2) = -2 of angular speed on every motor.
		speeds, err := calc.Speeds(1, config, 0, 0, 2, 1, 1, 0)
		require.NoError(t, err)
		assert.InDelta(t, -1, speeds[0], tol)
		assert.InDelta(t, -2, speeds[1], tol)
	})
}

func TestSteeredPlatformGo(t *testing.T) {
	t.Parallel()

	t.Run("aligned yaw drives straight", func(t *testing.T) {
		t.Parallel()
		sp, drivers := newSteered(t, &stubYaw{}, 1)

		require.NoError(t, sp.Go(1, 0, false, false, 0, 1))
		assert.InDelta(t, 1, drivers[0].raw, tol)
		assert.InDelta(t, 0, drivers[1].raw, tol)
	})

	t.Run("yaw offset steers back toward head", func(t *testing.T) {
		t.Parallel()
		sp, drivers := newSteered(t, &stubYaw{yaw: 2}, 1)

		require.NoError(t, sp.Go(1, 0, false, false, 0, 1))
		assert.InDelta(t, -1, drivers[0].raw, tol)
		assert.InDelta(t, -2, drivers[1].raw, tol)
	})

	t.Run("headSync adopts the commanded angle", func(t *testing.T) {
		t.Parallel()
		sp, _ := newSteered(t, &stubYaw{yaw: 30}, 1)

		require.NoError(t, sp.Go(0, 30, false, true, 0, 1))
		assert.Equal(t, 30.0, sp.Head())
	})

	t.Run("relative angle is measured from the current yaw", func(t *testing.T) {
		t.Parallel()
		sp, drivers := newSteered(t, &stubYaw{yaw: 30}, 1)
		sp.SetHead(30)

		// Travel angle is yaw - angle = 20 degrees; head matches yaw
		// so the regulator contributes nothing.
		require.NoError(t, sp.Go(1, 10, true, false, 0, 1))
		assert.InDelta(t, math.Cos(20*math.Pi/180), drivers[0].raw, tol)
		assert.InDelta(t, math.Cos(70*math.Pi/180), drivers[1].raw, tol)
	})

	t.Run("yaw failure aborts before any motor is touched", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("imu offline")
		sp, drivers := newSteered(t, &stubYaw{err: boom}, 1)

		err := sp.Go(1, 0, false, false, 0, 1)
		require.ErrorIs(t, err, boom)
		assert.Zero(t, drivers[0].writes)
		assert.Zero(t, drivers[1].writes)
	})
}
