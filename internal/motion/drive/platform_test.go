package drive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/driveline/internal/motion"
	"github.com/banshee-data/driveline/internal/motion/scale"
)

type fakeDriver struct {
	raw    Speed
	setErr error
	rawErr error
	writes int
}

func (d *fakeDriver) SetRawSpeed(v Speed) error {
	d.writes++
	if d.setErr != nil {
		return d.setErr
	}
	d.raw = v
	return nil
}

func (d *fakeDriver) RawSpeed() (Speed, error) {
	if d.rawErr != nil {
		return 0, d.rawErr
	}
	return d.raw, nil
}

func testMotor(angle float64) MotorInfo {
	return MotorInfo{
		Angle:          angle,
		Distance:       1,
		WheelRadius:    1,
		InternalRange:  scale.New(-1, 1),
		InterfaceRange: scale.New(-1, 1),
	}
}

func newTestPlatform(t *testing.T, config MotorConfig) (*Platform, []*fakeDriver) {
	t.Helper()

	drivers := make([]*fakeDriver, 0, len(config))
	p, err := NewPlatform(config, 0, func(MotorInfo) (Driver, error) {
		d := &fakeDriver{}
		drivers = append(drivers, d)
		return d, nil
	})
	require.NoError(t, err)
	return p, drivers
}

func TestNewPlatform(t *testing.T) {
	t.Parallel()

	t.Run("classifies a copy, not the caller's config", func(t *testing.T) {
		t.Parallel()
		config := MotorConfig{testMotor(0), testMotor(180)}

		p, _ := newTestPlatform(t, config)

		assert.Equal(t, 2, p.Config()[0].ParallelAxes)
		assert.Equal(t, 0, config[0].ParallelAxes, "caller's slice stays untouched")
	})

	t.Run("factory failure aborts construction", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("no bus")
		_, err := NewPlatform(MotorConfig{testMotor(0)}, 0, func(MotorInfo) (Driver, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, motion.ErrInitFailed)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("controllers align with config", func(t *testing.T) {
		t.Parallel()
		p, _ := newTestPlatform(t, MotorConfig{testMotor(0), testMotor(90), testMotor(180)})

		require.Len(t, p.Controllers(), 3)
		assert.Equal(t, 90.0, p.Controllers()[1].Info().Angle)
	})
}

func TestPlatformSetSpeeds(t *testing.T) {
	t.Parallel()

	t.Run("count mismatch applies nothing", func(t *testing.T) {
		t.Parallel()
		p, drivers := newTestPlatform(t, MotorConfig{testMotor(0), testMotor(90)})

		err := p.SetSpeeds(MotorSpeeds{1})
		assert.ErrorIs(t, err, motion.ErrInvalidArgument)
		assert.Zero(t, drivers[0].writes)
		assert.Zero(t, drivers[1].writes)
	})

	t.Run("applies interface speeds through the range mapping", func(t *testing.T) {
		t.Parallel()
		config := MotorConfig{testMotor(0), testMotor(90)}
		config[0].InternalRange = scale.New(1000, 2000)

		p, drivers := newTestPlatform(t, config)

		require.NoError(t, p.SetSpeeds(MotorSpeeds{1, -0.5}))
		assert.InDelta(t, 2000, drivers[0].raw, tol)
		assert.InDelta(t, -0.5, drivers[1].raw, tol)
	})

	t.Run("one failing motor does not stop the others", func(t *testing.T) {
		t.Parallel()
		p, drivers := newTestPlatform(t, MotorConfig{testMotor(0), testMotor(90), testMotor(180)})

		boom := errors.New("stalled")
		drivers[1].setErr = boom

		err := p.SetSpeeds(MotorSpeeds{0.1, 0.2, 0.3})
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "motor 1")

		assert.InDelta(t, 0.1, drivers[0].raw, tol)
		assert.InDelta(t, 0.3, drivers[2].raw, tol, "motor after the failure still gets its speed")
	})

	t.Run("reversed motor negates the command", func(t *testing.T) {
		t.Parallel()
		config := MotorConfig{testMotor(0)}
		config[0].Reversed = true

		p, drivers := newTestPlatform(t, config)

		require.NoError(t, p.SetSpeeds(MotorSpeeds{0.75}))
		assert.InDelta(t, -0.75, drivers[0].raw, tol)
	})
}

func TestPlatformSetSpeedsInRanges(t *testing.T) {
	t.Parallel()

	t.Run("remaps each entry from its own range", func(t *testing.T) {
		t.Parallel()
		config := MotorConfig{testMotor(0), testMotor(90)}
		config[0].InternalRange = scale.New(1000, 2000)

		p, drivers := newTestPlatform(t, config)

		err := p.SetSpeedsInRanges(
			MotorSpeeds{50, 100},
			[]SpeedRange{scale.New(0, 100), scale.New(0, 100)},
		)
		require.NoError(t, err)

		// 50 of [0,100] is the midpoint: interface 0, internal 1500.
		assert.InDelta(t, 1500, drivers[0].raw, tol)
		assert.InDelta(t, 1, drivers[1].raw, tol)
	})

	t.Run("range count must match too", func(t *testing.T) {
		t.Parallel()
		p, _ := newTestPlatform(t, MotorConfig{testMotor(0), testMotor(90)})

		err := p.SetSpeedsInRanges(MotorSpeeds{1, 1}, []SpeedRange{scale.New(0, 1)})
		assert.ErrorIs(t, err, motion.ErrInvalidArgument)
	})

	t.Run("out-of-range entries are clamped, not rejected", func(t *testing.T) {
		t.Parallel()
		p, drivers := newTestPlatform(t, MotorConfig{testMotor(0)})

		require.NoError(t, p.SetSpeedsInRanges(MotorSpeeds{250}, []SpeedRange{scale.New(0, 100)}))
		assert.InDelta(t, 1, drivers[0].raw, tol)
	})
}

func TestControllerSpeed(t *testing.T) {
	t.Parallel()

	t.Run("reads back through the inverse mapping", func(t *testing.T) {
		t.Parallel()
		info := testMotor(0)
		info.InternalRange = scale.New(1000, 2000)

		d := &fakeDriver{raw: 1750}
		c := NewController(info, d)

		got, err := c.Speed()
		require.NoError(t, err)
		assert.InDelta(t, 0.5, got, tol)
	})

	t.Run("reversed motor un-negates the reading", func(t *testing.T) {
		t.Parallel()
		info := testMotor(0)
		info.Reversed = true

		d := &fakeDriver{raw: -0.25}
		c := NewController(info, d)

		got, err := c.Speed()
		require.NoError(t, err)
		assert.InDelta(t, 0.25, got, tol)
	})

	t.Run("driver read failure propagates", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("bus timeout")
		c := NewController(testMotor(0), &fakeDriver{rawErr: boom})

		_, err := c.Speed()
		assert.ErrorIs(t, err, boom)
	})
}
