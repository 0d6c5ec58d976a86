package imuserial

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/driveline/internal/motion"
	"github.com/banshee-data/driveline/internal/motion/orient"
)

var (
	_ orient.AngularVelocitySource = (*Source)(nil)
	_ orient.AccelerationSource    = (*Source)(nil)
)

// runAll drains everything already in the port. The testable port returns
// EOF once its buffer is empty, so Run comes back synchronously.
func runAll(t *testing.T, s *Source) {
	t.Helper()
	require.NoError(t, s.Run(context.Background()))
}

func TestOptionsNormalize(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		opts, err := Options{Path: "/dev/ttyUSB0"}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, 115200, opts.BaudRate)
		assert.Equal(t, 8, opts.DataBits)
		assert.Equal(t, 1, opts.StopBits)
		assert.Equal(t, "N", opts.Parity)
	})

	t.Run("requires a path", func(t *testing.T) {
		t.Parallel()
		_, err := Options{}.Normalize()
		assert.Error(t, err)
	})

	t.Run("parity spellings", func(t *testing.T) {
		t.Parallel()
		opts, err := Options{Path: "p", Parity: "even"}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "E", opts.Parity)

		_, err = Options{Path: "p", Parity: "mark"}.Normalize()
		assert.Error(t, err)
	})

	t.Run("rejects bad framing", func(t *testing.T) {
		t.Parallel()
		_, err := Options{Path: "p", DataBits: 9}.Normalize()
		assert.Error(t, err)

		_, err = Options{Path: "p", StopBits: 3}.Normalize()
		assert.Error(t, err)
	})
}

func TestSourceBeforeFirstSample(t *testing.T) {
	t.Parallel()

	s := NewSource(NewTestablePort())

	_, err := s.AngularVelocity()
	assert.ErrorIs(t, err, motion.ErrInitFailed)

	_, err = s.Acceleration()
	assert.ErrorIs(t, err, motion.ErrInitFailed)
}

func TestSourceParsesSamples(t *testing.T) {
	t.Parallel()

	port := NewTestablePort()
	port.AddReadData([]byte("1.5,-2,3,0.1,0.2,0.98\n"))

	s := NewSource(port)
	runAll(t, s)

	gyro, err := s.AngularVelocity()
	require.NoError(t, err)
	assert.Equal(t, motion.Vec3{1.5, -2, 3}, gyro)

	accel, err := s.Acceleration()
	require.NoError(t, err)
	assert.Equal(t, motion.Vec3{0.1, 0.2, 0.98}, accel)
}

func TestSourceKeepsLatestSample(t *testing.T) {
	t.Parallel()

	port := NewTestablePort()
	port.AddReadData([]byte("1,0,0,0,0,1\n2,0,0,0,0,1\n"))

	s := NewSource(port)
	runAll(t, s)

	gyro, err := s.AngularVelocity()
	require.NoError(t, err)
	assert.Equal(t, 2.0, gyro[0])
}

func TestSourceDropsMalformedLines(t *testing.T) {
	t.Parallel()

	port := NewTestablePort()
	port.AddReadData([]byte("garbage\n1,2\n1,2,3,4,five,6\n\n7,0,0,0,0,1\n"))

	s := NewSource(port)
	runAll(t, s)

	assert.Equal(t, 3, s.Dropped(), "blank lines are skipped, not dropped")

	gyro, err := s.AngularVelocity()
	require.NoError(t, err)
	assert.Equal(t, 7.0, gyro[0], "the valid sample after the garbage still lands")
}

func TestSourceRunErrors(t *testing.T) {
	t.Parallel()

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()
		port := NewTestablePort()
		port.ReadError = errors.New("device unplugged")

		err := NewSource(port).Run(context.Background())
		assert.ErrorContains(t, err, "device unplugged")
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		port := NewTestablePort()
		port.AddReadData([]byte("1,0,0,0,0,1\n"))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewSource(port).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSourceClose(t *testing.T) {
	t.Parallel()

	port := NewTestablePort()
	s := NewSource(port)

	require.NoError(t, s.Close())
	assert.True(t, port.Closed)
}

func TestOpenRejectsBadOptions(t *testing.T) {
	t.Parallel()

	_, err := Open(Options{})
	assert.ErrorIs(t, err, motion.ErrInvalidConfiguration)
}
