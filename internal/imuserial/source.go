// Package imuserial feeds the orientation estimator from a serial IMU.
//
// The expected wire format is one sample per line, six comma-separated
// decimal fields:
//
//	wx,wy,wz,ax,ay,az
//
// where wx..wz are angular velocities in degrees per second (yaw, pitch,
// roll order) and ax..az are accelerations in g. The package keeps only
// the latest sample; readers never block on the wire.
package imuserial

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"

	"github.com/banshee-data/driveline/internal/monitoring"
	"github.com/banshee-data/driveline/internal/motion"
)

// Porter is the minimal interface the source needs from a serial port.
// The abstraction enables unit testing without real serial hardware.
type Porter interface {
	io.Reader
	io.Closer
}

// Source reads IMU samples from a port and serves the latest one to the
// orientation estimator. It implements orient.AngularVelocitySource and
// orient.AccelerationSource.
type Source struct {
	port Porter

	mu      sync.RWMutex
	gyro    motion.Vec3
	accel   motion.Vec3
	sampled bool
	dropped int
}

// NewSource wraps an already-open port.
func NewSource(port Porter) *Source {
	return &Source{port: port}
}

// Open opens the serial device described by opts and wraps it in a
// Source. The caller owns the returned source and must Close it.
func Open(opts Options) (*Source, error) {
	normalized, err := opts.Normalize()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", motion.ErrInvalidConfiguration, err)
	}

	mode, err := normalized.SerialMode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", motion.ErrInvalidConfiguration, err)
	}

	port, err := serial.Open(normalized.Path, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", motion.ErrInitFailed, normalized.Path, err)
	}

	return NewSource(port), nil
}

// Run consumes the port line by line until the context is cancelled, the
// port is closed or a read error occurs. Malformed lines are dropped and
// counted, not fatal: a glitched sample must not take the stream down.
func (s *Source) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		gyro, accel, err := parseSample(line)
		if err != nil {
			s.mu.Lock()
			s.dropped++
			n := s.dropped
			s.mu.Unlock()
			monitoring.Debugf("imuserial: dropped sample %d: %v", n, err)
			continue
		}

		s.mu.Lock()
		s.gyro = gyro
		s.accel = accel
		s.sampled = true
		s.mu.Unlock()
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read imu stream: %w", err)
	}
	return nil
}

// Close closes the underlying port, which also unblocks Run.
func (s *Source) Close() error {
	return s.port.Close()
}

// AngularVelocity returns the gyro part of the latest sample. It fails
// with motion.ErrInitFailed until the first sample has arrived.
func (s *Source) AngularVelocity() (motion.Vec3, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.sampled {
		return motion.Vec3{}, fmt.Errorf("%w: no imu sample received yet", motion.ErrInitFailed)
	}
	return s.gyro, nil
}

// Acceleration returns the accelerometer part of the latest sample. Same
// availability rule as AngularVelocity.
func (s *Source) Acceleration() (motion.Vec3, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.sampled {
		return motion.Vec3{}, fmt.Errorf("%w: no imu sample received yet", motion.ErrInitFailed)
	}
	return s.accel, nil
}

// Dropped reports how many malformed lines Run has discarded.
func (s *Source) Dropped() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dropped
}

func parseSample(line string) (gyro, accel motion.Vec3, err error) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return gyro, accel, fmt.Errorf("%w: expected 6 fields, got %d", motion.ErrInvalidArgument, len(fields))
	}

	var values [6]float64
	for i, f := range fields {
		v, perr := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if perr != nil {
			return gyro, accel, fmt.Errorf("%w: field %d %q: %w", motion.ErrInvalidArgument, i, f, perr)
		}
		values[i] = v
	}

	gyro = motion.Vec3{values[0], values[1], values[2]}
	accel = motion.Vec3{values[3], values[4], values[5]}
	return gyro, accel, nil
}
