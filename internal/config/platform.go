// Package config loads platform tuning from JSON files. All fields are
// pointer-optional: a partial config file is safe, and the Get* methods
// fall back to the built-in defaults for anything left unset.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/driveline/internal/imuserial"
	"github.com/banshee-data/driveline/internal/motion/drive"
	"github.com/banshee-data/driveline/internal/motion/orient"
	"github.com/banshee-data/driveline/internal/motion/scale"
)

// MotorEntry is the JSON shape of one motor in the platform table.
type MotorEntry struct {
	Angle        float64 `json:"angle"`
	Distance     float64 `json:"distance"`
	WheelRadius  float64 `json:"wheel_radius"`
	InternalMin  float64 `json:"internal_min"`
	InternalMax  float64 `json:"internal_max"`
	InterfaceMin float64 `json:"interface_min"`
	InterfaceMax float64 `json:"interface_max"`
	Reversed     bool    `json:"reversed,omitempty"`
}

// PlatformConfig is the root tuning document for a steered platform.
type PlatformConfig struct {
	// Heading regulator gains
	HeadingKp *float64 `json:"heading_kp,omitempty"`
	HeadingKi *float64 `json:"heading_ki,omitempty"`
	HeadingKd *float64 `json:"heading_kd,omitempty"`

	// Orientation estimator blend weights (1 = pure gyro integration)
	YawBlendWeight   *float64 `json:"yaw_blend_weight,omitempty"`
	PitchBlendWeight *float64 `json:"pitch_blend_weight,omitempty"`
	RollBlendWeight  *float64 `json:"roll_blend_weight,omitempty"`

	// Mounting offsets in degrees
	YawOffset   *float64 `json:"yaw_offset,omitempty"`
	PitchOffset *float64 `json:"pitch_offset,omitempty"`
	RollOffset  *float64 `json:"roll_offset,omitempty"`

	// Speed ramp profile
	ProfileAcceleration *float64 `json:"profile_acceleration,omitempty"`
	ProfileSpeedLimit   *float64 `json:"profile_speed_limit,omitempty"`

	// Decimal digits used when matching motor axes as parallel
	ParallelPrecision *int `json:"parallel_precision,omitempty"`

	Motors []MotorEntry       `json:"motors,omitempty"`
	IMU    *imuserial.Options `json:"imu,omitempty"`
}

// Empty returns a PlatformConfig with every field unset.
func Empty() *PlatformConfig {
	return &PlatformConfig{}
}

// Load reads and validates a PlatformConfig from a JSON file. The file
// must have a .json extension and stay under 1MB.
func Load(path string) (*PlatformConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration values that have been set.
func (c *PlatformConfig) Validate() error {
	for name, w := range map[string]*float64{
		"yaw_blend_weight":   c.YawBlendWeight,
		"pitch_blend_weight": c.PitchBlendWeight,
		"roll_blend_weight":  c.RollBlendWeight,
	} {
		if w != nil && (*w < 0 || *w > 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %f", name, *w)
		}
	}

	if c.ProfileAcceleration != nil && *c.ProfileAcceleration <= 0 {
		return fmt.Errorf("profile_acceleration must be positive, got %f", *c.ProfileAcceleration)
	}
	if c.ProfileSpeedLimit != nil && *c.ProfileSpeedLimit <= 0 {
		return fmt.Errorf("profile_speed_limit must be positive, got %f", *c.ProfileSpeedLimit)
	}
	if c.ParallelPrecision != nil && *c.ParallelPrecision < 0 {
		return fmt.Errorf("parallel_precision must be non-negative, got %d", *c.ParallelPrecision)
	}

	for i, m := range c.Motors {
		if m.WheelRadius <= 0 {
			return fmt.Errorf("motor %d: wheel_radius must be positive, got %f", i, m.WheelRadius)
		}
		if m.InternalMin >= m.InternalMax {
			return fmt.Errorf("motor %d: internal range [%f, %f] is empty", i, m.InternalMin, m.InternalMax)
		}
		if m.InterfaceMin >= m.InterfaceMax {
			return fmt.Errorf("motor %d: interface range [%f, %f] is empty", i, m.InterfaceMin, m.InterfaceMax)
		}
	}

	return nil
}

// GetHeadingKp returns the heading_kp value or the default.
func (c *PlatformConfig) GetHeadingKp() float64 {
	if c.HeadingKp == nil {
		return 1.0
	}
	return *c.HeadingKp
}

// GetHeadingKi returns the heading_ki value or the default.
func (c *PlatformConfig) GetHeadingKi() float64 {
	if c.HeadingKi == nil {
		return 0.0
	}
	return *c.HeadingKi
}

// GetHeadingKd returns the heading_kd value or the default.
func (c *PlatformConfig) GetHeadingKd() float64 {
	if c.HeadingKd == nil {
		return 0.0
	}
	return *c.HeadingKd
}

// GetParallelPrecision returns the parallel_precision value or the default.
func (c *PlatformConfig) GetParallelPrecision() int {
	if c.ParallelPrecision == nil {
		return 2
	}
	return *c.ParallelPrecision
}

// GetProfileAcceleration returns the profile_acceleration value or the default.
func (c *PlatformConfig) GetProfileAcceleration() float64 {
	if c.ProfileAcceleration == nil {
		return 0.5
	}
	return *c.ProfileAcceleration
}

// GetProfileSpeedLimit returns the profile_speed_limit value or the default.
func (c *PlatformConfig) GetProfileSpeedLimit() float64 {
	if c.ProfileSpeedLimit == nil {
		return 1.0
	}
	return *c.ProfileSpeedLimit
}

func blend(w *float64) float64 {
	if w == nil {
		return 0.98
	}
	return *w
}

func offset(o *float64) float64 {
	if o == nil {
		return 0
	}
	return *o
}

// OrientConfig assembles the estimator axis configuration from the blend
// weights and mounting offsets.
func (c *PlatformConfig) OrientConfig() orient.Config {
	return orient.Config{
		Yaw:   orient.AxisConfig{IntegralWeight: blend(c.YawBlendWeight), Offset: offset(c.YawOffset)},
		Pitch: orient.AxisConfig{IntegralWeight: blend(c.PitchBlendWeight), Offset: offset(c.PitchOffset)},
		Roll:  orient.AxisConfig{IntegralWeight: blend(c.RollBlendWeight), Offset: offset(c.RollOffset)},
	}
}

// MotorConfig converts the JSON motor table into the drive layer's form.
// Parallel-axis counts are left for the platform constructor to fill in.
func (c *PlatformConfig) MotorConfig() drive.MotorConfig {
	motors := make(drive.MotorConfig, len(c.Motors))
	for i, m := range c.Motors {
		motors[i] = drive.MotorInfo{
			Angle:          m.Angle,
			Distance:       m.Distance,
			WheelRadius:    m.WheelRadius,
			InternalRange:  scale.New(m.InternalMin, m.InternalMax),
			InterfaceRange: scale.New(m.InterfaceMin, m.InterfaceMax),
			Reversed:       m.Reversed,
		}
	}
	return motors
}
