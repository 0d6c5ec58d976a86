package drive

// Driver is the raw per-motor speed sink in the driver's native units.
// Implementations wrap whatever produces the actual pulses or bus
// writes; the core never touches hardware itself.
type Driver interface {
	SetRawSpeed(Speed) error
	RawSpeed() (Speed, error)
}

// Controller applies interface-unit speeds to one motor, mapping them
// into the driver's native range and honouring the reversed flag in both
// directions.
type Controller struct {
	info   MotorInfo
	driver Driver
}

// NewController wraps a driver with the given motor geometry.
func NewController(info MotorInfo, driver Driver) *Controller {
	return &Controller{info: info, driver: driver}
}

// Info returns the motor geometry this controller was built with.
func (c *Controller) Info() MotorInfo {
	return c.info
}

// SetSpeed commands a speed in interface units. The value is negated for
// reversed motors, clamped into the interface range, remapped into the
// driver's native range and handed to the driver.
func (c *Controller) SetSpeed(speed Speed) error {
	if c.info.Reversed {
		speed = -speed
	}
	raw := c.info.InterfaceRange.MapTo(c.info.InterfaceRange.Restrict(speed), c.info.InternalRange)
	return c.driver.SetRawSpeed(raw)
}

// Speed reads the driver's native speed back in interface units,
// un-reversing it for reversed motors.
func (c *Controller) Speed() (Speed, error) {
	raw, err := c.driver.RawSpeed()
	if err != nil {
		return 0, err
	}

	mapped := c.info.InternalRange.MapTo(raw, c.info.InterfaceRange)
	if c.info.Reversed {
		mapped = -mapped
	}
	return mapped, nil
}

// InSpeedRange reports whether speed lies inside the interface range.
func (c *Controller) InSpeedRange(speed Speed) bool {
	return c.info.InterfaceRange.Contains(speed)
}

// SetSpeedInRange commands a speed expressed in a caller-supplied range,
// remapping it into interface units first.
func (c *Controller) SetSpeedInRange(speed Speed, r SpeedRange) error {
	return c.SetSpeed(c.info.InterfaceRange.MapFrom(r.Restrict(speed), r))
}
