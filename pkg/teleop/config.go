package teleop

import (
	"flag"
	"time"
)

// Config defines the joystick mapping and command limits.
type Config struct {
	DeviceIndex int
	Verbose     bool
	// Interval between velocity commands while the stick is deflected.
	Interval time.Duration

	AxisLinearX int
	AxisLinearY int
	AxisYawRate int
	// Deadzone is the fraction of the axis range treated as zero.
	Deadzone float64

	MaxLinearVelocity float64
	MaxYawRate        float64
}

var defaultConfig = Config{
	DeviceIndex:       -1,
	Interval:          50 * time.Millisecond,
	AxisLinearX:       1,
	AxisLinearY:       0,
	AxisYawRate:       3,
	Deadzone:          0.05,
	MaxLinearVelocity: 0.5,
	MaxYawRate:        1.0,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.DeviceIndex, "device", defaultConfig.DeviceIndex, "Device index, -1 for auto detection.")
	flag.BoolVar(&defaultConfig.Verbose, "verbose", defaultConfig.Verbose, "Print Joystick events.")
	flag.DurationVar(&defaultConfig.Interval, "interval", defaultConfig.Interval, "Interval of velocity commands.")
	flag.IntVar(&defaultConfig.AxisLinearX, "axis-x", defaultConfig.AxisLinearX, "Axis for forward velocity.")
	flag.IntVar(&defaultConfig.AxisLinearY, "axis-y", defaultConfig.AxisLinearY, "Axis for lateral velocity.")
	flag.IntVar(&defaultConfig.AxisYawRate, "axis-yaw", defaultConfig.AxisYawRate, "Axis for yaw rate.")
	flag.Float64Var(&defaultConfig.Deadzone, "deadzone", defaultConfig.Deadzone, "Fraction of axis range treated as zero.")
	flag.Float64Var(&defaultConfig.MaxLinearVelocity, "max-linear", defaultConfig.MaxLinearVelocity, "Linear velocity (m/s) at full deflection.")
	flag.Float64Var(&defaultConfig.MaxYawRate, "max-yaw-rate", defaultConfig.MaxYawRate, "Yaw rate (rad/s) at full deflection.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
