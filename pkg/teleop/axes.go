package teleop

import (
	"math"

	"github.com/robotalks/mpctarget/pkg/target/msgs"
	"github.com/robotalks/mpctarget/pkg/teleop/device"
)

// Axes keeps the latest value of every axis.
type Axes map[int]int

// Normalized returns the axis value in [-1, 1] with the deadzone removed
// and the remaining range rescaled.
func (a Axes) Normalized(index int, deadzone float64) float64 {
	val := math.Max(-1, math.Min(1, float64(a[index])/device.AxisMax))
	mag := math.Abs(val)
	if mag <= deadzone {
		return 0
	}
	return math.Copysign((mag-deadzone)/(1-deadzone), val)
}

// Twist maps the axes to a body frame velocity command. Pushing a stick
// forward or left produces negative axis values, so the axes are negated.
func (a Axes) Twist(conf *Config) *msgs.Twist {
	return &msgs.Twist{
		Linear: &msgs.Vector3{
			X: -a.Normalized(conf.AxisLinearX, conf.Deadzone) * conf.MaxLinearVelocity,
			Y: -a.Normalized(conf.AxisLinearY, conf.Deadzone) * conf.MaxLinearVelocity,
		},
		Angular: &msgs.Vector3{
			Z: -a.Normalized(conf.AxisYawRate, conf.Deadzone) * conf.MaxYawRate,
		},
	}
}

// IsZero determines if the twist commands no motion.
func IsZero(t *msgs.Twist) bool {
	for _, v := range t.CmdVel() {
		if v != 0 {
			return false
		}
	}
	return true
}
