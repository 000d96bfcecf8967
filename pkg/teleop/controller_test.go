package teleop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
	"github.com/robotalks/mpctarget/pkg/teleop/device"
)

func TestAxesNormalized(t *testing.T) {
	axes := Axes{0: device.AxisMax, 1: -device.AxisMax, 2: device.AxisMax / 100, 3: device.AxisMax / 2, 4: -40000}
	require.Equal(t, 1.0, axes.Normalized(0, 0.1))
	require.Equal(t, -1.0, axes.Normalized(1, 0.1))
	require.Zero(t, axes.Normalized(2, 0.05))
	require.InDelta(t, (0.5-0.1)/0.9, axes.Normalized(3, 0.1), 1e-4)
	require.Equal(t, -1.0, axes.Normalized(4, 0))
	require.Zero(t, axes.Normalized(9, 0))
}

func TestAxesTwist(t *testing.T) {
	conf := NewConfig()
	conf.Deadzone = 0
	twist := Axes{conf.AxisLinearX: -device.AxisMax, conf.AxisYawRate: device.AxisMax}.Twist(conf)
	require.Equal(t, []float64{conf.MaxLinearVelocity, 0, 0, -conf.MaxYawRate}, twist.CmdVel())
	require.False(t, IsZero(twist))
	require.True(t, IsZero(Axes{}.Twist(conf)))
}

func TestControllerSendsWhileDeflected(t *testing.T) {
	var sent []*msgs.Twist
	conf := NewConfig()
	ctl := conf.NewController(SendFunc(func(_ context.Context, msg fx.Message) error {
		sent = append(sent, msg.(*msgs.Twist))
		return nil
	}))
	loop := fx.NewLoop()
	loop.AddController(fx.PrLvControl, ctl)
	ctx := context.Background()

	loop.RunIteration(ctx)
	require.Empty(t, sent)

	loop.PostMessage(&axisMsg{index: conf.AxisLinearX, value: -device.AxisMax})
	loop.RunIteration(ctx)
	loop.RunIteration(ctx)
	require.Len(t, sent, 2)
	require.Equal(t, conf.MaxLinearVelocity, sent[1].Linear.X)

	loop.PostMessage(&releaseMsg{})
	loop.RunIteration(ctx)
	loop.RunIteration(ctx)
	require.Len(t, sent, 3)
	require.True(t, IsZero(sent[2]))
}
