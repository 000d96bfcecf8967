// Package teleop drives the robot with a joystick by sending velocity
// commands.
package teleop

import (
	"context"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/teleop/device"
)

// Sender sends a command to the robot.
type Sender interface {
	Send(context.Context, fx.Message) error
}

// SendFunc is the func form of Sender.
type SendFunc func(context.Context, fx.Message) error

// Send implements Sender.
func (f SendFunc) Send(ctx context.Context, msg fx.Message) error {
	return f(ctx, msg)
}

// Controller polls a joystick and sends a twist on every loop iteration
// while any stick is deflected. A single zero twist is sent when the
// sticks are released or the device is lost.
type Controller struct {
	Config *Config
	Sender Sender

	axes   Axes
	moving bool
}

// NewController creates a Controller.
func (c *Config) NewController(sender Sender) *Controller {
	return &Controller{Config: c, Sender: sender, axes: make(Axes)}
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("joystick", c))
	loop.AddController(fx.PrLvControl, c)
}

type axisMsg struct {
	index, value int
}

func (m *axisMsg) NewMessage() fx.Message { return &axisMsg{} }

type releaseMsg struct{}

func (m *releaseMsg) NewMessage() fx.Message { return &releaseMsg{} }

// Run implements Runnable. It opens the device, retrying every second,
// and posts axis changes to the loop.
func (c *Controller) Run(ctx context.Context) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	retry := time.NewTicker(time.Second)
	defer retry.Stop()
	for {
		dev, err := c.open()
		if err != nil {
			glog.Warningf("open joystick: %v", err)
		} else if dev != nil {
			glog.Infof("joystick %d %q opened, %d axes", dev.Index(), dev.Name(), dev.AxisCount())
			c.poll(ctx, loopCtl, dev)
			loopCtl.PostMessage(&releaseMsg{})
			loopCtl.TriggerNext()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-retry.C:
		}
	}
}

func (c *Controller) open() (device.Device, error) {
	if c.Config.DeviceIndex >= 0 {
		return device.Open(c.Config.DeviceIndex)
	}
	return device.DetectAndOpen(0)
}

func (c *Controller) poll(ctx context.Context, loopCtl fx.LoopControl, dev device.Device) {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		dev.Close()
	}()
	for {
		ev, err := dev.ReadEvent()
		if err != nil {
			if ctx.Err() == nil {
				glog.Warningf("joystick read error: %v", err)
			}
			return
		}
		axisEv, ok := ev.(device.AxisEvent)
		if c.Config.Verbose {
			glog.Infof("event %T index %d init %v", ev, ev.Index(), ev.IsInit())
		}
		if ok {
			loopCtl.PostMessage(&axisMsg{index: axisEv.Index(), value: axisEv.Value()})
		}
	}
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		switch msg := mc.CurrentMessage().(type) {
		case *axisMsg:
			mc.MessageTaken()
			c.axes[msg.index] = msg.value
		case *releaseMsg:
			mc.MessageTaken()
			c.axes = make(Axes)
		}
	}))
	twist := c.axes.Twist(c.Config)
	if IsZero(twist) {
		if !c.moving {
			return nil
		}
		c.moving = false
	} else {
		c.moving = true
	}
	return c.Sender.Send(cc.Context(), twist)
}
