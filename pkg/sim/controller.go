package sim

import (
	"context"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

// ObservationSender reports observations to the node.
type ObservationSender interface {
	SendObservation(context.Context, *target.Observation) error
}

// SendObservationFunc is the func form of ObservationSender.
type SendObservationFunc func(context.Context, *target.Observation) error

// SendObservation implements ObservationSender.
func (f SendObservationFunc) SendObservation(ctx context.Context, obs *target.Observation) error {
	return f(ctx, obs)
}

// Controller advances a Tracker with the loop clock and reports an
// observation on every iteration.
type Controller struct {
	Tracker *Tracker
	Sender  ObservationSender

	lastTime time.Time
}

// NewController creates a Controller.
func NewController(tracker *Tracker, sender ObservationSender) *Controller {
	return &Controller{Tracker: tracker, Sender: sender}
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, fx.ControlFunc(c.HandleTrajectories))
	loop.AddController(fx.PrLvPublish, fx.ControlFunc(c.Report))
}

// HandleTrajectories takes target trajectories posted to the loop.
func (c *Controller) HandleTrajectories(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		msg, ok := mc.CurrentMessage().(*msgs.TargetTrajectories)
		if !ok {
			return
		}
		mc.MessageTaken()
		if !c.Tracker.Follow(msg.ToTargetTrajectories()) {
			glog.Warningf("ignore trajectories %v", msg.TimeTrajectory)
		}
	}))
	return nil
}

// Report advances the tracker to the iteration time and sends the
// observation.
func (c *Controller) Report(cc fx.ControlContext) error {
	return c.Step(cc.Context(), cc.Time())
}

// Step advances the tracker to now and sends the observation.
func (c *Controller) Step(ctx context.Context, now time.Time) error {
	if !c.lastTime.IsZero() && now.After(c.lastTime) {
		c.Tracker.Advance(now.Sub(c.lastTime).Seconds())
	}
	c.lastTime = now
	return c.Sender.SendObservation(ctx, c.Tracker.Observation())
}
