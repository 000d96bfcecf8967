// Package node turns observations and commands received by the loop into
// published target trajectories.
package node

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

// Node is the controller keeping the latest observation and building a
// target trajectory for every goal or velocity command. It runs on the
// loop goroutine so commands are handled one at a time.
type Node struct {
	Config     *target.Config
	Integrator *target.Integrator
	Publisher  Publisher

	observation *target.Observation
}

// New creates a Node.
func New(conf *target.Config, publisher Publisher) *Node {
	return &Node{
		Config:     conf,
		Integrator: target.NewIntegrator(),
		Publisher:  publisher,
	}
}

// AddToLoop implements LoopAdder.
func (n *Node) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, n)
}

// Observation returns the latest observation, nil before the first one.
func (n *Node) Observation() *target.Observation {
	return n.observation
}

// Control implements Controller.
func (n *Node) Control(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		traj, err := n.HandleMessage(mc.CurrentMessage())
		switch {
		case err == errNotHandled:
			return
		case err != nil:
			glog.Warningf("drop %T: %v", mc.CurrentMessage(), err)
		case traj != nil:
			errs.Add(n.Publisher.Publish(cc.Context(), traj))
		}
		mc.MessageTaken()
	}))
	return errs.Aggregate()
}

var (
	errNotHandled = errors.New("not handled")
	// ErrNoObservation indicates a command arrived before any observation.
	ErrNoObservation = errors.New("no observation received yet")
)

// HandleMessage updates the observation or builds target trajectories
// from a command. It returns nil trajectories for observations.
func (n *Node) HandleMessage(msg fx.Message) (*target.TargetTrajectories, error) {
	switch m := msg.(type) {
	case *msgs.Observation:
		n.UpdateObservation(m.ToObservation())
		return nil, nil
	case msgs.GoalSource:
		return n.Goal(m.Goal())
	case msgs.CmdVelSource:
		return n.CmdVel(m.CmdVel())
	}
	return nil, errNotHandled
}

// UpdateObservation replaces the latest observation.
func (n *Node) UpdateObservation(obs *target.Observation) {
	if n.observation == nil {
		glog.Infof("first observation at %v, state %d, input %d", obs.Time, len(obs.State), len(obs.Input))
	}
	n.observation = obs
}

// Goal builds target trajectories toward a goal pose.
func (n *Node) Goal(goal []float64) (*target.TargetTrajectories, error) {
	if err := n.checkCommand(goal, target.GoalYaw+1); err != nil {
		return nil, errors.Wrap(err, "goal")
	}
	glog.V(2).Infof("goal %v", goal)
	return target.GoalToTargetTrajectories(n.Config, goal, n.observation), nil
}

// CmdVel builds target trajectories from a velocity command.
func (n *Node) CmdVel(cmdVel []float64) (*target.TargetTrajectories, error) {
	if err := n.checkCommand(cmdVel, target.CmdVelYawRate+1); err != nil {
		return nil, errors.Wrap(err, "cmd_vel")
	}
	glog.V(3).Infof("cmd_vel %v", cmdVel)
	return n.Integrator.CmdVelToTargetTrajectories(n.Config, cmdVel, n.observation), nil
}

func (n *Node) checkCommand(cmd []float64, minLen int) error {
	if n.observation == nil {
		return ErrNoObservation
	}
	if len(cmd) < minLen {
		return errors.Errorf("expect at least %d values, got %d", minLen, len(cmd))
	}
	// Longer states are accepted, extra slots are zero in the targets.
	if dim := n.Config.StateDim(); len(n.observation.State) < dim {
		return errors.Errorf("observed state has %d values, expect at least %d", len(n.observation.State), dim)
	}
	return nil
}
