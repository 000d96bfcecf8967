// Package target provides shell commands to drive the target trajectory
// node.
package target

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/mpctarget/pkg/cli/sh"
	"github.com/robotalks/mpctarget/pkg/comm/mqtt"
	"github.com/robotalks/mpctarget/pkg/target"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

// WatchTimeout is the longest wait for a trajectory when watching a
// number of them.
const WatchTimeout = 10 * time.Second

var watching *mqtt.Subscription

var (
	// GoalCmd sends a goal command.
	GoalCmd = ishell.Cmd{
		Name:    "goal",
		Aliases: []string{"g"},
		Help:    "X(m) Y(m) YAW(rad)",
		Func: func(c *ishell.Context) {
			values, err := sh.ParseFloats(c.Args, "X", "Y", "YAW")
			if err != nil {
				c.Err(err)
				return
			}
			goal := make([]float64, 6)
			goal[target.GoalX], goal[target.GoalY], goal[target.GoalYaw] = values[0], values[1], values[2]
			sh.SendCommand(c, sh.ShellFrom(c).Topics.Goal(), &msgs.GoalCommand{Target: goal})
		},
	}

	// PoseCmd sends a goal as position and orientation.
	PoseCmd = ishell.Cmd{
		Name: "pose",
		Help: "X(m) Y(m) Z(m) YAW(rad) PITCH(rad) ROLL(rad)",
		Func: func(c *ishell.Context) {
			values, err := sh.ParseFloats(c.Args, "X", "Y", "Z", "YAW", "PITCH", "ROLL")
			if err != nil {
				c.Err(err)
				return
			}
			var pose target.Pose6
			copy(pose[:], values)
			sh.SendCommand(c, sh.ShellFrom(c).Topics.Goal(), msgs.PoseGoalFrom(pose))
		},
	}

	// CmdVelCmd sends a velocity command.
	CmdVelCmd = ishell.Cmd{
		Name:    "cmdvel",
		Aliases: []string{"v"},
		Help:    "VX(m/s) VY(m/s) VZ(m/s) YAWRATE(rad/s)",
		Func: func(c *ishell.Context) {
			values, err := sh.ParseFloats(c.Args, "VX", "VY", "VZ", "YAWRATE")
			if err != nil {
				c.Err(err)
				return
			}
			sh.SendCommand(c, sh.ShellFrom(c).Topics.CmdVel(), &msgs.VelocityCommand{Velocity: values})
		},
	}

	// TwistCmd sends a velocity command as a twist.
	TwistCmd = ishell.Cmd{
		Name: "twist",
		Help: "LX(m/s) LY(m/s) AZ(rad/s)",
		Func: func(c *ishell.Context) {
			values, err := sh.ParseFloats(c.Args, "LX", "LY", "AZ")
			if err != nil {
				c.Err(err)
				return
			}
			sh.SendCommand(c, sh.ShellFrom(c).Topics.CmdVel(), &msgs.Twist{
				Linear:  &msgs.Vector3{X: values[0], Y: values[1]},
				Angular: &msgs.Vector3{Z: values[2]},
			})
		},
	}

	// ObserveCmd sends an observation as if reported by the MPC.
	ObserveCmd = ishell.Cmd{
		Name:    "observe",
		Aliases: []string{"obs"},
		Help:    "TIME(s) [X(m) Y(m) YAW(rad)]",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			names := []string{"TIME"}
			if len(c.Args) > 1 {
				names = append(names, "X", "Y", "YAW")
			}
			values, err := sh.ParseFloats(c.Args, names...)
			if err != nil {
				c.Err(err)
				return
			}
			if s.StateDim < target.StateJoints {
				c.Err(fmt.Errorf("state dimension %d too small", s.StateDim))
				return
			}
			obs := &msgs.Observation{
				Time:  values[0],
				State: make([]float64, s.StateDim),
				Input: make([]float64, s.InputDim),
			}
			if len(values) > 1 {
				obs.State[target.StateBasePose+target.PoseX] = values[1]
				obs.State[target.StateBasePose+target.PoseY] = values[2]
				obs.State[target.StateBasePose+target.PoseYaw] = values[3]
			}
			sh.SendCommand(c, s.Topics.Observation(), obs)
		},
	}

	// WatchCmd prints published target trajectories.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "[COUNT]",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			if len(c.Args) == 0 {
				if watching != nil {
					watching.Close()
				}
				watching = s.Queue.Sub(s.Topics.Target(), func(topic string, payload []byte) {
					printTrajectories(c, s, topic, payload)
				})
				return
			}
			count, err := strconv.Atoi(c.Args[0])
			if err != nil || count <= 0 {
				c.Err(fmt.Errorf("invalid COUNT: %q", c.Args[0]))
				return
			}
			received := make(chan struct{}, count)
			sub := s.Queue.Sub(s.Topics.Target(), func(topic string, payload []byte) {
				printTrajectories(c, s, topic, payload)
				received <- struct{}{}
			})
			defer sub.Close()
			for ; count > 0; count-- {
				select {
				case <-received:
				case <-time.After(WatchTimeout):
					c.Err(fmt.Errorf("no trajectories in %v", WatchTimeout))
					return
				}
			}
		},
	}

	// UnwatchCmd stops printing target trajectories.
	UnwatchCmd = ishell.Cmd{
		Name: "unwatch",
		Func: func(c *ishell.Context) {
			if watching != nil {
				watching.Close()
				watching = nil
			}
		},
	}
)

func printTrajectories(c *ishell.Context, s *sh.Shell, topic string, payload []byte) {
	msg, err := msgs.Decode(payload)
	if err != nil {
		c.Err(fmt.Errorf("%s: %v", topic, err))
		return
	}
	s.Print(c, topic+": ", msg)
}

func init() {
	sh.AddCmds(
		&GoalCmd,
		&PoseCmd,
		&CmdVelCmd,
		&TwistCmd,
		&ObserveCmd,
		&WatchCmd,
		&UnwatchCmd,
	)
}
