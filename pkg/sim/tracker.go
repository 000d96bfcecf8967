// Package sim simulates the MPC side of the node: a robot which tracks
// published target trajectories perfectly and reports observations.
package sim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/robotalks/mpctarget/pkg/target"
)

// StateAt interpolates the state trajectory linearly at time t. Before
// the first or after the last waypoint the state of that waypoint is
// returned.
func StateAt(traj *target.TargetTrajectories, t float64) []float64 {
	times, states := traj.TimeTrajectory, traj.StateTrajectory
	last := len(times) - 1
	switch {
	case t <= times[0]:
		return append([]float64(nil), states[0]...)
	case t >= times[last]:
		return append([]float64(nil), states[last]...)
	}
	n := 1
	for times[n] < t {
		n++
	}
	alpha := (t - times[n-1]) / (times[n] - times[n-1])
	diff := make([]float64, len(states[n]))
	floats.SubTo(diff, states[n], states[n-1])
	return floats.AddScaledTo(make([]float64, len(diff)), states[n-1], alpha, diff)
}

// Tracker follows the latest target trajectories.
type Tracker struct {
	Time  float64
	State []float64
	Input []float64
	Mode  uint32

	trajectory *target.TargetTrajectories
}

// NewTracker creates a Tracker resting at the origin with the base at
// height. The height is only set when the state holds a base pose.
func NewTracker(stateDim, inputDim int, height float64) *Tracker {
	t := &Tracker{
		State: make([]float64, stateDim),
		Input: make([]float64, inputDim),
	}
	if stateDim >= target.StateJoints {
		t.State[target.StateBasePose+target.PoseZ] = height
	}
	return t
}

// Follow replaces the trajectory being tracked. Trajectories with a
// different state dimension or without waypoints are ignored.
func (t *Tracker) Follow(traj *target.TargetTrajectories) bool {
	if traj.Size() == 0 || len(traj.StateTrajectory) != traj.Size() {
		return false
	}
	for _, state := range traj.StateTrajectory {
		if len(state) != len(t.State) {
			return false
		}
	}
	t.trajectory = traj
	return true
}

// Advance moves the clock by dt and updates the state.
func (t *Tracker) Advance(dt float64) {
	t.Time += dt
	if t.trajectory != nil {
		t.State = StateAt(t.trajectory, t.Time)
	}
}

// Observation reports the current state.
func (t *Tracker) Observation() *target.Observation {
	return &target.Observation{
		Time:  t.Time,
		State: append([]float64(nil), t.State...),
		Input: append([]float64(nil), t.Input...),
		Mode:  t.Mode,
	}
}
