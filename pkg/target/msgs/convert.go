package msgs

import (
	"gonum.org/v1/gonum/num/quat"

	"github.com/robotalks/mpctarget/pkg/target"
)

// GoalSource is a command carrying a goal pose
// (x, y, z, yaw, pitch, roll).
type GoalSource interface {
	Goal() []float64
}

// CmdVelSource is a command carrying a body frame velocity
// (vx, vy, vz, yaw rate).
type CmdVelSource interface {
	CmdVel() []float64
}

// ObservationFrom converts an observation for the wire.
func ObservationFrom(obs *target.Observation) *Observation {
	return &Observation{
		Time:  obs.Time,
		State: append([]float64(nil), obs.State...),
		Input: append([]float64(nil), obs.Input...),
		Mode:  obs.Mode,
	}
}

// ToObservation converts to the observation used by the builders.
func (m *Observation) ToObservation() *target.Observation {
	return &target.Observation{
		Time:  m.Time,
		State: append([]float64(nil), m.State...),
		Input: append([]float64(nil), m.Input...),
		Mode:  m.Mode,
	}
}

// TargetTrajectoriesFrom converts target trajectories for the wire.
func TargetTrajectoriesFrom(traj *target.TargetTrajectories) *TargetTrajectories {
	m := &TargetTrajectories{
		TimeTrajectory:  append([]float64(nil), traj.TimeTrajectory...),
		StateTrajectory: make([]*Vector, len(traj.StateTrajectory)),
		InputTrajectory: make([]*Vector, len(traj.InputTrajectory)),
	}
	for n, state := range traj.StateTrajectory {
		m.StateTrajectory[n] = &Vector{Values: append([]float64(nil), state...)}
	}
	for n, input := range traj.InputTrajectory {
		m.InputTrajectory[n] = &Vector{Values: append([]float64(nil), input...)}
	}
	return m
}

// ToTargetTrajectories converts back to target trajectories. Empty
// vectors are decoded as zero length slices.
func (m *TargetTrajectories) ToTargetTrajectories() *target.TargetTrajectories {
	traj := &target.TargetTrajectories{
		TimeTrajectory:  append([]float64(nil), m.TimeTrajectory...),
		StateTrajectory: make([][]float64, len(m.StateTrajectory)),
		InputTrajectory: make([][]float64, len(m.InputTrajectory)),
	}
	for n, v := range m.StateTrajectory {
		traj.StateTrajectory[n] = append([]float64{}, v.GetValues()...)
	}
	for n, v := range m.InputTrajectory {
		traj.InputTrajectory[n] = append([]float64{}, v.GetValues()...)
	}
	return traj
}

// GetValues returns nil on a nil Vector.
func (m *Vector) GetValues() []float64 {
	if m == nil {
		return nil
	}
	return m.Values
}

// Goal implements GoalSource.
func (m *GoalCommand) Goal() []float64 {
	return m.Target
}

// Goal implements GoalSource. A missing or zero orientation is identity.
func (m *PoseGoal) Goal() []float64 {
	var pos Vector3
	if m.Position != nil {
		pos = *m.Position
	}
	q := quat.Number{Real: 1}
	if o := m.Orientation; o != nil && (o.W != 0 || o.X != 0 || o.Y != 0 || o.Z != 0) {
		q = quat.Number{Real: o.W, Imag: o.X, Jmag: o.Y, Kmag: o.Z}
	}
	yaw, pitch, roll := target.ZyxFromQuaternion(q)
	return []float64{pos.X, pos.Y, pos.Z, yaw, pitch, roll}
}

// PoseGoalFrom creates a PoseGoal from a pose.
func PoseGoalFrom(pose target.Pose6) *PoseGoal {
	q := target.QuaternionFromZyx(pose[target.PoseYaw], pose[target.PosePitch], pose[target.PoseRoll])
	return &PoseGoal{
		Position:    &Vector3{X: pose[target.PoseX], Y: pose[target.PoseY], Z: pose[target.PoseZ]},
		Orientation: &Quaternion{X: q.Imag, Y: q.Jmag, Z: q.Kmag, W: q.Real},
	}
}

// CmdVel implements CmdVelSource.
func (m *VelocityCommand) CmdVel() []float64 {
	return m.Velocity
}

// CmdVel implements CmdVelSource. Only the yaw rate is taken from the
// angular velocity.
func (m *Twist) CmdVel() []float64 {
	var lin, ang Vector3
	if m.Linear != nil {
		lin = *m.Linear
	}
	if m.Angular != nil {
		ang = *m.Angular
	}
	return []float64{lin.X, lin.Y, lin.Z, ang.Z}
}
