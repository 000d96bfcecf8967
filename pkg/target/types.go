package target

// Pose6 is a base pose in world frame: position followed by
// ZYX Euler angles.
type Pose6 [6]float64

// Pose6 slots.
const (
	PoseX int = iota
	PoseY
	PoseZ
	PoseYaw
	PosePitch
	PoseRoll
)

// State vector layout shared with the MPC.
const (
	// StateBaseVelocity is the offset of the 6-dim base velocity.
	// The leading 3 components are linear velocity.
	StateBaseVelocity = 0
	// StateBasePose is the offset of the 6-dim base pose.
	StateBasePose = 6
	// StateJoints is the offset of the joint configuration.
	StateJoints = 12
)

// DefaultJointCount is the default joint configuration dimension.
const DefaultJointCount = 12

// Observation is a snapshot of the robot reported by the MPC.
// It is only read by the builders.
type Observation struct {
	Time  float64
	State []float64
	Input []float64
	Mode  uint32
}

// BasePose extracts the base pose from the state vector.
func (o *Observation) BasePose() (pose Pose6) {
	copy(pose[:], o.State[StateBasePose:StateBasePose+6])
	return
}

// TargetTrajectories is the reference handed to the MPC.
// The builders always produce exactly two waypoints.
type TargetTrajectories struct {
	TimeTrajectory  []float64
	StateTrajectory [][]float64
	InputTrajectory [][]float64
}

// Size returns the number of waypoints.
func (t *TargetTrajectories) Size() int {
	return len(t.TimeTrajectory)
}

