package target

// PoseToTargetTrajectories builds the two waypoints "now" and "target".
// targetReachingTime must not be earlier than obs.Time.
//
// Both waypoints have zero base velocity and the configured default joint
// state. The current pose is taken from obs with the height replaced by the
// commanded height and pitch/roll cleared. The inputs are zero and only
// carry the dimension expected by the MPC.
//
// The states have the dimension of obs.State, which must hold at least
// StateJoints plus the default joint state. Slots after the joints are
// zero filled.
func PoseToTargetTrajectories(conf *Config, targetPose Pose6, obs *Observation, targetReachingTime float64) *TargetTrajectories {
	currentPose := obs.BasePose()
	currentPose[PoseZ] = conf.ComHeight
	currentPose[PosePitch] = 0
	currentPose[PoseRoll] = 0

	return &TargetTrajectories{
		TimeTrajectory: []float64{obs.Time, targetReachingTime},
		StateTrajectory: [][]float64{
			referenceState(conf, len(obs.State), currentPose),
			referenceState(conf, len(obs.State), targetPose),
		},
		InputTrajectory: [][]float64{
			make([]float64, len(obs.Input)),
			make([]float64, len(obs.Input)),
		},
	}
}

func referenceState(conf *Config, dim int, pose Pose6) []float64 {
	state := make([]float64, dim)
	copy(state[StateBasePose:StateBasePose+6], pose[:])
	copy(state[StateJoints:], conf.DefaultJointState)
	return state
}
