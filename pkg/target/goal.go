package target

import "gonum.org/v1/gonum/floats"

// Goal command slots, the others are ignored.
const (
	GoalX   = 0
	GoalY   = 1
	GoalYaw = 3
)

// GoalToTargetTrajectories steers from the observed pose to a goal
// (x, y, yaw) at the commanded height, leveled. The target reaching time is
// estimated from the pose displacement.
func GoalToTargetTrajectories(conf *Config, goal []float64, obs *Observation) *TargetTrajectories {
	currentPose := obs.BasePose()
	targetPose := Pose6{
		PoseX:   goal[GoalX],
		PoseY:   goal[GoalY],
		PoseZ:   conf.ComHeight,
		PoseYaw: goal[GoalYaw],
	}
	var delta Pose6
	floats.SubTo(delta[:], targetPose[:], currentPose[:])
	targetReachingTime := obs.Time + EstimateTimeToTarget(conf, delta)
	return PoseToTargetTrajectories(conf, targetPose, obs, targetReachingTime)
}
