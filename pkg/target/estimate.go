package target

import "math"

// EstimateTimeToTarget estimates the duration to cover a base pose
// displacement. Rotation and planar translation proceed independently at
// the configured velocities and the slower one decides.
// Both velocities must be positive.
func EstimateTimeToTarget(conf *Config, delta Pose6) float64 {
	rotationTime := math.Abs(delta[PoseYaw]) / conf.TargetRotationVelocity
	displacement := math.Hypot(delta[PoseX], delta[PoseY])
	displacementTime := displacement / conf.TargetDisplacementVelocity
	return math.Max(rotationTime, displacementTime)
}
