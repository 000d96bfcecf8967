package target

import "sync"

// Velocity command slots, the others are ignored.
const (
	CmdVelX       = 0
	CmdVelY       = 1
	CmdVelYawRate = 3
)

// DefaultSamplePeriod is the nominal integration step (s) applied on
// every velocity command.
const DefaultSamplePeriod float64 = 0.01

// Integrator accumulates a world frame target from velocity commands.
// The accumulated target is never reset by the builders: every command
// advances it by one SamplePeriod regardless of the time elapsed since the
// previous command.
type Integrator struct {
	SamplePeriod float64

	lock    sync.Mutex
	targetX float64
	targetY float64
	yaw     float64
}

// NewIntegrator creates an Integrator at the origin.
func NewIntegrator() *Integrator {
	return &Integrator{SamplePeriod: DefaultSamplePeriod}
}

// Target returns the accumulated (x, y, yaw).
func (in *Integrator) Target() (x, y, yaw float64) {
	in.lock.Lock()
	defer in.lock.Unlock()
	return in.targetX, in.targetY, in.yaw
}

// Integrate advances the target by one sample of world frame velocity
// and yaw rate and returns the updated target.
func (in *Integrator) Integrate(worldVel [3]float64, yawRate float64) (x, y, yaw float64) {
	dt := in.SamplePeriod
	if dt == 0 {
		dt = DefaultSamplePeriod
	}
	in.lock.Lock()
	defer in.lock.Unlock()
	in.targetX += worldVel[0] * dt
	in.targetY += worldVel[1] * dt
	in.yaw += yawRate * dt
	return in.targetX, in.targetY, in.yaw
}

// CmdVelToTargetTrajectories extrapolates a body frame velocity command
// (vx, vy, vz, yaw rate) by TimeToTarget. Both waypoints carry the command
// rotated into world frame as base linear velocity.
func (in *Integrator) CmdVelToTargetTrajectories(conf *Config, cmdVel []float64, obs *Observation) *TargetTrajectories {
	worldVel := RotateToWorld(obs.BasePose(), cmdVel)
	x, y, yaw := in.Integrate(worldVel, cmdVel[CmdVelYawRate])
	targetPose := Pose6{
		PoseX:   x,
		PoseY:   y,
		PoseZ:   conf.ComHeight,
		PoseYaw: yaw,
	}
	targetReachingTime := obs.Time + conf.TimeToTarget
	return WithBaseLinearVelocity(
		PoseToTargetTrajectories(conf, targetPose, obs, targetReachingTime),
		worldVel)
}

// WithBaseLinearVelocity overwrites the base linear velocity of every
// waypoint in place and returns traj.
func WithBaseLinearVelocity(traj *TargetTrajectories, vel [3]float64) *TargetTrajectories {
	for _, state := range traj.StateTrajectory {
		copy(state[StateBaseVelocity:StateBaseVelocity+3], vel[:])
	}
	return traj
}
