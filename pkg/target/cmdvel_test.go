package target

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCmdVelScenario(t *testing.T) {
	conf := testConfig()
	in := NewIntegrator()
	obs := testObservation(0, Pose6{}, 24, 24)
	in.CmdVelToTargetTrajectories(conf, []float64{1, 0, 0, 0}, obs)
	x, y, yaw := in.Target()
	require.InDelta(t, 0.01, x, 1e-12)
	require.Zero(t, y)
	require.Zero(t, yaw)
}

func TestCmdVelToTargetTrajectories(t *testing.T) {
	conf := testConfig()
	conf.TimeToTarget = 0.8
	in := NewIntegrator()
	obs := testObservation(5, Pose6{0, 0, 0.4, math.Pi / 2, 0, 0}, 24, 24)

	traj := in.CmdVelToTargetTrajectories(conf, []float64{2, 0, 0, 1, 0, 0}, obs)
	require.Equal(t, 5.0, traj.TimeTrajectory[0])
	require.InDelta(t, 5.8, traj.TimeTrajectory[1], 1e-12)

	// body forward is world +y when yawed by 90 degrees.
	for _, state := range traj.StateTrajectory {
		require.InDelta(t, 0, state[0], 1e-12)
		require.InDelta(t, 2, state[1], 1e-12)
		require.InDelta(t, 0, state[2], 1e-12)
		require.Zero(t, state[3])
		require.Zero(t, state[4])
		require.Zero(t, state[5])
		require.Equal(t, []float64(conf.DefaultJointState), state[StateJoints:])
	}
	target := traj.StateTrajectory[1][StateBasePose:StateJoints]
	require.InDelta(t, 0, target[PoseX], 1e-12)
	require.InDelta(t, 0.02, target[PoseY], 1e-12)
	require.Equal(t, conf.ComHeight, target[PoseZ])
	require.InDelta(t, 0.01, target[PoseYaw], 1e-12)
	require.Zero(t, target[PosePitch])
	require.Zero(t, target[PoseRoll])

	current := traj.StateTrajectory[0][StateBasePose:StateJoints]
	require.Equal(t, []float64{0, 0, conf.ComHeight, math.Pi / 2, 0, 0}, current)
}

func TestCmdVelAccumulates(t *testing.T) {
	conf := testConfig()
	in := NewIntegrator()
	obs := testObservation(1, Pose6{}, 24, 24)
	cmd := []float64{0.5, 0.25, 0, 0.1}

	in.CmdVelToTargetTrajectories(conf, cmd, obs)
	x1, y1, yaw1 := in.Target()
	in.CmdVelToTargetTrajectories(conf, cmd, obs)
	x2, y2, yaw2 := in.Target()
	require.Greater(t, x2, x1)
	require.Greater(t, y2, y1)
	require.Greater(t, yaw2, yaw1)
	require.InDelta(t, 2*x1, x2, 1e-12)
	require.InDelta(t, 2*y1, y2, 1e-12)
	require.InDelta(t, 2*yaw1, yaw2, 1e-12)
}

func TestCmdVelSamplePeriod(t *testing.T) {
	in := &Integrator{SamplePeriod: 0.1}
	x, y, yaw := in.Integrate([3]float64{1, -2, 5}, 0.5)
	require.InDelta(t, 0.1, x, 1e-12)
	require.InDelta(t, -0.2, y, 1e-12)
	require.InDelta(t, 0.05, yaw, 1e-12)
}

func TestIntegratorConcurrent(t *testing.T) {
	in := NewIntegrator()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				in.Integrate([3]float64{1, 1, 0}, 1)
			}
		}()
	}
	wg.Wait()
	x, y, yaw := in.Target()
	require.InDelta(t, 8, x, 1e-9)
	require.InDelta(t, 8, y, 1e-9)
	require.InDelta(t, 8, yaw, 1e-9)
}

func TestWithBaseLinearVelocity(t *testing.T) {
	traj := &TargetTrajectories{
		TimeTrajectory:  []float64{0, 1},
		StateTrajectory: [][]float64{make([]float64, 24), make([]float64, 24)},
	}
	traj.StateTrajectory[0][3] = 7
	out := WithBaseLinearVelocity(traj, [3]float64{1, 2, 3})
	require.Same(t, traj, out)
	require.Equal(t, []float64{1, 2, 3, 7}, traj.StateTrajectory[0][:4])
	require.Equal(t, []float64{1, 2, 3, 0}, traj.StateTrajectory[1][:4])
}
