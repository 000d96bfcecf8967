package target

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoalToTargetTrajectories(t *testing.T) {
	testCases := []struct {
		name       string
		current    Pose6
		time       float64
		goal       []float64
		expectTime float64
	}{
		{
			name:       "forward from origin",
			goal:       []float64{1, 0, 0, 0, 0, 0},
			expectTime: 2,
		},
		{
			name:       "ignores goal z pitch roll",
			goal:       []float64{1, 0, 9, 0, 9, 9},
			expectTime: 2,
		},
		{
			name:       "rotation dominates",
			current:    Pose6{1, 1, 0.2, 0, 0, 0},
			time:       10,
			goal:       []float64{1, 1.5, 0, 2, 0, 0},
			expectTime: 14,
		},
		{
			name:       "already there",
			current:    Pose6{2, -1, 0.3, 0.5, 0.1, 0.1},
			time:       3,
			goal:       []float64{2, -1, 0, 0.5, 0, 0},
			expectTime: 3,
		},
	}

	conf := testConfig()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			obs := testObservation(tc.time, tc.current, 24, 24)
			traj := GoalToTargetTrajectories(conf, tc.goal, obs)
			require.Equal(t, tc.time, traj.TimeTrajectory[0])
			require.InDelta(t, tc.expectTime, traj.TimeTrajectory[1], 1e-12)
			require.Equal(t,
				[]float64{tc.goal[0], tc.goal[1], conf.ComHeight, tc.goal[3], 0, 0},
				traj.StateTrajectory[1][StateBasePose:StateJoints])
		})
	}
}

func TestGoalToTargetTrajectoriesScenario(t *testing.T) {
	conf := testConfig()
	conf.TargetDisplacementVelocity = 0.5
	obs := testObservation(0, Pose6{}, 24, 24)
	traj := GoalToTargetTrajectories(conf, []float64{1, 0, 0, 0}, obs)
	require.Equal(t, []float64{0, 2}, traj.TimeTrajectory)
	require.Equal(t,
		[]float64{1, 0, conf.ComHeight, 0, 0, 0},
		traj.StateTrajectory[1][StateBasePose:StateJoints])
}
