package mqtt

// Topic names under the robot, relative to the broker URL prefix.
const (
	TopicObservation = "mpc_observation"
	TopicGoal        = "goal"
	TopicCmdVel      = "cmd_vel"
	TopicTarget      = "mpc_target"
	TopicStatus      = "mpc_target/status"
)

// Topics builds the topics of a robot.
type Topics struct {
	Robot string
}

func (t Topics) topic(name string) string {
	if t.Robot == "" {
		return name
	}
	return t.Robot + "/" + name
}

// Observation is where the MPC reports observations.
func (t Topics) Observation() string { return t.topic(TopicObservation) }

// Goal receives goal commands.
func (t Topics) Goal() string { return t.topic(TopicGoal) }

// CmdVel receives velocity commands.
func (t Topics) CmdVel() string { return t.topic(TopicCmdVel) }

// Target is where target trajectories are published.
func (t Topics) Target() string { return t.topic(TopicTarget) }

// Status carries the retained node status.
func (t Topics) Status() string { return t.topic(TopicStatus) }

// Inputs are the topics the node subscribes.
func (t Topics) Inputs() []string {
	return []string{t.Observation(), t.Goal(), t.CmdVel()}
}
