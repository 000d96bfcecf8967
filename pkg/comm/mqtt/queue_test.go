package mqtt

import (
	"context"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 0 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

func newTestQueue(prefix string) *Queue {
	return NewQueue(paho.NewClientOptions(), prefix)
}

func TestQueueDispatch(t *testing.T) {
	q := newTestQueue("pfx/")
	var received []string
	record := func(name string) Handler {
		return func(topic string, payload []byte) {
			received = append(received, name+":"+topic+":"+string(payload))
		}
	}
	exact := q.Sub("r1/goal", record("exact"))
	q.Sub("+/goal", record("wildcard"))
	q.Sub("r1/cmd_vel", record("cmdvel"))

	q.dispatch(nil, &fakeMessage{topic: "pfx/r1/goal", payload: []byte("g")})
	require.ElementsMatch(t, []string{"exact:r1/goal:g", "wildcard:r1/goal:g"}, received)

	received = nil
	q.dispatch(nil, &fakeMessage{topic: "other/r1/goal", payload: []byte("x")})
	require.Empty(t, received)

	exact.Close()
	q.dispatch(nil, &fakeMessage{topic: "pfx/r1/goal", payload: []byte("g")})
	require.Equal(t, []string{"wildcard:r1/goal:g"}, received)
}

func TestSubscriptionCloseKeepsOtherHandlers(t *testing.T) {
	q := newTestQueue("")
	var count int
	first := q.Sub("a", func(string, []byte) { count++ })
	q.Sub("a", func(string, []byte) { count += 10 })
	require.NoError(t, first.Close())
	q.dispatch(nil, &fakeMessage{topic: "a"})
	require.Equal(t, 10, count)
}

type fakeLoopCtl struct {
	posted    []fx.Message
	triggered int
}

func (c *fakeLoopCtl) PostMessage(msg fx.Message) { c.posted = append(c.posted, msg) }
func (c *fakeLoopCtl) TriggerNext()               { c.triggered++ }

func TestSourceHandleMessage(t *testing.T) {
	s := NewSource(newTestQueue(""), "r1")
	encode := func(msg fx.Message) []byte {
		data, err := msgs.Encode(msg)
		require.NoError(t, err)
		return data
	}
	testCases := []struct {
		name    string
		topic   string
		payload []byte
		posted  bool
	}{
		{"observation", "r1/mpc_observation", encode(&msgs.Observation{Time: 1}), true},
		{"goal", "r1/goal", encode(&msgs.GoalCommand{Target: []float64{1, 0, 0, 0}}), true},
		{"pose goal", "r1/goal", encode(&msgs.PoseGoal{}), true},
		{"cmd_vel", "r1/cmd_vel", encode(&msgs.VelocityCommand{Velocity: []float64{1, 0, 0, 0}}), true},
		{"twist", "r1/cmd_vel", encode(&msgs.Twist{}), true},
		{"goal on cmd_vel", "r1/cmd_vel", encode(&msgs.GoalCommand{}), false},
		{"trajectories", "r1/goal", encode(&msgs.TargetTrajectories{}), false},
		{"malformed", "r1/goal", []byte{0xff}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctl := &fakeLoopCtl{}
			s.HandleMessage(ctl, tc.topic, tc.payload)
			if tc.posted {
				require.Len(t, ctl.posted, 1)
				require.Equal(t, 1, ctl.triggered)
			} else {
				require.Empty(t, ctl.posted)
				require.Zero(t, ctl.triggered)
			}
		})
	}
}

func TestTargetSourceHandleMessage(t *testing.T) {
	s := NewTargetSource(newTestQueue(""), "r1")
	require.Equal(t, []string{"r1/mpc_target"}, s.Topics)
	data, err := msgs.Encode(&msgs.TargetTrajectories{TimeTrajectory: []float64{0, 1}})
	require.NoError(t, err)

	ctl := &fakeLoopCtl{}
	s.HandleMessage(ctl, "r1/mpc_target", data)
	s.HandleMessage(ctl, "r2/mpc_target", data)
	require.Len(t, ctl.posted, 1)

	data, err = msgs.Encode(&msgs.Observation{})
	require.NoError(t, err)
	s.HandleMessage(ctl, "r1/mpc_target", data)
	require.Len(t, ctl.posted, 1)
}

type pendingToken struct {
	done chan struct{}
}

func (t *pendingToken) Wait() bool                       { <-t.done; return true }
func (t *pendingToken) WaitTimeout(d time.Duration) bool { return false }
func (t *pendingToken) Done() <-chan struct{}            { return t.done }
func (t *pendingToken) Error() error                     { return nil }

// reconnectingClient stores publishes without ever completing them.
type reconnectingClient struct {
	paho.Client
	published []string
	retained  []bool
}

func (c *reconnectingClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.published = append(c.published, topic)
	c.retained = append(c.retained, retained)
	return &pendingToken{done: make(chan struct{})}
}

func TestSourceClearStatusTimeout(t *testing.T) {
	client := &reconnectingClient{}
	q := newTestQueue("robo/")
	q.Client = client
	s := NewSource(q, "r1")
	s.StatusTimeout = 10 * time.Millisecond

	start := time.Now()
	err := s.ClearStatus()
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
	require.Equal(t, []string{"robo/r1/mpc_target/status"}, client.published)
	require.Equal(t, []bool{true}, client.retained)
}

func TestSourceClearStatusWithoutTopic(t *testing.T) {
	client := &reconnectingClient{}
	q := newTestQueue("")
	q.Client = client
	s := NewTargetSource(q, "r1")
	require.NoError(t, s.ClearStatus())
	require.Empty(t, client.published)
}
