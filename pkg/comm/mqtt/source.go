package mqtt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

// Status is published retained on the status topic while the node is
// connected. An empty retained payload replaces it when the node goes
// away.
type Status struct {
	Robot  string   `json:"robot"`
	Inputs []string `json:"inputs"`
	Target string   `json:"target"`
}

// AcceptFunc decides if a message decoded from topic is posted to the loop.
type AcceptFunc func(topic string, msg fx.Message) bool

// Source subscribes topics and posts decoded messages into the loop.
// It owns the connection of the Queue.
type Source struct {
	Queue  *Queue
	Topics []string
	Accept AcceptFunc
	// Status is published retained on StatusTopic when connected.
	Status      *Status
	StatusTopic string
	// StatusTimeout bounds clearing the status on exit, DefaultPublishTimeout
	// if zero.
	StatusTimeout time.Duration
}

// NewSource creates the Source of the node which accepts observations,
// goals and velocity commands of the robot on their topics.
func NewSource(q *Queue, robot string) *Source {
	topics := Topics{Robot: robot}
	s := &Source{
		Queue:  q,
		Topics: topics.Inputs(),
		Accept: func(topic string, msg fx.Message) bool {
			switch msg.(type) {
			case *msgs.Observation:
				return topic == topics.Observation()
			case msgs.GoalSource:
				return topic == topics.Goal()
			case msgs.CmdVelSource:
				return topic == topics.CmdVel()
			}
			return false
		},
		Status:      &Status{Robot: robot, Inputs: topics.Inputs(), Target: topics.Target()},
		StatusTopic: topics.Status(),
	}
	q.OnConnect = func(*Queue) { s.publishStatus() }
	return s
}

// NewTargetSource creates a Source accepting target trajectories of
// the robot.
func NewTargetSource(q *Queue, robot string) *Source {
	topic := Topics{Robot: robot}.Target()
	return &Source{
		Queue:  q,
		Topics: []string{topic},
		Accept: func(t string, msg fx.Message) bool {
			_, ok := msg.(*msgs.TargetTrajectories)
			return ok && t == topic
		},
	}
}

// AddToLoop implements LoopAdder.
func (s *Source) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("mqtt-source", s))
}

// Run implements Runnable.
func (s *Source) Run(ctx context.Context) error {
	ctl := fx.LoopCtlFrom(ctx)
	for _, topic := range s.Topics {
		sub := s.Queue.Sub(topic, func(topic string, payload []byte) {
			s.HandleMessage(ctl, topic, payload)
		})
		defer sub.Close()
	}
	if err := s.Queue.Connect(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	if err := s.ClearStatus(); err != nil {
		glog.Warningf("clear status: %v", err)
	}
	s.Queue.Close()
	return ctx.Err()
}

// HandleMessage decodes a payload received on topic and posts it to the
// loop. Malformed and unexpected messages are dropped.
func (s *Source) HandleMessage(ctl fx.LoopControl, topic string, payload []byte) {
	msg, err := msgs.Decode(payload)
	if err != nil {
		glog.Warningf("drop message on %q: %v", topic, err)
		return
	}
	if s.Accept != nil && !s.Accept(topic, msg) {
		glog.Warningf("drop unexpected %T on %q", msg, topic)
		return
	}
	ctl.PostMessage(msg)
	ctl.TriggerNext()
}

// ClearStatus replaces the retained status with an empty payload. It
// gives up after StatusTimeout as the publish never completes while the
// client is reconnecting.
func (s *Source) ClearStatus() error {
	if s.StatusTopic == "" {
		return nil
	}
	timeout := s.StatusTimeout
	if timeout == 0 {
		timeout = DefaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return WaitToken(ctx, s.Queue.PubWith(s.StatusTopic, nil, 1, true))
}

func (s *Source) publishStatus() {
	if s.Status == nil || s.StatusTopic == "" {
		return
	}
	status, err := json.Marshal(s.Status)
	if err != nil {
		glog.Errorf("encode status: %v", err)
		return
	}
	s.Queue.PubWith(s.StatusTopic, status, 1, true)
}
