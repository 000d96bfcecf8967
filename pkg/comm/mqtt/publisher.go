package mqtt

import (
	"context"
	"time"

	"github.com/pkg/errors"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

// DefaultPublishTimeout bounds the wait for a publish to be handed to
// the broker.
const DefaultPublishTimeout = time.Second

// Publisher publishes target trajectories to the target topic of a robot.
type Publisher struct {
	Queue   *Queue
	Topics  Topics
	Timeout time.Duration
}

// NewPublisher creates a Publisher.
func NewPublisher(q *Queue, robot string) *Publisher {
	return &Publisher{Queue: q, Topics: Topics{Robot: robot}, Timeout: DefaultPublishTimeout}
}

// Publish publishes the trajectories as a Typed message.
func (p *Publisher) Publish(ctx context.Context, traj *target.TargetTrajectories) error {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	return SendMessage(ctx, p.Queue, p.Topics.Target(), msgs.TargetTrajectoriesFrom(traj))
}

// SendMessage publishes msg as a Typed message to the topic and waits
// until it's handed to the broker.
func SendMessage(ctx context.Context, q *Queue, topic string, msg fx.Message) error {
	data, err := msgs.Encode(msg)
	if err != nil {
		return err
	}
	return errors.Wrapf(WaitToken(ctx, q.Pub(topic, data)), "publish %q", topic)
}
