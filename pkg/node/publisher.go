package node

import (
	"context"

	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target"
)

// Publisher delivers target trajectories to the MPC or observers.
type Publisher interface {
	Publish(context.Context, *target.TargetTrajectories) error
}

// PublishFunc is the func form of Publisher.
type PublishFunc func(context.Context, *target.TargetTrajectories) error

// Publish implements Publisher.
func (f PublishFunc) Publish(ctx context.Context, traj *target.TargetTrajectories) error {
	return f(ctx, traj)
}

// PublisherMux publishes to every publisher, a failing publisher doesn't
// prevent the others from receiving the trajectories.
type PublisherMux []Publisher

// Publish implements Publisher.
func (m PublisherMux) Publish(ctx context.Context, traj *target.TargetTrajectories) error {
	var errs fx.AggregatedError
	for _, p := range m {
		errs.Add(p.Publish(ctx, traj))
	}
	return errs.Aggregate()
}
