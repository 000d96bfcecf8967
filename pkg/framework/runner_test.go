package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRunnerWaitAggregatesErrors(t *testing.T) {
	err1, err2 := errors.New("err1"), errors.New("err2")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewRunnerWith(ctx).Go(
		RunFunc(func(context.Context) error { return err1 }),
		NamedRun("canceled", RunFunc(func(ctx context.Context) error { return ctx.Err() })),
		RunFunc(func(context.Context) error { return nil }),
		NamedRun("err2", RunFunc(func(context.Context) error { return err2 })),
	).Wait()
	require.Error(t, err)
	require.ErrorIs(t, err, err1)
	require.ErrorIs(t, err, err2)
	require.Len(t, err.(*AggregatedError).Errors, 2)
}

func TestRunnerWaitNoError(t *testing.T) {
	require.NoError(t, NewRunner().Go(RunFunc(func(context.Context) error { return nil })).Wait())
}

func TestRunWithContextCloser(t *testing.T) {
	t.Run("canceled", func(t *testing.T) {
		stop := make(chan struct{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := RunWithContextCloser(ctx, closerFunc(func() error {
			close(stop)
			return nil
		}), func() error {
			<-stop
			return errors.New("closed")
		})
		require.ErrorIs(t, err, context.Canceled)
	})
	t.Run("returned", func(t *testing.T) {
		closed := 0
		err := RunWithContextCloser(context.Background(), closerFunc(func() error {
			closed++
			return nil
		}), func() error { return nil })
		require.NoError(t, err)
		require.Equal(t, 1, closed)
	})
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())
	errs.Add(errors.New("a"))
	require.Equal(t, "a", errs.Aggregate().Error())
	errs.Add(nil, errors.New("b"))
	require.Equal(t, "2 errors: a; b", errs.Aggregate().Error())
}
