package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testMsg struct {
	id int
}

func (m *testMsg) NewMessage() Message { return &testMsg{} }

func collect(taken func(*testMsg) bool, seen *[]int) Controller {
	return ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			msg := mc.CurrentMessage().(*testMsg)
			*seen = append(*seen, msg.id)
			if taken(msg) {
				mc.MessageTaken()
			}
		}))
		return nil
	})
}

func TestLoopDeliversMessagesInOrder(t *testing.T) {
	var first, second []int
	l := NewLoop()
	l.AddController(PrLvSense, collect(func(m *testMsg) bool { return m.id%2 == 0 }, &first))
	l.AddController(PrLvControl, collect(func(*testMsg) bool { return true }, &second))
	for n := 0; n < 5; n++ {
		l.PostMessage(&testMsg{id: n})
	}
	l.RunIteration(context.Background())
	require.Equal(t, []int{0, 1, 2, 3, 4}, first)
	require.Equal(t, []int{1, 3}, second)

	first, second = nil, nil
	l.RunIteration(context.Background())
	require.Empty(t, first)
	require.Empty(t, second)
}

func TestLoopDropsUntakenMessages(t *testing.T) {
	var seen []int
	l := NewLoop()
	l.AddController(PrLvControl, collect(func(*testMsg) bool { return false }, &seen))
	l.PostMessage(&testMsg{id: 1})
	l.RunIteration(context.Background())
	l.PostMessage(&testMsg{id: 2})
	l.RunIteration(context.Background())
	require.Equal(t, []int{1, 2}, seen)
}

func TestLoopPriorityLevels(t *testing.T) {
	var levels []int
	record := ControlFunc(func(cc ControlContext) error {
		levels = append(levels, cc.PriorityLevel())
		return nil
	})
	l := NewLoop()
	l.AddController(PrLvPublish, record)
	l.AddController(PrLvSense, record)
	l.AddController(PrLvIdle, ControlFunc(func(ControlContext) error {
		return errors.New("logged only")
	}))
	l.RunIteration(context.Background())
	require.Equal(t, []int{PrLvSense, PrLvPublish}, levels)
}

func TestLoopTriggerNext(t *testing.T) {
	l := NewLoop()
	l.Interval = time.Hour
	handled := make(chan int, 1)
	l.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			mc.MessageTaken()
			handled <- mc.CurrentMessage().(*testMsg).id
		}))
		return nil
	}))
	l.AddRunnable(RunFunc(func(ctx context.Context) error {
		ctl := LoopCtlFrom(ctx)
		ctl.PostMessage(&testMsg{id: 7})
		ctl.TriggerNext()
		<-ctx.Done()
		return ctx.Err()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	select {
	case id := <-handled:
		require.Equal(t, 7, id)
	case <-time.After(5 * time.Second):
		t.Fatal("message not handled")
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestLoopStopsOnRunnableFailure(t *testing.T) {
	failure := errors.New("connect failed")
	l := NewLoop()
	l.AddRunnable(RunFunc(func(context.Context) error { return failure }))
	require.ErrorIs(t, l.Run(context.Background()), failure)
}
