package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/mpctarget/pkg/comm/mqtt"
	"github.com/robotalks/mpctarget/pkg/env"
	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/sim"
	"github.com/robotalks/mpctarget/pkg/target"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

var (
	stateDim = 24
	inputDim = 24
	interval = 100 * time.Millisecond
)

func init() {
	if err := env.Load(); err != nil {
		log.Fatalln(err)
	}
	env.SetupFlags()
	target.SetupFlags()
	flag.IntVar(&stateDim, "state-dim", stateDim, "State dimension.")
	flag.IntVar(&inputDim, "input-dim", inputDim, "Input dimension.")
	flag.DurationVar(&interval, "interval", interval, "Observation interval.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.NewConfig()
	q, err := mqtt.NewQueueFromURL(conf.MQTTBrokerURL)
	if err != nil {
		log.Fatalln(err)
	}
	topic := mqtt.Topics{Robot: conf.Robot}.Observation()
	ref := target.MustNewConfig()
	if stateDim < ref.StateDim() {
		log.Fatalf("state-dim must be at least %d, got %d", ref.StateDim(), stateDim)
	}
	tracker := sim.NewTracker(stateDim, inputDim, ref.ComHeight)
	ctl := sim.NewController(tracker, sim.SendObservationFunc(func(ctx context.Context, obs *target.Observation) error {
		ctx, cancel := context.WithTimeout(ctx, mqtt.DefaultPublishTimeout)
		defer cancel()
		return mqtt.SendMessage(ctx, q, topic, msgs.ObservationFrom(obs))
	}))

	loop := fx.NewLoop().Add(mqtt.NewTargetSource(q, conf.Robot), ctl)
	loop.Interval = interval
	if err := fx.NewRunner().HandleSignals().Go(loop).Wait(); err != nil {
		glog.Exit(err)
	}
}
