package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/mpctarget/pkg/comm/mqtt"
	"github.com/robotalks/mpctarget/pkg/env"
	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/teleop"
)

func init() {
	if err := env.Load(); err != nil {
		log.Fatalln(err)
	}
	env.SetupFlags()
	teleop.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.NewConfig()
	q, err := mqtt.NewQueueFromURL(conf.MQTTBrokerURL)
	if err != nil {
		log.Fatalln(err)
	}
	topic := mqtt.Topics{Robot: conf.Robot}.CmdVel()
	teleopConf := teleop.NewConfig()
	ctl := teleopConf.NewController(teleop.SendFunc(func(ctx context.Context, msg fx.Message) error {
		ctx, cancel := context.WithTimeout(ctx, mqtt.DefaultPublishTimeout)
		defer cancel()
		return mqtt.SendMessage(ctx, q, topic, msg)
	}))

	loop := fx.NewLoop().Add(ctl).AddRunnable(fx.NamedRun("mqtt", q))
	loop.Interval = teleopConf.Interval
	if err := fx.NewRunner().HandleSignals().Go(loop).Wait(); err != nil {
		glog.Exit(err)
	}
}
