package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/mpctarget/pkg/env"
	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/node"
	"github.com/robotalks/mpctarget/pkg/target"
)

func init() {
	if err := env.Load(); err != nil {
		log.Fatalln(err)
	}
	env.SetupFlags()
	target.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := target.MustNewConfig()
	env := env.NewConfig().MustNewEnv()
	glog.Infof("robot %s, com height %v, time to target %v", env.Config.Robot, conf.ComHeight, conf.TimeToTarget)

	loop := fx.NewLoop().Add(env, node.New(conf, env.Publisher))
	if err := fx.NewRunner().HandleSignals().Go(loop).Wait(); err != nil {
		glog.Exit(err)
	}
}
