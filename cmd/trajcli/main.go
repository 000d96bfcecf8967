package main

import (
	"log"

	"github.com/robotalks/mpctarget/pkg/cli/sh"
	"github.com/robotalks/mpctarget/pkg/env"

	_ "github.com/robotalks/mpctarget/pkg/cli/cmds/target"
)

//go-build: CGO_ENABLED=0

func init() {
	if err := env.Load(); err != nil {
		log.Fatalln(err)
	}
	env.SetupFlags()
}

func main() {
	sh.Main()
}
