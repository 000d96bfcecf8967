package main

import (
	"encoding/json"
	"flag"
	"log"
	"reflect"
	"strings"

	"github.com/robotalks/mpctarget/pkg/comm/mqtt"
	"github.com/robotalks/mpctarget/pkg/env"
	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

var (
	topicFilter = "#"
	outputJSON  bool
)

func init() {
	if err := env.Load(); err != nil {
		log.Fatalln(err)
	}
	env.SetupFlags()
	flag.StringVar(&topicFilter, "topics", topicFilter, "Topic filter relative to the broker prefix.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print messages in JSON.")
}

func printMessage(topic string, payload []byte) {
	if strings.HasSuffix(topic, "/"+mqtt.TopicStatus) {
		log.Printf("%s: %s", topic, string(payload))
		return
	}
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		log.Printf("%s: bad message: %v", topic, err)
		return
	}
	msg, err := typed.Decode()
	if err != nil {
		log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
		return
	}
	name := reflect.Indirect(reflect.ValueOf(msg)).Type().Name()
	if outputJSON {
		out, err := json.Marshal(msg)
		if err != nil {
			log.Printf("%s: [%s] %v", topic, name, err)
			return
		}
		log.Printf("%s: [%s] %s", topic, name, out)
		return
	}
	log.Printf("%s: [%s] %s", topic, name, msg.(msgs.SerializableMessage).Serializable().String())
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(env.Default().MQTTBrokerURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.Sub(topicFilter, printMessage)
	if err := fx.NewRunner().HandleSignals().Go(q).Wait(); err != nil {
		log.Fatalln(err)
	}
}
