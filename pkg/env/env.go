// Package env sets up the process environment of the target trajectory
// node and tools: the .env file, the robot ID and the transports.
package env

import (
	"flag"
	"log"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/robotalks/mpctarget/pkg/comm/mqtt"
	"github.com/robotalks/mpctarget/pkg/comm/websocket"
	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/node"
)

// AppID salts the machine ID used as the default robot ID.
const AppID = "mpctarget"

// FallbackRobotID is used when the machine ID is unavailable.
const FallbackRobotID = "robot"

// Config provides common options to connect to the robot.
type Config struct {
	// Robot is the ID of the robot, the first level of all topics.
	Robot string
	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix/
	MQTTBrokerURL string
	// WebsocketAddr enables the websocket broadcaster if not empty.
	WebsocketAddr string
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/robo/",
}

// Load loads .env files (or .env in the working directory) into the
// process environment, existing variables are not overridden. It must be
// called before SetupFlags.
func Load(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && len(files) == 0 && os.IsNotExist(errors.Cause(err)) {
		return nil
	}
	return err
}

// MachineRobotID derives a robot ID from the machine ID.
func MachineRobotID() string {
	id, err := machineid.ProtectedID(AppID)
	if err != nil {
		glog.Warningf("machine id unavailable, use %q: %v", FallbackRobotID, err)
		return FallbackRobotID
	}
	return id[:12]
}

// SetupFlags sets command line flags, defaults come from ROBO_ID,
// ROBO_MQTT_URL and ROBO_WS_ADDR.
func SetupFlags() {
	if val := os.Getenv("ROBO_ID"); val != "" {
		defaultConfig.Robot = val
	}
	if val := os.Getenv("ROBO_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("ROBO_WS_ADDR"); val != "" {
		defaultConfig.WebsocketAddr = val
	}
	flag.StringVar(&defaultConfig.Robot, "robot", defaultConfig.Robot, "Robot ID, defaults to one derived from machine ID.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.WebsocketAddr, "ws", defaultConfig.WebsocketAddr, "Listen address of websocket broadcaster, e.g. :8080")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	if conf.Robot == "" {
		conf.Robot = MachineRobotID()
	}
	return &conf
}

// Env is the transports of the node.
type Env struct {
	Config      *Config
	Queue       *mqtt.Queue
	Source      *mqtt.Source
	Broadcaster *websocket.Broadcaster
	Publisher   node.PublisherMux
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if c.Robot == "" {
		return nil, errors.New("robot ID must be specified")
	}
	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(c.MQTTBrokerURL)
	if err != nil {
		return nil, errors.Wrap(err, "create MQTT queue")
	}
	topics := mqtt.Topics{Robot: c.Robot}
	opts.SetBinaryWill(topicPrefix+topics.Status(), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("mpctarget:" + c.Robot)
	}
	env := &Env{Config: c, Queue: mqtt.NewQueue(opts, topicPrefix)}
	env.Source = mqtt.NewSource(env.Queue, c.Robot)
	env.Publisher = append(env.Publisher, mqtt.NewPublisher(env.Queue, c.Robot))
	if c.WebsocketAddr != "" {
		env.Broadcaster = websocket.NewBroadcaster(c.WebsocketAddr)
		env.Publisher = append(env.Publisher, env.Broadcaster)
	}
	return env, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// AddToLoop adds the transports to loop.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.Add(e.Source)
	if e.Broadcaster != nil {
		loop.Add(e.Broadcaster)
	}
}
