package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/pkg/errors"

	"github.com/robotalks/mpctarget/pkg/comm/mqtt"
	"github.com/robotalks/mpctarget/pkg/env"
	fx "github.com/robotalks/mpctarget/pkg/framework"
	"github.com/robotalks/mpctarget/pkg/target/msgs"
)

// Shell provides ishell backed interactive shell talking to the node of a
// robot through MQTT.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	// StateDim and InputDim are the dimensions of observations sent from
	// the shell.
	StateDim int
	InputDim int

	Shell  *ishell.Shell
	Config *env.Config
	Queue  *mqtt.Queue
	Topics mqtt.Topics
}

const (
	shellKey = "$shell"

	// DefaultDim is the default state and input dimension.
	DefaultDim = 24

	// SendTimeout bounds the wait for a message to be published.
	SendTimeout = time.Second
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
	stateDim   = DefaultDim
	inputDim   = DefaultDim

	// commands
	commands = []*ishell.Cmd{
		&RobotCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.IntVar(&stateDim, "state-dim", stateDim, "State dimension of observations sent by the shell.")
	flag.IntVar(&inputDim, "input-dim", inputDim, "Input dimension of observations sent by the shell.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		StateDim:    stateDim,
		InputDim:    inputDim,

		Shell:  ishell.New(),
		Config: conf,
		Topics: mqtt.Topics{Robot: conf.Robot},
	}
	s.Shell.Set(shellKey, s)
	s.updatePrompt()
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

func (s *Shell) updatePrompt() {
	s.Shell.SetPrompt(fmt.Sprintf("[%s] > ", s.Topics.Robot))
}

// Connect connects to the MQTT broker.
func (s *Shell) Connect(ctx context.Context) error {
	q, err := mqtt.NewQueueFromURL(s.Config.MQTTBrokerURL)
	if err != nil {
		return err
	}
	if err := q.Connect(ctx); err != nil {
		return errors.Wrapf(err, "connect %s", s.Config.MQTTBrokerURL)
	}
	s.Queue = q
	return nil
}

// Close disconnects from the broker.
func (s *Shell) Close() error {
	if s.Queue == nil {
		return nil
	}
	return s.Queue.Close()
}

// Send publishes msg to the topic.
func (s *Shell) Send(topic string, msg fx.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
	defer cancel()
	return mqtt.SendMessage(ctx, s.Queue, topic, msg)
}

// SendCommand publishes msg and reports the result in the shell.
func SendCommand(c *ishell.Context, topic string, msg fx.Message) error {
	s := ShellFrom(c)
	if err := s.Send(topic, msg); err != nil {
		c.Err(err)
		return err
	}
	if !s.Interactive {
		return nil
	}
	c.Printf("%s -> %s\n", FormatMessage(msg), topic)
	return nil
}

// Print prints a message in text or JSON.
func (s *Shell) Print(c *ishell.Context, prefix string, msg fx.Message) {
	if s.OutputJSON {
		out, err := json.Marshal(msg)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Printf("%s%s\n", prefix, FormatMessage(msg))
}

// FormatMessage formats a message for display.
func FormatMessage(msg fx.Message) string {
	text := ""
	if s, ok := msg.(msgs.SerializableMessage); ok {
		text = s.Serializable().String()
	}
	return fmt.Sprintf("[%s] %s", reflect.Indirect(reflect.ValueOf(msg)).Type().Name(), text)
}

// ParseFloats parses one float for each name from args.
func ParseFloats(args []string, names ...string) ([]float64, error) {
	if len(args) < len(names) {
		return nil, errors.Errorf("%s required", names[len(args)])
	}
	values := make([]float64, len(names))
	for n, name := range names {
		val, err := strconv.ParseFloat(args[n], 64)
		if err != nil {
			return nil, errors.Errorf("invalid %s: %v", name, err)
		}
		values[n] = val
	}
	return values, nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), mqtt.DefaultConnectTimeout)
	err := s.Connect(ctx)
	cancel()
	if err != nil {
		log.Fatalln(err)
	}
	defer s.Close()

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// RobotCmd shows or switches the robot.
	RobotCmd = ishell.Cmd{
		Name: "robot",
		Help: "[ID]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				s.Topics.Robot = c.Args[0]
				s.updatePrompt()
				return
			}
			c.Println(s.Topics.Robot)
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).Run(flag.Args()...)
}
