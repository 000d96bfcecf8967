package target

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config defines the reference constants used to build target
// trajectories. It's loaded once at startup and must not be modified
// after it's handed to the builders.
type Config struct {
	// ComHeight is the commanded base height.
	ComHeight float64 `json:"comHeight"`
	// DefaultJointState is written into the joint slots of every waypoint.
	DefaultJointState JointState `json:"defaultJointState"`
	// TargetRotationVelocity (rad/s) paces yaw changes toward a goal.
	TargetRotationVelocity float64 `json:"targetRotationVelocity"`
	// TargetDisplacementVelocity (m/s) paces planar motion toward a goal.
	TargetDisplacementVelocity float64 `json:"targetDisplacementVelocity"`
	// TimeToTarget is the look-ahead (s) used for velocity commands,
	// usually the MPC time horizon: copy mpc.timeHorizon of the MPC task
	// file here.
	TimeToTarget float64 `json:"timeToTarget"`
}

// Defaults
const (
	DefaultComHeight                  float64 = 0.3
	DefaultTargetRotationVelocity     float64 = 1.57
	DefaultTargetDisplacementVelocity float64 = 0.5
	DefaultTimeToTarget               float64 = 1.0
)

var defaultConfig = Config{
	ComHeight:                  DefaultComHeight,
	DefaultJointState:          make(JointState, DefaultJointCount),
	TargetRotationVelocity:     DefaultTargetRotationVelocity,
	TargetDisplacementVelocity: DefaultTargetDisplacementVelocity,
	TimeToTarget:               DefaultTimeToTarget,
}

var referenceFile string

// SetupFlags sets command line flags. ROBO_REFERENCE_FILE provides the
// default of -reference.
func SetupFlags() {
	if val := os.Getenv("ROBO_REFERENCE_FILE"); val != "" {
		referenceFile = val
	}
	flag.StringVar(&referenceFile, "reference", referenceFile, "Reference file (JSON), flags override values in the file.")
	flag.Float64Var(&defaultConfig.ComHeight, "com-height", defaultConfig.ComHeight, "Commanded base height (m).")
	flag.Float64Var(&defaultConfig.TargetRotationVelocity, "target-rotation-velocity", defaultConfig.TargetRotationVelocity, "Rotation velocity (rad/s) toward a goal.")
	flag.Float64Var(&defaultConfig.TargetDisplacementVelocity, "target-displacement-velocity", defaultConfig.TargetDisplacementVelocity, "Displacement velocity (m/s) toward a goal.")
	flag.Float64Var(&defaultConfig.TimeToTarget, "time-to-target", defaultConfig.TimeToTarget, "Look-ahead (s) for velocity commands.")
	flag.Var(&defaultConfig.DefaultJointState, "default-joint-state", "Comma separated default joint positions (rad).")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults. If a reference file is
// specified, values from the file are loaded first and values explicitly
// set on the command line take precedence.
func NewConfig() (*Config, error) {
	conf := defaultConfig
	conf.DefaultJointState = append(JointState(nil), defaultConfig.DefaultJointState...)
	if referenceFile == "" {
		return &conf, nil
	}
	fileConf, err := LoadConfigFile(referenceFile)
	if err != nil {
		return nil, err
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "com-height":
			fileConf.ComHeight = conf.ComHeight
		case "target-rotation-velocity":
			fileConf.TargetRotationVelocity = conf.TargetRotationVelocity
		case "target-displacement-velocity":
			fileConf.TargetDisplacementVelocity = conf.TargetDisplacementVelocity
		case "time-to-target":
			fileConf.TimeToTarget = conf.TimeToTarget
		case "default-joint-state":
			fileConf.DefaultJointState = conf.DefaultJointState
		}
	})
	return fileConf, nil
}

// MustNewConfig creates a validated config and fails on error.
func MustNewConfig() *Config {
	conf, err := NewConfig()
	if err == nil {
		err = conf.Validate()
	}
	if err != nil {
		log.Fatalln(err)
	}
	return conf
}

// LoadConfigFile reads a JSON reference file. Fields absent from the
// file keep the defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read reference file")
	}
	conf := defaultConfig
	conf.DefaultJointState = append(JointState(nil), defaultConfig.DefaultJointState...)
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, errors.Wrapf(err, "parse reference file %q", path)
	}
	return &conf, nil
}

// Validate checks the preconditions the builders rely on.
func (c *Config) Validate() error {
	if c.TargetRotationVelocity <= 0 {
		return errors.Errorf("targetRotationVelocity must be positive, got %v", c.TargetRotationVelocity)
	}
	if c.TargetDisplacementVelocity <= 0 {
		return errors.Errorf("targetDisplacementVelocity must be positive, got %v", c.TargetDisplacementVelocity)
	}
	if c.TimeToTarget <= 0 {
		return errors.Errorf("timeToTarget must be positive, got %v", c.TimeToTarget)
	}
	if n := len(c.DefaultJointState); n != DefaultJointCount {
		return errors.Errorf("defaultJointState must have %d values, got %d", DefaultJointCount, n)
	}
	return nil
}

// StateDim is the minimal state dimension compatible with the config.
func (c *Config) StateDim() int {
	return StateJoints + len(c.DefaultJointState)
}

// JointState is a joint configuration settable from the command line.
type JointState []float64

// String implements flag.Value.
func (s *JointState) String() string {
	if s == nil {
		return ""
	}
	strs := make([]string, len(*s))
	for n, v := range *s {
		strs[n] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(strs, ",")
}

// Set implements flag.Value.
func (s *JointState) Set(val string) error {
	items := strings.Split(val, ",")
	values := make(JointState, 0, len(items))
	for _, item := range items {
		v, err := strconv.ParseFloat(strings.TrimSpace(item), 64)
		if err != nil {
			return errors.Wrapf(err, "invalid joint position %q", item)
		}
		values = append(values, v)
	}
	*s = values
	return nil
}
