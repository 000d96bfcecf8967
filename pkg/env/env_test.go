package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(fn, []byte("ROBO_TEST_LOAD=loaded\n"), 0644))
	t.Setenv("ROBO_TEST_LOAD", "")
	os.Unsetenv("ROBO_TEST_LOAD")
	require.NoError(t, Load(fn))
	require.Equal(t, "loaded", os.Getenv("ROBO_TEST_LOAD"))

	require.Error(t, Load(filepath.Join(t.TempDir(), "missing.env")))
}

func TestNewEnv(t *testing.T) {
	conf := &Config{Robot: "r1", MQTTBrokerURL: "mqtt://localhost:1883/robo/"}
	env, err := conf.NewEnv()
	require.NoError(t, err)
	require.Equal(t, "robo/", env.Queue.TopicPrefix)
	require.Equal(t, []string{"r1/mpc_observation", "r1/goal", "r1/cmd_vel"}, env.Source.Topics)
	require.Equal(t, "r1/mpc_target/status", env.Source.StatusTopic)
	require.Len(t, env.Publisher, 1)
	require.Nil(t, env.Broadcaster)

	conf.WebsocketAddr = ":0"
	env, err = conf.NewEnv()
	require.NoError(t, err)
	require.NotNil(t, env.Broadcaster)
	require.Len(t, env.Publisher, 2)
}

func TestNewEnvErrors(t *testing.T) {
	_, err := (&Config{MQTTBrokerURL: "mqtt://localhost:1883"}).NewEnv()
	require.Error(t, err)
	_, err = (&Config{Robot: "r1", MQTTBrokerURL: "localhost"}).NewEnv()
	require.Error(t, err)
}

func TestNewConfigDefaultsRobot(t *testing.T) {
	require.NotEmpty(t, NewConfig().Robot)
}
