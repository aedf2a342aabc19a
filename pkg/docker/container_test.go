package docker

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zdunecki/rtw/pkg/shell/shelltest"
)

const inspectRunning = "docker container inspect -f {{.State.Running}} humble-instance"

func TestStartAndConnectStartsStoppedContainer(t *testing.T) {
	fake := shelltest.New().On(inspectRunning, "false\n", nil)
	var out bytes.Buffer
	c := &Client{Runner: fake, TTY: true, Out: &out}

	require.NoError(t, c.StartAndConnect(context.Background(), "humble-instance", "ros"))
	require.Equal(t, []string{
		"docker container inspect humble-instance",
		inspectRunning,
		"docker start humble-instance",
		"docker exec -it --user ros humble-instance bash -l",
	}, fake.Argvs())
	require.True(t, fake.Calls[3].Interactive)
	require.Contains(t, out.String(), "Starting container humble-instance")
}

func TestStartAndConnectRunningContainer(t *testing.T) {
	fake := shelltest.New().On(inspectRunning, "true\n", nil)
	c := &Client{Runner: fake}

	require.NoError(t, c.StartAndConnect(context.Background(), "humble-instance", ""))
	require.Equal(t, []string{
		"docker container inspect humble-instance",
		inspectRunning,
		"docker exec -i humble-instance bash -l",
	}, fake.Argvs())
}

func TestStartAndConnectMissingContainer(t *testing.T) {
	fake := shelltest.New().On("docker container inspect ghost", "", errors.New("No such container"))
	c := &Client{Runner: fake}

	err := c.StartAndConnect(context.Background(), "ghost", "ros")
	require.ErrorContains(t, err, "does not exist")
	require.Len(t, fake.Calls, 1)
}

func TestExecWithCommand(t *testing.T) {
	fake := shelltest.New()
	c := &Client{Runner: fake}

	require.NoError(t, c.Exec(context.Background(), "box", "", "ros2", "topic", "list"))
	require.Equal(t, []string{"docker exec -i box ros2 topic list"}, fake.Argvs())
}

func TestStartAndConnectSessionExitIsNotAnError(t *testing.T) {
	fake := shelltest.New().
		On(inspectRunning, "true\n", nil).
		On("docker exec -i humble-instance bash -l", "", errors.New("exit status 130"))
	var out bytes.Buffer
	c := &Client{Runner: fake, Out: &out}

	require.NoError(t, c.StartAndConnect(context.Background(), "humble-instance", ""))
	require.Contains(t, out.String(), "Session in container humble-instance ended with exit status 130")
}

func TestStartAndConnectCancelledSession(t *testing.T) {
	fake := shelltest.New().
		On(inspectRunning, "true\n", nil).
		On("docker exec -i humble-instance bash -l", "", context.Canceled)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Client{Runner: fake}

	require.ErrorIs(t, c.StartAndConnect(ctx, "humble-instance", ""), context.Canceled)
}
