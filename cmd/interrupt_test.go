//go:build unix

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestInterruptHelperProcess is the rtw process driven by
// TestInterruptEndsBlockedPrompt. It does nothing in a normal test run.
func TestInterruptHelperProcess(t *testing.T) {
	if os.Getenv("RTW_INTERRUPT_HELPER") != "1" {
		t.Skip("helper process")
	}
	rootCmd.SetArgs([]string{"pkg", "create"})
	if err := Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestInterruptEndsBlockedPrompt(t *testing.T) {
	bin := t.TempDir()
	writeFile(t, filepath.Join(bin, "ros2"), "#!/bin/sh\nexit 0\n")
	require.NoError(t, os.Chmod(filepath.Join(bin, "ros2"), 0o755))

	proc := exec.Command(os.Args[0], "-test.run=^TestInterruptHelperProcess$")
	proc.Env = append(os.Environ(),
		"RTW_INTERRUPT_HELPER=1",
		"PATH="+bin,
		"XDG_CONFIG_HOME="+t.TempDir(),
		"RosTeamWS_RC_FILE="+filepath.Join(t.TempDir(), "rc"),
		"ROS_WS=",
	)
	stdin, err := proc.StdinPipe()
	require.NoError(t, err)
	defer stdin.Close()
	out := &syncBuffer{}
	proc.Stdout = out
	proc.Stderr = io.Discard
	require.NoError(t, proc.Start())

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Enter the package name: ")
	}, 10*time.Second, 20*time.Millisecond, "prompt never appeared: %q", out.String())

	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()
	require.NoError(t, proc.Process.Signal(os.Interrupt))

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		require.True(t, errors.As(err, &exitErr), "unexpected wait result: %v", err)
		status, ok := exitErr.Sys().(syscall.WaitStatus)
		require.True(t, ok)
		require.True(t, status.Signaled(), "exit status %v", status)
		require.Equal(t, syscall.SIGINT, status.Signal())
	case <-time.After(10 * time.Second):
		_ = proc.Process.Kill()
		t.Fatal("rtw is still running after SIGINT")
	}
}

func TestInterruptContextStopCancels(t *testing.T) {
	ctx, stop := interruptContext(context.Background(), syscall.SIGUSR1)
	require.NoError(t, ctx.Err())
	stop()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}
