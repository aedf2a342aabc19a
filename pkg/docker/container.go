package docker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zdunecki/rtw/pkg/shell"
)

// Client drives workspace containers through the docker CLI.
type Client struct {
	Runner shell.Runner
	// TTY requests a pseudo-terminal for exec sessions. Set it only when
	// stdin is a terminal.
	TTY bool
	// Out receives progress messages.
	Out    io.Writer
	Logger *slog.Logger
}

// Exists reports whether a container with this name has been created.
func (c *Client) Exists(ctx context.Context, name string) bool {
	_, err := c.Runner.Output(ctx, shell.Cmd("docker", "container", "inspect", name))
	return err == nil
}

// IsRunning reports whether the container is up.
func (c *Client) IsRunning(ctx context.Context, name string) (bool, error) {
	out, err := c.Runner.Output(ctx, shell.Cmd("docker", "container", "inspect", "-f", "{{.State.Running}}", name))
	if err != nil {
		return false, fmt.Errorf("inspect container %s: %w", name, err)
	}
	return strings.TrimSpace(out) == "true", nil
}

// Start starts a stopped container.
func (c *Client) Start(ctx context.Context, name string) error {
	if _, err := c.Runner.Output(ctx, shell.Cmd("docker", "start", name)); err != nil {
		return fmt.Errorf("start container %s: %w", name, err)
	}
	return nil
}

// Exec runs command inside the container with the caller's terminal attached.
// An empty command opens a login shell.
func (c *Client) Exec(ctx context.Context, name, user string, command ...string) error {
	args := []string{"exec", "-i"}
	if c.TTY {
		args = []string{"exec", "-it"}
	}
	if user != "" {
		args = append(args, "--user", user)
	}
	args = append(args, name)
	if len(command) == 0 {
		command = []string{"bash", "-l"}
	}
	args = append(args, command...)

	if err := c.Runner.Run(ctx, shell.Cmd("docker", args...).Attached()); err != nil {
		return fmt.Errorf("exec in container %s: %w", name, err)
	}
	return nil
}

// StartAndConnect makes sure the container is running and opens a shell in
// it as user.
func (c *Client) StartAndConnect(ctx context.Context, name, user string) error {
	if !c.Exists(ctx, name) {
		return fmt.Errorf("container %s does not exist, create it with the workspace setup scripts first", name)
	}

	running, err := c.IsRunning(ctx, name)
	if err != nil {
		return err
	}
	if !running {
		c.printf("Starting container %s\n", name)
		if err := c.Start(ctx, name); err != nil {
			return err
		}
	}

	c.printf("Connecting to container %s as %s\n", name, userLabel(user))
	// The shell reports the status of the last command typed in it, which is
	// not a failure of connecting.
	if err := c.Exec(ctx, name, user); err != nil {
		if ctx.Err() != nil {
			return err
		}
		if c.Logger != nil {
			c.Logger.Debug("container session ended", "container", name, "error", err)
		}
		c.printf("Session in container %s ended with %v\n", name, errors.Unwrap(err))
	}
	return nil
}

func (c *Client) printf(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format, args...)
	}
}

func userLabel(user string) string {
	if user == "" {
		return "the image default user"
	}
	return user
}
