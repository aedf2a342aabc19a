package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Command describes one process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  map[string]string

	// Interactive attaches the caller's stdin so the child can prompt.
	Interactive bool
}

// Cmd returns a Command for name and args.
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// In returns a copy of c that runs in dir.
func (c Command) In(dir string) Command {
	c.Dir = dir
	return c
}

// WithEnv returns a copy of c with key=value added to its environment.
func (c Command) WithEnv(key, value string) Command {
	env := make(map[string]string, len(c.Env)+1)
	for k, v := range c.Env {
		env[k] = v
	}
	env[key] = value
	c.Env = env
	return c
}

// Attached returns a copy of c that shares the caller's stdin.
func (c Command) Attached() Command {
	c.Interactive = true
	return c
}

// Argv returns the name followed by the arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, a := range c.Argv() {
		if a == "" || strings.ContainsAny(a, " \t\"'$") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Runner executes commands. Verbs only ever talk to external tools through
// a Runner so tests can substitute a recorder.
type Runner interface {
	// Run streams the child's output to the terminal and blocks until it exits.
	Run(ctx context.Context, cmd Command) error
	// Output captures stdout. On failure the error carries stderr.
	Output(ctx context.Context, cmd Command) (string, error)
	// LookPath resolves an executable on PATH.
	LookPath(file string) (string, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewExecRunner returns a runner wired to the process's standard streams.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := r.command(ctx, cmd)
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	if cmd.Interactive {
		c.Stdin = r.Stdin
	}

	r.logger().Debug("running command", "cmd", cmd.String(), "dir", cmd.Dir)
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := r.command(ctx, cmd)
	var stderr bytes.Buffer
	c.Stderr = &stderr
	if cmd.Interactive {
		c.Stdin = r.Stdin
	}

	r.logger().Debug("capturing command output", "cmd", cmd.String(), "dir", cmd.Dir)
	out, err := c.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s failed: %s: %w", cmd.Name, strings.TrimSpace(stderr.String()), err)
		}
		return string(out), fmt.Errorf("%s failed: %w", cmd.Name, err)
	}
	return string(out), nil
}

func (r *ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (r *ExecRunner) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = mergeEnv(os.Environ(), cmd.Env)
	}
	return c
}

func (r *ExecRunner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// mergeEnv overlays overrides on base. An empty override removes the key.
func mergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		key := kv
		if idx := strings.Index(kv, "="); idx != -1 {
			key = kv[:idx]
		}
		if _, ok := overrides[key]; ok {
			continue
		}
		out = append(out, kv)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if overrides[k] == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%s=%s", k, overrides[k]))
	}
	return out
}

// Available reports whether file resolves on PATH.
func Available(r Runner, file string) bool {
	_, err := r.LookPath(file)
	return err == nil
}
