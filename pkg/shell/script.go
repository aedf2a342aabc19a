package shell

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// ScriptExecutor runs bash scripts shipped with a workspace framework.
// A failing script is logged and otherwise ignored.
type ScriptExecutor struct {
	Runner Runner
	Out    io.Writer
	Logger *slog.Logger
	Shell  string
}

// Execute runs script with argv. Empty arguments are dropped so optional
// values can be passed through unconditionally.
func (e *ScriptExecutor) Execute(ctx context.Context, script string, argv ...string) error {
	info, err := os.Stat(script)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("the script %q passed to the script executor does not exist: %w", script, fs.ErrNotExist)
	}

	sh := e.Shell
	if sh == "" {
		sh = "bash"
	}
	args := []string{script}
	for _, a := range argv {
		if a != "" {
			args = append(args, a)
		}
	}
	cmd := Cmd(sh, args...).Attached()

	if e.Out != nil {
		fmt.Fprintln(e.Out, cmd.String())
	}
	if err := e.Runner.Run(ctx, cmd); err != nil {
		logger := e.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("script failed", "script", script, "error", err)
	}
	return nil
}
