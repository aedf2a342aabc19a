package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zdunecki/rtw/pkg/choice"
	"github.com/zdunecki/rtw/pkg/ui"
	"github.com/zdunecki/rtw/pkg/verb"
)

var (
	// Global flags
	useTUI     bool
	verbose    bool
	rcFile     string
	configPath string
)

// app is filled in before any verb runs.
var app = &session{}

var (
	pkgVerbs    = verb.NewGroup("pkg", "Create and configure ROS packages")
	dockerVerbs = verb.NewGroup("docker", "Work with the workspace container")
)

var rootCmd = &cobra.Command{
	Use:   "rtw",
	Short: "ROS Team Workspace helper",
	Long: `rtw helps with day-to-day work in a ROS workspace: scaffolding
packages, turning them into robot bringup packages and entering the
workspace's development container.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(sessionOptions{
			TUI:        useTUI,
			Verbose:    verbose,
			RCFile:     rcFile,
			ConfigPath: configPath,
		})
		if err != nil {
			return err
		}
		*app = *s
		return nil
	},
}

func init() {
	pkgVerbs.Register(&createVerb{s: app})
	pkgVerbs.Register(&setupBringupVerb{s: app})
	dockerVerbs.Register(&enterVerb{s: app})

	rootCmd.PersistentFlags().BoolVar(&useTUI, "tui", false, "Pick options from an arrow-key list")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&rcFile, "rc-file", "", "Workspace rc file (default ~/.ros_team_ws_rc)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/rtw/config.yaml)")

	rootCmd.AddCommand(pkgVerbs.Command())
	rootCmd.AddCommand(dockerVerbs.Command())
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the command line. The first SIGINT or SIGTERM cancels
// running subprocesses and then ends rtw with that signal, so a prompt
// blocked on stdin does not keep the process alive.
func Execute() error {
	ctx, stop := interruptContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func interruptContext(parent context.Context, signals ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	caught := make(chan os.Signal, 1)
	signal.Notify(caught, signals...)

	go func() {
		select {
		case sig := <-caught:
			cancel()
			signal.Stop(caught)
			raise(sig)
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(caught)
		cancel()
	}
}

// raise delivers sig again with the default disposition restored.
func raise(sig os.Signal) {
	signal.Reset(sig)
	if p, err := os.FindProcess(os.Getpid()); err == nil && p.Signal(sig) == nil {
		return
	}
	os.Exit(130)
}

// cancelled turns a user cancellation into a graceful exit.
func cancelled(s *session, err error) error {
	if errors.Is(err, choice.ErrCancelled) {
		ui.Warn(s.Out, "Cancelled.")
		return nil
	}
	return err
}
