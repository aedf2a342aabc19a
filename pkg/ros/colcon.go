package ros

import (
	"context"
	"fmt"

	"github.com/zdunecki/rtw/pkg/shell"
)

// EnvDistro is the variable ROS tools read the distribution from.
const EnvDistro = "ROS_DISTRO"

// BuildOptions selects what colcon builds.
type BuildOptions struct {
	Workspace string
	// Distro is exported as ROS_DISTRO when set.
	Distro   string
	Packages []string
}

// Build compiles packages of the workspace. No packages means all of them.
func Build(ctx context.Context, r shell.Runner, opts BuildOptions) error {
	args := []string{"build", "--symlink-install"}
	if len(opts.Packages) > 0 {
		args = append(args, "--packages-select")
		args = append(args, opts.Packages...)
	}
	cmd := withDistro(shell.Cmd("colcon", args...).In(opts.Workspace), opts.Distro)
	if err := r.Run(ctx, cmd); err != nil {
		return fmt.Errorf("colcon build: %w", err)
	}
	return nil
}

func withDistro(cmd shell.Command, distro string) shell.Command {
	if distro == "" {
		return cmd
	}
	return cmd.WithEnv(EnvDistro, distro)
}
