package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zdunecki/rtw/pkg/docker"
	"github.com/zdunecki/rtw/pkg/shell"
	"github.com/zdunecki/rtw/pkg/ui"
	"github.com/zdunecki/rtw/pkg/verb"
	"github.com/zdunecki/rtw/pkg/workspace"
)

type enterVerb struct {
	s *session
}

func (v *enterVerb) Name() string  { return "enter" }
func (v *enterVerb) Short() string { return "Enter docker container" }

func (v *enterVerb) AddArguments(cmd *cobra.Command) {
	cmd.Args = cobra.NoArgs
	cmd.Flags().String("user", "", "User to log in as (default: config docker.user, then $USER)")
}

func (v *enterVerb) Main(ctx context.Context, args *verb.Args) error {
	s := v.s
	fmt.Fprintln(s.Out, "##### enter docker verb begin #####")

	ws, err := workspace.Current(s.Env)
	if errors.Is(err, workspace.ErrNotSet) {
		fmt.Fprintln(s.Out, `It seems ROS_WS was not exported. Did you source your workspace by executing _"<ws_alias>"?`)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "ROS_WS is exported: %s -> ros_ws_name: %s\n", ws.Path, ws.Name)

	vars, ok := v.exportedVars()
	if !ok {
		fmt.Fprintf(s.Out, "RosTeamWS_WS_DOCKER* variables are not exported, therefore getting them from reading '%s'\n", s.RCPath)
		parsed, err := workspace.ExtractVariables(ws.Name, s.RCPath)
		if err != nil {
			ui.Warn(s.Out, "Cannot read workspace variables: %v", err)
			return nil
		}
		vars = workspace.Vars(parsed)
	}
	fmt.Fprintf(s.Out, "Read variables: %v\n", map[string]string(vars))

	if !vars.DockerSupport() {
		fmt.Fprintln(s.Out, `It seems your current workspace does not support docker. If it should, did you activate it by executing _"<ws_alias>"?`)
		return nil
	}
	fmt.Fprintf(s.Out, "RosTeamWS_DOCKER_TAG: %s\n", vars.DockerTag())

	name := vars.ContainerName()
	if name == "" {
		ui.Warn(s.Out, "Neither %s nor %s is set for this workspace.", workspace.EnvDockerTag, workspace.EnvContainerName)
		return nil
	}
	if !shell.Available(s.Runner, "docker") {
		ui.Warn(s.Out, "docker was not found on PATH.")
		return nil
	}

	client := &docker.Client{Runner: s.Runner, TTY: s.TTY, Out: s.Out, Logger: s.Logger}
	if !client.Exists(ctx, name) {
		ui.Warn(s.Out, "Container %s does not exist. Create it with the workspace setup scripts first.", name)
		return nil
	}
	user := firstNonEmpty(args.String("user"), s.Config.Docker.User, workspace.Get(s.Env, "USER"))
	if err := client.StartAndConnect(ctx, name, user); err != nil {
		return err
	}

	fmt.Fprintln(s.Out, "##### enter docker verb end #####")
	return nil
}

// exportedVars returns the docker variables of the current shell when the
// workspace was activated there.
func (v *enterVerb) exportedVars() (workspace.Vars, bool) {
	if _, ok := v.s.Env.Lookup(workspace.EnvDockerSupport); !ok {
		return nil, false
	}
	vars := workspace.Vars{}
	for _, key := range []string{workspace.EnvDockerSupport, workspace.EnvDockerTag, workspace.EnvContainerName} {
		if val, ok := v.s.Env.Lookup(key); ok {
			vars[key] = val
		}
	}
	return vars, true
}
