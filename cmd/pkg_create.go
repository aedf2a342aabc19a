package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zdunecki/rtw/pkg/choice"
	"github.com/zdunecki/rtw/pkg/git"
	"github.com/zdunecki/rtw/pkg/ros"
	"github.com/zdunecki/rtw/pkg/shell"
	"github.com/zdunecki/rtw/pkg/ui"
	"github.com/zdunecki/rtw/pkg/verb"
	"github.com/zdunecki/rtw/pkg/workspace"
)

type createVerb struct {
	s *session
}

func (v *createVerb) Name() string  { return "create" }
func (v *createVerb) Short() string { return "Create a new ROS package" }

func (v *createVerb) AddArguments(cmd *cobra.Command) {
	cmd.Use = "create [PACKAGE_NAME]"
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.ValidArgsFunction = cobra.NoFileCompletions

	f := cmd.Flags()
	f.String("destination", "", "Directory the package is created in")
	f.String("description", "", "Package description")
	f.String("license", "", "Package license")
	f.String("build-type", "", "Build type ("+strings.Join(ros.BuildTypes, ", ")+")")
	f.String("maintainer-name", "", "Maintainer name")
	f.String("maintainer-email", "", "Maintainer email")
	f.String("node-name", "", "Create an executable with this name")
	f.String("library-name", "", "Create a library with this name")
	f.StringSlice("dependencies", nil, "Package dependencies")
	f.String("script", "", "Workspace script to run instead of ros2 pkg create")
	f.Bool("build", false, "Build the package with colcon afterwards")

	cmd.MarkFlagDirname("destination")
	cmd.MarkFlagFilename("script", "bash", "sh")
	cmd.RegisterFlagCompletionFunc("license", fixedCompletion(ros.Licenses))
	cmd.RegisterFlagCompletionFunc("build-type", fixedCompletion(ros.BuildTypes))
}

func (v *createVerb) Main(ctx context.Context, args *verb.Args) error {
	s := v.s
	ui.Title(s.Out, "Create a new ROS package")

	script := args.String("script")
	distro := workspace.Distro(s.Env)
	if script == "" && !shell.Available(s.Runner, "ros2") {
		if distro != "" {
			ui.Warn(s.Out, "ros2 was not found. Run \"source /opt/ros/%s/setup.bash\" and try again.", distro)
		} else {
			ui.Warn(s.Out, "ros2 was not found. Source your ROS distribution and try again.")
		}
		return nil
	}

	opts, err := v.collect(ctx, args)
	if err != nil {
		return cancelled(s, err)
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	opts.Distro = distro

	ui.Step(s.Out, "Creating package %s in %s", ui.Highlight(opts.Name), opts.Destination)
	if script != "" {
		exec := &shell.ScriptExecutor{Runner: s.Runner, Out: s.Out, Logger: s.Logger}
		if err := exec.Execute(ctx, script, opts.Name, opts.Description, opts.License, opts.BuildType); err != nil {
			return err
		}
		if !ros.IsPackage(filepath.Join(opts.Destination, opts.Name)) {
			ui.Warn(s.Out, "%s finished but no package.xml was found in %s.", script, filepath.Join(opts.Destination, opts.Name))
			return nil
		}
	} else if err := ros.CreatePackage(ctx, s.Runner, opts); err != nil {
		return err
	}
	ui.Success(s.Out, "Package %s created", opts.Name)

	if args.Bool("build") {
		return buildPackage(ctx, s, opts.Name, distro)
	}
	return nil
}

// collect fills CreateOptions from flags and asks for whatever is missing.
func (v *createVerb) collect(ctx context.Context, args *verb.Args) (ros.CreateOptions, error) {
	s := v.s
	opts := ros.CreateOptions{
		NodeName:     args.String("node-name"),
		LibraryName:  args.String("library-name"),
		Dependencies: args.StringSlice("dependencies"),
	}

	var err error
	if opts.Name, err = v.packageName(args.Arg(0)); err != nil {
		return opts, err
	}
	if opts.Destination, err = v.destination(args.String("destination")); err != nil {
		return opts, err
	}

	opts.Description = args.String("description")
	if opts.Description == "" {
		opts.Description, err = s.Prompter.Text("Enter the package description: ",
			"Invalid description, please enter a description.", choice.NonEmpty)
		if err != nil {
			return opts, err
		}
	}

	opts.License = firstNonEmpty(args.String("license"), s.Config.Package.License)
	if opts.License == "" {
		if opts.License, err = resolve(s, "Select the package license:", fixedCandidates(ros.Licenses)); err != nil {
			return opts, err
		}
	}

	opts.BuildType = firstNonEmpty(args.String("build-type"), s.Config.Package.BuildType)
	if opts.BuildType == "" {
		if opts.BuildType, err = resolve(s, "Select the build type:", fixedCandidates(ros.BuildTypes)); err != nil {
			return opts, err
		}
	}

	opts.Maintainer, err = v.maintainer(ctx, args.String("maintainer-name"), args.String("maintainer-email"))
	return opts, err
}

func (v *createVerb) packageName(given string) (string, error) {
	if given != "" {
		if !ros.ValidPackageName(given) {
			return "", fmt.Errorf("invalid package name %q: use lowercase letters, digits and single underscores", given)
		}
		return given, nil
	}
	return v.s.Prompter.Text("Enter the package name: ",
		"Invalid package name, use lowercase letters, digits and single underscores.", ros.ValidPackageName)
}

func (v *createVerb) destination(given string) (string, error) {
	s := v.s
	if given != "" {
		if !choice.IsDir(given) {
			return "", fmt.Errorf("destination %s is not a directory", given)
		}
		return given, nil
	}

	var candidates []choice.Candidate[string]
	ws, err := workspace.Current(s.Env)
	switch {
	case err == nil && choice.IsDir(ws.Src()):
		candidates = append(candidates, choice.Of("workspace sources: "+ws.Src(), ws.Src()))
	case errors.Is(err, workspace.ErrNotSet):
		s.Logger.Debug("no sourced workspace", "error", err)
	}
	wd := s.workdir()
	candidates = append(candidates,
		choice.Of("current directory: "+wd, wd),
		choice.Lazy("enter a path", s.Prompter.Path),
	)
	return resolve(s, "Where should the package be created?", candidates)
}

func (v *createVerb) maintainer(ctx context.Context, name, email string) (ros.Maintainer, error) {
	s := v.s
	m := ros.Maintainer{Name: name, Email: email}
	if m.Email != "" && !choice.IsEmail(m.Email) {
		return m, fmt.Errorf("invalid maintainer email %q", m.Email)
	}
	if m.Complete() {
		return m, nil
	}

	var candidates []choice.Candidate[ros.Maintainer]
	if m.Name == "" && m.Email == "" {
		fromGit := ros.Maintainer{Name: git.UserName(ctx, s.Runner), Email: git.UserEmail(ctx, s.Runner)}
		if fromGit.Complete() {
			candidates = append(candidates, choice.Of("git config: "+fromGit.String(), fromGit))
		}
		fromConfig := ros.Maintainer{Name: s.Config.Maintainer.Name, Email: s.Config.Maintainer.Email}
		if fromConfig.Complete() && fromConfig != fromGit {
			candidates = append(candidates, choice.Of("rtw config: "+fromConfig.String(), fromConfig))
		}
	}
	candidates = append(candidates, choice.Lazy("enter the maintainer manually", func() (ros.Maintainer, error) {
		manual := m
		var err error
		if manual.Name == "" {
			fmt.Fprintln(s.Out, "Maintainer name")
			if manual.Name, err = s.Prompter.Name(); err != nil {
				return manual, err
			}
		}
		if manual.Email == "" {
			fmt.Fprintln(s.Out, "Maintainer email")
			if manual.Email, err = s.Prompter.Email(); err != nil {
				return manual, err
			}
		}
		return manual, nil
	}))
	return resolve(s, "Who maintains the package?", candidates)
}

// buildPackage runs colcon for pkg in the sourced workspace.
func buildPackage(ctx context.Context, s *session, pkg, distro string) error {
	ws, err := workspace.Current(s.Env)
	if err != nil {
		ui.Warn(s.Out, "%s is not exported, skipping the build. Source your workspace first.", workspace.EnvROSWorkspace)
		return nil
	}
	if !shell.Available(s.Runner, "colcon") {
		ui.Warn(s.Out, "colcon was not found, skipping the build.")
		return nil
	}
	ui.Step(s.Out, "Building %s in %s", pkg, ws.Path)
	build := ros.BuildOptions{Workspace: ws.Path, Distro: distro, Packages: []string{pkg}}
	if err := ros.Build(ctx, s.Runner, build); err != nil {
		return err
	}
	ui.Success(s.Out, "Built %s", pkg)
	return nil
}

func fixedCandidates(values []string) []choice.Candidate[string] {
	out := make([]choice.Candidate[string], len(values))
	for i, v := range values {
		out[i] = choice.Of(v, v)
	}
	return out
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
