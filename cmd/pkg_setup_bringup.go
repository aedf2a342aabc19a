package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zdunecki/rtw/pkg/bringup"
	"github.com/zdunecki/rtw/pkg/choice"
	"github.com/zdunecki/rtw/pkg/ros"
	"github.com/zdunecki/rtw/pkg/ui"
	"github.com/zdunecki/rtw/pkg/verb"
	"github.com/zdunecki/rtw/pkg/workspace"
)

type setupBringupVerb struct {
	s *session
}

func (v *setupBringupVerb) Name() string { return "setup-bringup" }
func (v *setupBringupVerb) Short() string {
	return "Add controller configs and launch files for a robot to a package"
}

func (v *setupBringupVerb) AddArguments(cmd *cobra.Command) {
	cmd.Use = "setup-bringup [PACKAGE_PATH]"
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.ValidArgsFunction = func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}

	f := cmd.Flags()
	f.String("robot-name", "", "Name of the robot")
	f.String("description-package", "", "Package holding the robot description")
	f.String("templates", "", "Directory with a custom template set")
	f.Bool("overwrite", false, "Replace files that already exist")
	f.Bool("build", false, "Build the package with colcon afterwards")

	cmd.MarkFlagDirname("templates")
}

func (v *setupBringupVerb) Main(ctx context.Context, args *verb.Args) error {
	s := v.s
	ui.Title(s.Out, "Set up a bringup package")

	dir, err := v.packageDir(args.Arg(0))
	if err != nil {
		return cancelled(s, err)
	}
	if !ros.IsPackage(dir) {
		ui.Warn(s.Out, "%s has no %s. Create the package first, e.g. with `rtw pkg create`.", dir, ros.ManifestFile)
		return nil
	}
	manifest, err := ros.ReadManifest(dir)
	if err != nil {
		return err
	}
	s.Logger.Debug("read package manifest", "name", manifest.Name, "build_type", manifest.BuildType)

	robot := args.String("robot-name")
	if robot == "" {
		robot, err = s.Prompter.Text("Enter the robot name: ",
			"Invalid robot name, please enter a name without spaces.", validRobotName)
		if err != nil {
			return cancelled(s, err)
		}
	} else if !validRobotName(robot) {
		return fmt.Errorf("invalid robot name %q", robot)
	}

	descr := args.String("description-package")
	if descr == "" {
		descr, err = resolve(s, "Which package holds the robot description?", []choice.Candidate[string]{
			choice.Of(robot+"_description", robot+"_description"),
			choice.Lazy("enter the package name", func() (string, error) {
				return s.Prompter.Text("Enter the description package name: ",
					"Invalid package name, use lowercase letters, digits and single underscores.", ros.ValidPackageName)
			}),
		})
		if err != nil {
			return cancelled(s, err)
		}
	} else if !ros.ValidPackageName(descr) {
		return fmt.Errorf("invalid description package name %q: use lowercase letters, digits and single underscores", descr)
	}

	setup, err := v.setup(args.String("templates"))
	if err != nil {
		return err
	}

	ui.Step(s.Out, "Configuring %s for robot %s", ui.Highlight(manifest.Name), ui.Highlight(robot))
	res, err := setup.Run(bringup.Options{
		PackageDir:         dir,
		PackageName:        manifest.Name,
		BuildType:          manifest.BuildType,
		RobotName:          robot,
		DescriptionPackage: descr,
		Overwrite:          args.Bool("overwrite"),
	})
	report(s, res, err)
	if err != nil {
		return fmt.Errorf("setup bringup: %w", err)
	}
	ui.Success(s.Out, "Bringup package %s is ready", manifest.Name)

	if args.Bool("build") {
		return buildPackage(ctx, s, manifest.Name, workspace.Distro(s.Env))
	}
	return nil
}

// packageDir returns the package to configure: the argument, or a choice
// between the working directory and the packages of the sourced workspace.
func (v *setupBringupVerb) packageDir(given string) (string, error) {
	s := v.s
	if given != "" {
		return filepath.Abs(given)
	}

	var candidates []choice.Candidate[string]
	if wd := s.workdir(); ros.IsPackage(wd) {
		candidates = append(candidates, choice.Of("current directory: "+wd, wd))
	}
	if ws, err := workspace.Current(s.Env); err == nil {
		for _, dir := range workspacePackages(ws.Src()) {
			candidates = append(candidates, choice.Of(filepath.Base(dir), dir))
		}
	}
	candidates = append(candidates, choice.Lazy("enter a path", s.Prompter.Path))
	return resolve(s, "Which package should become the bringup package?", candidates)
}

// setup loads the template set from dir, the configured directory, or the
// set compiled into rtw.
func (v *setupBringupVerb) setup(dir string) (*bringup.Setup, error) {
	dir = firstNonEmpty(dir, v.s.Config.Bringup.Templates)
	if dir == "" {
		return bringup.New(bringup.DefaultTemplates())
	}
	v.s.Logger.Debug("using custom templates", "dir", dir)
	return bringup.NewFromDir(dir)
}

// workspacePackages lists the direct subdirectories of src that hold a
// package.xml, bringup packages first.
func workspacePackages(src string) []string {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil
	}
	var pkgs []string
	for _, e := range entries {
		dir := filepath.Join(src, e.Name())
		if e.IsDir() && ros.IsPackage(dir) {
			pkgs = append(pkgs, dir)
		}
	}
	sort.SliceStable(pkgs, func(i, j int) bool {
		return strings.HasSuffix(pkgs[i], "_bringup") && !strings.HasSuffix(pkgs[j], "_bringup")
	})
	return pkgs
}

var validRobotName = choice.All(choice.NonEmpty, func(s string) bool {
	return !strings.ContainsAny(s, " \t/\\$")
})

// report lists what the setup changed. A failed setup may have changed
// part of the package already.
func report(s *session, res *bringup.Result, err error) {
	if res == nil {
		res = &bringup.Result{}
	}
	for _, f := range res.Created {
		ui.Info(s.Out, "created %s", f)
	}
	for _, f := range res.Skipped {
		ui.Warn(s.Out, "%s already exists, kept it (use --overwrite to replace)", f)
	}
	if len(res.AddedDepends) > 0 {
		ui.Info(s.Out, "added exec dependencies: %s", strings.Join(res.AddedDepends, ", "))
	}
	if res.InstallRule {
		ui.Info(s.Out, "added install rule to CMakeLists.txt")
	}
	for _, d := range res.Removed {
		ui.Info(s.Out, "removed empty folder %s", d)
	}
	for _, h := range res.Hints {
		ui.Warn(s.Out, "%s", h)
	}
	if err != nil {
		ui.Error(s.Out, "Setup stopped early, the package may be partially configured.")
	}
}
