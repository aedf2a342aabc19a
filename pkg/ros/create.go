package ros

import (
	"context"
	"fmt"

	"github.com/zdunecki/rtw/pkg/shell"
)

// Build types accepted by ros2 pkg create.
const (
	BuildTypeAmentCMake  = "ament_cmake"
	BuildTypeAmentPython = "ament_python"
	BuildTypeCMake       = "cmake"
)

// BuildTypes lists the selectable build types in display order.
var BuildTypes = []string{BuildTypeAmentCMake, BuildTypeAmentPython, BuildTypeCMake}

// Licenses lists the selectable licenses in display order.
var Licenses = []string{
	"Apache-2.0",
	"BSD-3-Clause",
	"MIT",
	"GPL-3.0-only",
	"LGPL-3.0-only",
	"BSL-1.0",
	"proprietary",
}

// Maintainer identifies who owns a package.
type Maintainer struct {
	Name  string
	Email string
}

func (m Maintainer) String() string {
	return fmt.Sprintf("%s <%s>", m.Name, m.Email)
}

// Complete reports whether both fields are set.
func (m Maintainer) Complete() bool {
	return m.Name != "" && m.Email != ""
}

// CreateOptions describes a package to scaffold.
type CreateOptions struct {
	Destination  string
	Name         string
	Description  string
	License      string
	BuildType    string
	Maintainer   Maintainer
	NodeName     string
	LibraryName  string
	Dependencies []string
	// Distro is exported as ROS_DISTRO for ros2 when set.
	Distro string
}

// Args returns the ros2 argv. The package name comes first because
// --dependencies consumes every argument after it.
func (o CreateOptions) Args() []string {
	args := []string{"pkg", "create", o.Name}
	add := func(flag, value string) {
		if value != "" {
			args = append(args, flag, value)
		}
	}
	add("--destination-directory", o.Destination)
	add("--build-type", o.BuildType)
	add("--description", o.Description)
	add("--license", o.License)
	add("--maintainer-name", o.Maintainer.Name)
	add("--maintainer-email", o.Maintainer.Email)
	add("--node-name", o.NodeName)
	add("--library-name", o.LibraryName)
	if len(o.Dependencies) > 0 {
		args = append(args, "--dependencies")
		args = append(args, o.Dependencies...)
	}
	return args
}

// Validate checks the fields a user may have passed as flags.
func (o CreateOptions) Validate() error {
	if !ValidPackageName(o.Name) {
		return fmt.Errorf("invalid package name %q", o.Name)
	}
	if o.BuildType != "" && !contains(BuildTypes, o.BuildType) {
		return fmt.Errorf("unsupported build type %q (use one of %v)", o.BuildType, BuildTypes)
	}
	return nil
}

// CreatePackage runs ros2 pkg create.
func CreatePackage(ctx context.Context, r shell.Runner, opts CreateOptions) error {
	if err := r.Run(ctx, withDistro(shell.Cmd("ros2", opts.Args()...), opts.Distro)); err != nil {
		return fmt.Errorf("ros2 pkg create: %w", err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
