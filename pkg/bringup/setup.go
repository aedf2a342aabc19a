// Package bringup turns a freshly created ROS package into a bringup
// package: it adds controller configuration and launch files for a robot,
// declares their runtime dependencies and installs the new folders.
package bringup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/zdunecki/rtw/pkg/fsutil"
	"github.com/zdunecki/rtw/pkg/ros"
)

// Options identifies the package and robot being configured.
type Options struct {
	PackageDir         string
	PackageName        string
	BuildType          string
	RobotName          string
	DescriptionPackage string
	// Overwrite replaces files that already exist.
	Overwrite bool
}

// Vars returns the placeholder values used in templates.
func (o Options) Vars() map[string]string {
	return map[string]string{
		"PKG_NAME":                o.PackageName,
		"RUNTIME_CONFIG_PKG_NAME": o.PackageName,
		"ROBOT_NAME":              o.RobotName,
		"DESCR_PKG_NAME":          o.DescriptionPackage,
	}
}

func (o Options) validate() error {
	if o.PackageDir == "" || o.PackageName == "" {
		return fmt.Errorf("bringup: package directory and name are required")
	}
	if strings.TrimSpace(o.RobotName) == "" {
		return fmt.Errorf("bringup: robot name is required")
	}
	if strings.TrimSpace(o.DescriptionPackage) == "" {
		return fmt.Errorf("bringup: description package is required")
	}
	return nil
}

// Result reports what Run changed, relative to the package directory.
type Result struct {
	Created      []string
	Skipped      []string
	AddedDepends []string
	InstallRule  bool
	Removed      []string
	Hints        []string
}

// Setup applies a template set to packages.
type Setup struct {
	Templates fs.FS
	Manifest  *Manifest
	// Dir is set when the templates live on disk. Rendered files then keep
	// the template's permissions.
	Dir string
}

// New loads the manifest of templates.
func New(templates fs.FS) (*Setup, error) {
	m, err := LoadManifest(templates)
	if err != nil {
		return nil, err
	}
	return &Setup{Templates: templates, Manifest: m}, nil
}

// NewFromDir loads a template set from a directory.
func NewFromDir(dir string) (*Setup, error) {
	s, err := New(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	s.Dir = dir
	return s, nil
}

// Run performs every step in order: folders, files, package.xml,
// CMakeLists.txt, cleanup. The first failing step aborts the rest.
func (s *Setup) Run(opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	vars := opts.Vars()
	res := &Result{}

	for _, folder := range s.Manifest.Folders {
		if err := fsutil.EnsureDir(filepath.Join(opts.PackageDir, fsutil.Substitute(folder, vars))); err != nil {
			return res, err
		}
	}

	for _, file := range s.Manifest.Files {
		rel := filepath.FromSlash(fsutil.Substitute(file.Dest, vars))
		dest := filepath.Join(opts.PackageDir, rel)
		if fsutil.Exists(dest) && !opts.Overwrite {
			res.Skipped = append(res.Skipped, rel)
			continue
		}
		if err := s.render(file.Template, dest, vars); err != nil {
			return res, err
		}
		res.Created = append(res.Created, rel)
	}

	deps := make([]string, 0, len(s.Manifest.ExecDepends))
	for _, d := range s.Manifest.ExecDepends {
		deps = append(deps, fsutil.Substitute(d, vars))
	}
	added, err := AddExecDepends(filepath.Join(opts.PackageDir, ros.ManifestFile), deps)
	if err != nil {
		return res, fmt.Errorf("update %s: %w", ros.ManifestFile, err)
	}
	res.AddedDepends = added

	switch opts.BuildType {
	case ros.BuildTypeAmentPython:
		res.Hints = append(res.Hints, fmt.Sprintf(
			"add the %s folders to data_files in setup.py so they are installed",
			strings.Join(s.Manifest.Install, ", ")))
	default:
		changed, err := AddInstallRule(filepath.Join(opts.PackageDir, "CMakeLists.txt"), s.Manifest.Install)
		if err != nil {
			return res, fmt.Errorf("update CMakeLists.txt: %w", err)
		}
		res.InstallRule = changed

		for _, dir := range []string{filepath.Join("include", opts.PackageName), "include", "src"} {
			removed, err := fsutil.RemoveIfEmpty(filepath.Join(opts.PackageDir, dir))
			if err != nil {
				return res, fmt.Errorf("remove %s: %w", dir, err)
			}
			if removed {
				res.Removed = append(res.Removed, dir)
			}
		}
	}

	return res, nil
}

func (s *Setup) render(template, dest string, vars map[string]string) error {
	if s.Dir != "" {
		if err := fsutil.CopyFile(filepath.Join(s.Dir, filepath.FromSlash(template)), dest); err != nil {
			return fmt.Errorf("copy template %s: %w", template, err)
		}
		if err := fsutil.ReplaceInFile(dest, vars); err != nil {
			return fmt.Errorf("fill in %s: %w", dest, err)
		}
		return nil
	}

	data, err := fs.ReadFile(s.Templates, template)
	if err != nil {
		return fmt.Errorf("read template %s: %w", template, err)
	}
	if err := fsutil.EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}
	if err := os.WriteFile(dest, []byte(fsutil.Substitute(string(data), vars)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
