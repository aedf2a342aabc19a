package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names understood by rtw.
const (
	EnvROSWorkspace  = "ROS_WS"
	EnvRCFile        = "RosTeamWS_RC_FILE"
	EnvDockerSupport = "RosTeamWS_WS_DOCKER_SUPPORT"
	EnvDockerTag     = "RosTeamWS_DOCKER_TAG"
	EnvContainerName = "RosTeamWS_DOCKER_CONTAINER_NAME"
	EnvROSDistro     = "RosTeamWS_BINARY_ROS_DISTRO"
)

// ErrNotSet is returned when a required variable is missing or empty.
var ErrNotSet = errors.New("environment variable not set")

// Env is the narrow view of the process environment the verbs read.
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the real process environment.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv serves fixed values.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Get returns the value of key, or "" when unset.
func Get(env Env, key string) string {
	v, _ := env.Lookup(key)
	return v
}

// Distro returns the ROS distribution to export for ROS tools. It is empty
// when ROS_DISTRO is already set by a sourced setup file.
func Distro(env Env) string {
	if v, ok := env.Lookup("ROS_DISTRO"); ok && v != "" {
		return ""
	}
	return strings.TrimSpace(Get(env, EnvROSDistro))
}

// Workspace is the sourced ROS workspace.
type Workspace struct {
	Path string
	Name string
}

// Src returns the workspace's src directory.
func (w Workspace) Src() string {
	return filepath.Join(w.Path, "src")
}

// Current returns the workspace exported in ROS_WS.
func Current(env Env) (Workspace, error) {
	path := strings.TrimSpace(Get(env, EnvROSWorkspace))
	if path == "" {
		return Workspace{}, fmt.Errorf("%s: %w", EnvROSWorkspace, ErrNotSet)
	}
	clean := filepath.Clean(path)
	return Workspace{Path: clean, Name: filepath.Base(clean)}, nil
}
