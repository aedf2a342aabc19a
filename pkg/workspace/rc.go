package workspace

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultRCName is the per-user file that declares one shell function per
// workspace.
const DefaultRCName = ".ros_team_ws_rc"

var assignment = regexp.MustCompile(`^(?:export\s+)?[A-Za-z_][A-Za-z0-9_]*=`)

// RCPath returns the rc file location: override when given, then
// RosTeamWS_RC_FILE, then ~/.ros_team_ws_rc.
func RCPath(env Env, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if p := Get(env, EnvRCFile); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultRCName), nil
}

// ExtractVariables collects the KEY=VALUE assignments inside the section
// that defines workspace wsName. A section is a shell function named wsName
// or _wsName. Other statements in the section are ignored, and a workspace
// without a section yields an empty map.
func ExtractVariables(wsName, path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	header := sectionHeader(wsName)
	var (
		body    []string
		inBlock bool
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inBlock {
			inBlock = header.MatchString(line)
			continue
		}
		if line == "}" || strings.HasPrefix(line, "} ") {
			break
		}
		if assignment.MatchString(line) {
			body = append(body, strings.TrimSuffix(line, ";"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(body) == 0 {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Unmarshal(strings.Join(body, "\n"))
	if err != nil {
		return nil, fmt.Errorf("parse section %q of %s: %w", wsName, path, err)
	}
	return vars, nil
}

func sectionHeader(wsName string) *regexp.Regexp {
	name := `_?` + regexp.QuoteMeta(wsName)
	return regexp.MustCompile(`^(?:function\s+` + name + `\s*(?:\(\s*\))?|` + name + `\s*\(\s*\))\s*\{?$`)
}

// Vars is the parsed section of one workspace.
type Vars map[string]string

// DockerSupport reports whether the workspace is configured for containers.
func (v Vars) DockerSupport() bool {
	s := strings.ToLower(strings.TrimSpace(v[EnvDockerSupport]))
	return s != "" && s != "false" && s != "0"
}

// DockerTag returns the image tag of the workspace container.
func (v Vars) DockerTag() string {
	return v[EnvDockerTag]
}

// ContainerName returns the explicit container name, or one derived from
// the docker tag.
func (v Vars) ContainerName() string {
	if name := strings.TrimSpace(v[EnvContainerName]); name != "" {
		return name
	}
	tag := strings.TrimSpace(v.DockerTag())
	if tag == "" {
		return ""
	}
	return strings.NewReplacer("/", "-", ":", "-").Replace(tag) + "-instance"
}
