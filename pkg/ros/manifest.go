package ros

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestFile is the name of a package manifest.
const ManifestFile = "package.xml"

// Manifest holds the package.xml fields rtw cares about.
type Manifest struct {
	Name        string   `xml:"name"`
	Description string   `xml:"description"`
	BuildType   string   `xml:"export>build_type"`
	Depends     []string `xml:"depend"`
	ExecDepends []string `xml:"exec_depend"`
}

// ReadManifest parses <dir>/package.xml. A missing build type defaults to
// ament_cmake, as colcon does.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var m Manifest
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	m.Name = strings.TrimSpace(m.Name)
	m.BuildType = strings.TrimSpace(m.BuildType)
	if m.Name == "" {
		return nil, fmt.Errorf("%s has no <name>", path)
	}
	if m.BuildType == "" {
		m.BuildType = BuildTypeAmentCMake
	}
	return &m, nil
}

// IsPackage reports whether dir contains a package.xml.
func IsPackage(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFile))
	return err == nil && info.Mode().IsRegular()
}
