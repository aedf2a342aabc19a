package bringup

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file inside a template set that describes it.
const ManifestName = "manifest.yaml"

// Manifest lists what a template set adds to a package.
type Manifest struct {
	Folders     []string   `yaml:"folders"`
	Files       []FileSpec `yaml:"files"`
	ExecDepends []string   `yaml:"exec_depends"`
	Install     []string   `yaml:"install"`
}

// FileSpec maps a template to its destination inside the package.
type FileSpec struct {
	Template string `yaml:"template"`
	Dest     string `yaml:"dest"`
}

// UnmarshalYAML allows:
//   - config/file.yaml            (template named file.yaml)
//   - template: a.yaml
//     dest: config/b.yaml
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	*f = FileSpec{}
	if node == nil {
		return nil
	}
	if node.Kind == yaml.ScalarNode {
		dest := strings.TrimSpace(node.Value)
		if dest == "" {
			return fmt.Errorf("line %d: empty file entry", node.Line)
		}
		f.Dest = dest
		f.Template = path.Base(dest)
		return nil
	}

	type raw FileSpec
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	if r.Template == "" || r.Dest == "" {
		return fmt.Errorf("line %d: file entry needs both template and dest", node.Line)
	}
	*f = FileSpec(r)
	return nil
}

// LoadManifest reads and checks the manifest of a template set. Every
// referenced template must exist in templates.
func LoadManifest(templates fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(templates, ManifestName)
	if err != nil {
		return nil, fmt.Errorf("bringup templates: read %s: %w", ManifestName, err)
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("bringup templates: parse %s: %w", ManifestName, err)
	}

	if len(m.Files) == 0 {
		return nil, fmt.Errorf("bringup templates: %s has no files", ManifestName)
	}
	for _, file := range m.Files {
		if _, err := fs.Stat(templates, file.Template); err != nil {
			return nil, fmt.Errorf("bringup templates: %s: %w", file.Template, err)
		}
	}
	return &m, nil
}
