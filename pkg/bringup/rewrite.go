package bringup

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// AddExecDepends inserts an <exec_depend> for every dependency the manifest
// at path does not already declare. It returns the added names.
func AddExecDepends(path string, deps []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, added, err := addExecDepends(string(data), deps)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(added) == 0 {
		return nil, nil
	}
	return added, writeKeepingMode(path, doc)
}

func addExecDepends(doc string, deps []string) (string, []string, error) {
	var missing []string
	seen := map[string]bool{}
	for _, dep := range deps {
		dep = strings.TrimSpace(dep)
		if dep == "" || seen[dep] {
			continue
		}
		seen[dep] = true
		if !declaresDependency(doc, dep) {
			missing = append(missing, dep)
		}
	}
	if len(missing) == 0 {
		return doc, nil, nil
	}

	anchor := strings.Index(doc, "<export>")
	if anchor < 0 {
		anchor = strings.Index(doc, "</package>")
	}
	if anchor < 0 {
		return "", nil, fmt.Errorf("no <export> or </package> element to insert dependencies before")
	}

	insertAt, indent := lineStart(doc, anchor)
	if indent == "" {
		indent = "  "
	}

	var b strings.Builder
	for _, dep := range missing {
		fmt.Fprintf(&b, "%s<exec_depend>%s</exec_depend>\n", indent, dep)
	}
	b.WriteString("\n")
	return doc[:insertAt] + b.String() + doc[insertAt:], missing, nil
}

func declaresDependency(doc, dep string) bool {
	re := regexp.MustCompile(`<(?:exec_depend|depend)(?:\s[^>]*)?>\s*` + regexp.QuoteMeta(dep) + `\s*</`)
	return re.MatchString(doc)
}

var installDirectoryRule = regexp.MustCompile(`(?s)install\s*\(\s*DIRECTORY\s+(.*?)\s+DESTINATION`)

// AddInstallRule makes CMakeLists.txt at path install dirs into the
// package's share directory. It reports whether the file changed.
func AddInstallRule(path string, dirs []string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	doc, changed := addInstallRule(string(data), dirs)
	if !changed {
		return false, nil
	}
	return true, writeKeepingMode(path, doc)
}

func addInstallRule(doc string, dirs []string) (string, bool) {
	installed := map[string]bool{}
	for _, m := range installDirectoryRule.FindAllStringSubmatch(doc, -1) {
		for _, d := range strings.Fields(m[1]) {
			installed[strings.TrimSuffix(d, "/")] = true
		}
	}
	var missing []string
	for _, d := range dirs {
		if !installed[d] {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return doc, false
	}

	rule := fmt.Sprintf("install(\n  DIRECTORY %s\n  DESTINATION share/${PROJECT_NAME}\n)\n\n", strings.Join(missing, " "))

	idx := strings.Index(doc, "ament_package()")
	if idx < 0 {
		if doc != "" && !strings.HasSuffix(doc, "\n") {
			doc += "\n"
		}
		return doc + "\n" + strings.TrimSuffix(rule, "\n"), true
	}
	insertAt, _ := lineStart(doc, idx)
	return doc[:insertAt] + rule + doc[insertAt:], true
}

// lineStart returns where the line holding idx begins and the whitespace
// before idx on that line. If idx is preceded by other text, idx itself is
// returned with no indent.
func lineStart(doc string, idx int) (int, string) {
	start := strings.LastIndex(doc[:idx], "\n") + 1
	prefix := doc[start:idx]
	if strings.TrimSpace(prefix) != "" {
		return idx, ""
	}
	return start, prefix
}

func writeKeepingMode(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), info.Mode())
}
