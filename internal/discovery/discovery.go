// Package discovery finds Zabbix template files under a directory tree
// for batch validation.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner walks a directory tree looking for template files.
type Scanner struct {
	root string
}

// NewScanner creates a Scanner rooted at the given directory.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Found holds the discovered template files, deduplicated and sorted.
// XML files are validated; YAML files are only listed (rule-checking of
// YAML exports is handled by yamllint, not this tool).
type Found struct {
	XML  []string
	YAML []string
}

// Empty reports whether nothing template-like was found at all.
func (f Found) Empty() bool {
	return len(f.XML) == 0 && len(f.YAML) == 0
}

// Find walks the root and collects template candidates by name pattern:
// XML files whose base name contains "zabbix" or starts with "template",
// and YAML files whose base name contains "zabbix". Matching is
// case-sensitive. Results are deduplicated and sorted for deterministic
// batch order.
func (s *Scanner) Find() (Found, error) {
	xmlSeen := make(map[string]bool)
	yamlSeen := make(map[string]bool)

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		switch {
		case isXMLTemplate(name):
			xmlSeen[path] = true
		case isYAMLTemplate(name):
			yamlSeen[path] = true
		}
		return nil
	})
	if err != nil {
		return Found{}, fmt.Errorf("failed to scan %s: %w", s.root, err)
	}

	return Found{
		XML:  sortedKeys(xmlSeen),
		YAML: sortedKeys(yamlSeen),
	}, nil
}

func isXMLTemplate(name string) bool {
	if !strings.HasSuffix(name, ".xml") {
		return false
	}
	return strings.Contains(name, "zabbix") || strings.HasPrefix(name, "template")
}

func isYAMLTemplate(name string) bool {
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		return false
	}
	return strings.Contains(name, "zabbix")
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
