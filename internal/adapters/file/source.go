package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source implements ports.ScriptSource over a directory of .bdl files.
// File names are resolved relative to the root; path separators are rejected
// so a script cannot reach outside its directory.
type Source struct {
	root string
}

// NewSource creates a Source rooted at dir.
func NewSource(dir string) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid script directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("script directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("script directory %s is not a directory", abs)
	}
	return &Source{root: abs}, nil
}

// Load reads the named script from disk.
func (s *Source) Load(name string) ([]byte, error) {
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid script name: %s", name)
	}
	raw, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return raw, nil
}

// List returns the .bdl file names in the root directory, sorted.
func (s *Source) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing scripts: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".bdl") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
