package memory

import (
	"fmt"
	"sort"
)

// Source implements ports.ScriptSource over an in-memory map.
// It is the loader of choice for tests and embedded scripts.
type Source struct {
	scripts map[string][]byte
}

// NewSource creates a Source from raw script text keyed by file name.
func NewSource(scripts map[string]string) *Source {
	data := make(map[string][]byte, len(scripts))
	for name, text := range scripts {
		data[name] = []byte(text)
	}
	return &Source{scripts: data}
}

// Load returns the raw text of the named script.
func (s *Source) Load(name string) ([]byte, error) {
	raw, ok := s.scripts[name]
	if !ok {
		return nil, fmt.Errorf("script not found: %s", name)
	}
	return raw, nil
}

// List returns all available file names in deterministic order.
func (s *Source) List() ([]string, error) {
	names := make([]string, 0, len(s.scripts))
	for name := range s.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
