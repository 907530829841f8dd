// Package library is the document registry: it loads script files through a
// ScriptSource, parses them once, caches them by name, and resolves
// (file, node) references for the navigator.
package library

import (
	"sort"
	"sync"

	"github.com/aretw0/bramble/internal/compiler"
	"github.com/aretw0/bramble/pkg/domain"
	"github.com/aretw0/bramble/pkg/ports"
)

// Library memoizes parsed Documents. Documents are immutable after load, so
// a populated Library is safe to share read-only across concurrent sessions;
// first-load population is serialized.
type Library struct {
	source ports.ScriptSource
	entry  string

	mu   sync.Mutex
	docs map[string]*domain.Document
}

// New creates a Library over source. entry designates the entry file, the
// only one parsed with global-declaration rights.
func New(source ports.ScriptSource, entry string) *Library {
	return &Library{
		source: source,
		entry:  entry,
		docs:   make(map[string]*domain.Document),
	}
}

// Entry returns the designated entry file name.
func (l *Library) Entry() string { return l.entry }

// Load returns the parsed Document for name, parsing and caching it on first
// use. Every file in the document's Required list is loaded eagerly and
// recursively; a dependency that fails to load surfaces as a ReferenceError
// with code RefMissingDependency. Mutual requires between files are fine: a
// load in progress is already registered and is returned as-is instead of
// being re-parsed.
func (l *Library) Load(name string) (*domain.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked(name)
}

func (l *Library) loadLocked(name string) (*domain.Document, error) {
	if doc, ok := l.docs[name]; ok {
		return doc, nil
	}

	raw, err := l.source.Load(name)
	if err != nil {
		return nil, &domain.ReferenceError{Code: domain.RefUnknownFile, Name: name, Err: err}
	}

	doc, err := compiler.Parse(raw, name, name == l.entry)
	if err != nil {
		return nil, err
	}

	// Register before resolving requires so that requirement cycles see the
	// in-progress entry instead of recursing forever.
	l.docs[name] = doc

	for _, dep := range doc.Metadata.Required {
		if _, err := l.loadLocked(dep); err != nil {
			delete(l.docs, name)
			return nil, &domain.ReferenceError{
				Code: domain.RefMissingDependency,
				File: name,
				Name: dep,
				Err:  err,
			}
		}
	}

	return doc, nil
}

// Resolve returns the named node of the named file, loading the file if
// needed. Unknown files and unknown nodes yield ReferenceErrors.
func (l *Library) Resolve(file, node string) (*domain.Document, *domain.Node, error) {
	doc, err := l.Load(file)
	if err != nil {
		return nil, nil, err
	}
	n, ok := doc.Nodes[node]
	if !ok {
		return nil, nil, &domain.ReferenceError{Code: domain.RefUnknownNode, File: file, Name: node}
	}
	return doc, n, nil
}

// Loaded returns the names of all cached documents, sorted.
func (l *Library) Loaded() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.docs))
	for name := range l.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
