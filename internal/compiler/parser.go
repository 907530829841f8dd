// Package compiler turns raw BDL script text into domain Documents.
//
// The grammar is line-oriented: a metadata header of `# Key: value` lines,
// optional `$global_vars` / `$local_vars` brace blocks, then `@name` nodes
// whose bodies interleave text, `!{fn}` calls and `{...}` / `?{...}` branches.
package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/bramble/pkg/domain"
)

var nodeNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Parser compiles one script file. It carries no state between files; use
// Parse for the common case.
type Parser struct {
	file    string
	isEntry bool
	lines   []string
}

// New creates a parser for the named file. isEntry marks the designated
// entry file, the only one allowed to declare $global_vars.
func New(file string, isEntry bool) *Parser {
	return &Parser{file: file, isEntry: isEntry}
}

// Parse compiles raw script text into an immutable Document.
func Parse(raw []byte, file string, isEntry bool) (*domain.Document, error) {
	return New(file, isEntry).Parse(raw)
}

// Parse compiles raw script text into an immutable Document.
func (p *Parser) Parse(raw []byte) (*domain.Document, error) {
	p.lines = strings.Split(string(raw), "\n")

	meta, err := p.parseMetadata()
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		Name:           p.file,
		Metadata:       meta,
		DeclaresGlobal: p.isEntry,
		LocalDefaults:  make(map[string]domain.Value),
		Nodes:          make(map[string]*domain.Node),
	}
	if p.isEntry {
		doc.GlobalDefaults = make(map[string]domain.Value)
	}

	var (
		current    *domain.Node
		textBuf    []string
		sawGlobals bool
	)
	flushText := func() {
		if current == nil || len(textBuf) == 0 {
			return
		}
		current.Content = append(current.Content, domain.ContentElement{
			Kind: domain.ContentText,
			Text: strings.Join(textBuf, "\n"),
		})
		textBuf = nil
	}

	for i := 0; i < len(p.lines); i++ {
		line := strings.TrimSpace(p.lines[i])

		// Blank lines and comments are invisible to the grammar, even
		// inside node bodies.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "$global_vars:"):
			if !p.isEntry {
				return nil, p.errAt(domain.ParseGlobalOutsideEntry, i,
					"$global_vars declared outside the entry file")
			}
			if sawGlobals {
				return nil, p.errAt(domain.ParseDuplicateVariable, i,
					"duplicate $global_vars block")
			}
			sawGlobals = true
			next, err := p.parseVarBlock(line, i, doc.GlobalDefaults)
			if err != nil {
				return nil, err
			}
			i = next

		case strings.HasPrefix(line, "$local_vars:"):
			next, err := p.parseVarBlock(line, i, doc.LocalDefaults)
			if err != nil {
				return nil, err
			}
			i = next

		case strings.HasPrefix(line, "@"):
			flushText()
			name := strings.TrimSpace(line[1:])
			if !nodeNameRe.MatchString(name) {
				return nil, p.errAt(domain.ParseInvalidNodeName, i,
					fmt.Sprintf("invalid node name %q", name))
			}
			if _, exists := doc.Nodes[name]; exists {
				return nil, p.errAt(domain.ParseDuplicateNode, i,
					fmt.Sprintf("duplicate node %q", name))
			}
			current = &domain.Node{Name: name}
			doc.Nodes[name] = current

		case current == nil:
			// Stray content before the first node; ignored, matching the
			// original engine's leniency.

		case strings.HasPrefix(line, "!{"):
			flushText()
			call, err := p.parseCall(line, i)
			if err != nil {
				return nil, err
			}
			current.Content = append(current.Content, domain.ContentElement{
				Kind: domain.ContentCall,
				Call: call,
			})

		case strings.HasPrefix(line, "?{") || strings.HasPrefix(line, "{"):
			flushText()
			branch, err := p.parseBranch(line, i)
			if err != nil {
				return nil, err
			}
			current.Branches = append(current.Branches, branch)

		default:
			textBuf = append(textBuf, line)
		}
	}
	flushText()

	return doc, nil
}

// parseMetadata reads the leading `# Key: value` run. The header ends at the
// first blank or non-comment line. Topic, Description, Author and Version
// are mandatory; Required is an optional comma list of dependency files.
func (p *Parser) parseMetadata() (domain.Metadata, error) {
	var meta domain.Metadata
	seen := map[string]bool{}

	for i := 0; i < len(p.lines); i++ {
		line := strings.TrimSpace(p.lines[i])
		if line == "" || !strings.HasPrefix(line, "#") {
			break
		}
		body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		key, value, ok := strings.Cut(body, ":")
		if !ok {
			// Plain comment inside the header run.
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "topic":
			meta.Topic = value
		case "description":
			meta.Description = value
		case "author":
			meta.Author = value
		case "version":
			meta.Version = value
		case "required":
			for _, dep := range strings.Split(value, ",") {
				dep = strings.TrimSpace(dep)
				if dep == "" {
					continue
				}
				meta.Required = append(meta.Required, dep)
			}
		default:
			// Unknown metadata keys are ignored.
		}
		seen[key] = true
	}

	for _, required := range []string{"topic", "description", "author", "version"} {
		if !seen[required] {
			return meta, &domain.ParseError{
				Code: domain.ParseMissingMetadata,
				File: p.file,
				Msg:  fmt.Sprintf("missing required metadata key %q", required),
			}
		}
	}

	if err := p.validateDependencies(meta.Required); err != nil {
		return meta, err
	}
	return meta, nil
}

// validateDependencies enforces the hygiene rules on the Required list:
// every entry must carry the .bdl extension and appear at most once.
func (p *Parser) validateDependencies(deps []string) error {
	seen := map[string]bool{}
	for _, dep := range deps {
		if !strings.HasSuffix(dep, ".bdl") {
			return &domain.ParseError{
				Code: domain.ParseInvalidDependency,
				File: p.file,
				Msg:  fmt.Sprintf("dependency %q does not have the .bdl extension", dep),
			}
		}
		if seen[dep] {
			return &domain.ParseError{
				Code: domain.ParseDuplicateDependency,
				File: p.file,
				Msg:  fmt.Sprintf("duplicate dependency %q", dep),
			}
		}
		seen[dep] = true
	}
	return nil
}

func (p *Parser) errAt(code domain.ParseCode, idx int, msg string) error {
	return &domain.ParseError{Code: code, File: p.file, Line: idx + 1, Msg: msg}
}
