// Package validator performs the static graph check behind `bdl validate`.
//
// Destinations computed from variables cannot be validated statically, so
// the crawl is necessarily incomplete: dynamic edges and interpolated
// transfer expressions are reported as unverifiable warnings, never errors.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/bramble/internal/library"
	"github.com/aretw0/bramble/pkg/domain"
)

// Report is the outcome of a validation crawl. Errors are broken literal
// references; warnings cover everything the crawl cannot prove.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the crawl found no broken literal references.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate crawls every literal edge reachable from the entry document's
// start node. Loading the entry (and its Required closure) must succeed;
// any further broken reference is collected rather than aborting the crawl.
func Validate(lib *library.Library, startNode string) (*Report, error) {
	entry, err := lib.Load(lib.Entry())
	if err != nil {
		return nil, err
	}

	report := &Report{}
	if _, ok := entry.Nodes[startNode]; !ok {
		report.errorf("start node %q missing from entry file %s", startNode, entry.Name)
		return report, nil
	}

	visited := map[ref]bool{}
	queue := []ref{{entry.Name, startNode}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		doc, node, err := lib.Resolve(cur.file, cur.node)
		if err != nil {
			report.errorf("unresolvable reference %s:%s: %v", cur.file, cur.node, err)
			continue
		}

		declared := map[string]bool{doc.Name: true}
		for _, dep := range doc.Metadata.Required {
			declared[dep] = true
		}

		for _, branch := range node.Branches {
			dest := branch.Destination
			switch dest.Kind {
			case domain.DestExit:
				// Terminal, nothing to follow.

			case domain.DestNode:
				if _, ok := doc.Nodes[dest.Node]; !ok {
					report.errorf("%s:%s points to unknown node %q", cur.file, cur.node, dest.Node)
					continue
				}
				queue = append(queue, ref{doc.Name, dest.Node})

			case domain.DestTransfer:
				if strings.Contains(dest.FileExpr, "${") || strings.Contains(dest.NodeExpr, "${") {
					report.warnf("%s:%s transfer [%s:%s] is dynamic and cannot be verified",
						cur.file, cur.node, dest.FileExpr, dest.NodeExpr)
					continue
				}
				if !declared[dest.FileExpr] {
					report.warnf("%s:%s transfers to %q which is not in this file's Required list",
						cur.file, cur.node, dest.FileExpr)
				}
				if _, _, err := lib.Resolve(dest.FileExpr, dest.NodeExpr); err != nil {
					report.errorf("%s:%s transfer to %s:%s failed: %v",
						cur.file, cur.node, dest.FileExpr, dest.NodeExpr, err)
					continue
				}
				queue = append(queue, ref{dest.FileExpr, dest.NodeExpr})

			case domain.DestDynamic:
				report.warnf("%s:%s destination ${%s} is resolved at runtime and cannot be verified",
					cur.file, cur.node, dest.Variable)
			}
		}
	}

	reportUnreachable(lib, visited, report)
	return report, nil
}

// ref addresses one node of one file during the crawl.
type ref struct{ file, node string }

func reportUnreachable(lib *library.Library, visited map[ref]bool, report *Report) {
	for _, name := range lib.Loaded() {
		doc, err := lib.Load(name)
		if err != nil {
			continue
		}
		var missing []string
		for nodeName := range doc.Nodes {
			if !visited[ref{name, nodeName}] {
				missing = append(missing, nodeName)
			}
		}
		sort.Strings(missing)
		for _, nodeName := range missing {
			report.warnf("%s:%s is unreachable over literal edges", name, nodeName)
		}
	}
}
