package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/bramble/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart from parsed documents.
// It applies semantic styling:
//   - start node: ((Circle))
//   - nodes dispatching host functions: [[Subroutine]]
//   - nodes awaiting input: [/Parallelogram/]
//   - cross-file and dynamic edges: dashed arrows
func GenerateMermaid(docs []*domain.Document, startNode string) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, doc := range docs {
		names := make([]string, 0, len(doc.Nodes))
		for name := range doc.Nodes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			node := doc.Nodes[name]
			id := mermaidID(doc.Name, name)

			opener, closer := "[", "]"
			switch {
			case name == startNode && doc.DeclaresGlobal:
				opener, closer = "((", "))"
			case hasCall(node):
				opener, closer = "[[", "]]"
			case hasOption(node):
				opener, closer = "[/", "/]"
			}
			sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, name, closer))

			for _, branch := range node.Branches {
				writeEdge(&sb, doc, id, branch)
			}
		}
	}

	return sb.String()
}

func writeEdge(sb *strings.Builder, doc *domain.Document, from string, branch domain.Branch) {
	label := ""
	switch branch.Kind {
	case domain.BranchOption:
		label = strings.Join(branch.Keywords, " / ")
	case domain.BranchCondition:
		label = "?" + branch.Variable
	}
	label = strings.ReplaceAll(label, `"`, "'")

	dest := branch.Destination
	switch dest.Kind {
	case domain.DestNode:
		sb.WriteString(fmt.Sprintf("    %s %s %s\n",
			from, arrow(label, false), mermaidID(doc.Name, dest.Node)))
	case domain.DestTransfer:
		sb.WriteString(fmt.Sprintf("    %s %s %s\n",
			from, arrow(label, true), mermaidID(dest.FileExpr, dest.NodeExpr)))
	case domain.DestDynamic:
		target := mermaidID(doc.Name, "dyn_"+dest.Variable)
		sb.WriteString(fmt.Sprintf("    %s{{\"${%s}\"}}\n", target, dest.Variable))
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow(label, true), target))
	case domain.DestExit:
		target := mermaidID(doc.Name, "exit")
		sb.WriteString(fmt.Sprintf("    %s((\"exit\"))\n", target))
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow(label, false), target))
	}
}

func arrow(label string, jump bool) string {
	switch {
	case label == "" && jump:
		return "-.->"
	case label == "":
		return "-->"
	case jump:
		return fmt.Sprintf("-. \"%s\" .->", label)
	default:
		return fmt.Sprintf("-- \"%s\" -->", label)
	}
}

func hasCall(node *domain.Node) bool {
	for _, c := range node.Content {
		if c.Kind == domain.ContentCall {
			return true
		}
	}
	return false
}

func hasOption(node *domain.Node) bool {
	for _, b := range node.Branches {
		if b.Kind == domain.BranchOption {
			return true
		}
	}
	return false
}

func mermaidID(file, node string) string {
	s := file + "_" + node
	for _, bad := range []string{".", "-", "/", "\\", "$", "{", "}", ":"} {
		s = strings.ReplaceAll(s, bad, "_")
	}
	return s
}
