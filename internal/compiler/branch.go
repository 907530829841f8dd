package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/bramble/pkg/domain"
)

var (
	bindingRe = regexp.MustCompile(`~\{([A-Za-z0-9_]+)\}`)
	dynamicRe = regexp.MustCompile(`^\$\{([A-Za-z0-9_]+)\}$`)
)

// parseCall reads a `!{function} : ~{a} ~{b} ...` line. At least one binding
// is required; results bind to the names in order.
func (p *Parser) parseCall(line string, idx int) (*domain.Call, error) {
	body := line[len("!{"):]
	name, rest, ok := strings.Cut(body, "}")
	if !ok {
		return nil, p.errAt(domain.ParseMalformedCall, idx, "unterminated function name")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, p.errAt(domain.ParseMalformedCall, idx, "empty function name")
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return nil, p.errAt(domain.ParseMalformedCall, idx,
			fmt.Sprintf("call to %q missing ':' before bindings", name))
	}

	var bindings []string
	for _, m := range bindingRe.FindAllStringSubmatch(rest[1:], -1) {
		bindings = append(bindings, m[1])
	}
	if len(bindings) == 0 {
		return nil, p.errAt(domain.ParseMalformedCall, idx,
			fmt.Sprintf("call to %q requires at least one ~{binding}", name))
	}

	return &domain.Call{Function: name, Bindings: bindings}, nil
}

// parseBranch reads an option line `{kw1, kw2} -> dest` or a condition line
// `?{var} -> dest`.
func (p *Parser) parseBranch(line string, idx int) (domain.Branch, error) {
	if strings.HasPrefix(line, "?{") {
		return p.parseCondition(line, idx)
	}
	return p.parseOption(line, idx)
}

func (p *Parser) parseCondition(line string, idx int) (domain.Branch, error) {
	body := line[len("?{"):]
	variable, rest, ok := strings.Cut(body, "}")
	if !ok {
		return domain.Branch{}, p.errAt(domain.ParseMalformedBranch, idx, "unterminated condition")
	}
	variable = strings.TrimSpace(variable)
	if variable == "" {
		return domain.Branch{}, p.errAt(domain.ParseMalformedBranch, idx, "empty condition variable")
	}

	dest, err := p.parseArrowDestination(rest, idx)
	if err != nil {
		return domain.Branch{}, err
	}
	return domain.Branch{
		Kind:        domain.BranchCondition,
		Variable:    variable,
		Destination: dest,
	}, nil
}

func (p *Parser) parseOption(line string, idx int) (domain.Branch, error) {
	body := line[len("{"):]
	rawKeywords, rest, ok := strings.Cut(body, "}")
	if !ok {
		return domain.Branch{}, p.errAt(domain.ParseMalformedBranch, idx, "unterminated keyword set")
	}

	var keywords []string
	for _, kw := range strings.Split(rawKeywords, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return domain.Branch{}, p.errAt(domain.ParseMalformedBranch, idx, "option without keywords")
	}

	dest, err := p.parseArrowDestination(rest, idx)
	if err != nil {
		return domain.Branch{}, err
	}
	return domain.Branch{
		Kind:        domain.BranchOption,
		Keywords:    keywords,
		Destination: dest,
	}, nil
}

// parseArrowDestination expects `-> dest` in rest and decodes the target.
func (p *Parser) parseArrowDestination(rest string, idx int) (domain.Destination, error) {
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "->") {
		return domain.Destination{}, p.errAt(domain.ParseMalformedBranch, idx, "missing '->' destination")
	}
	return p.parseDestination(strings.TrimSpace(rest[2:]), idx)
}

// parseDestination decodes a destination token:
//
//	[file:node]  cross-file transfer, either side may hold ${...}
//	{exit}       session exit
//	${name}      dynamic, resolved from the variable at transition time
//	name         node in the current file
func (p *Parser) parseDestination(token string, idx int) (domain.Destination, error) {
	if token == "" {
		return domain.Destination{}, p.errAt(domain.ParseMalformedBranch, idx, "empty destination")
	}

	if strings.HasPrefix(token, "[") {
		if !strings.HasSuffix(token, "]") {
			return domain.Destination{}, p.errAt(domain.ParseMalformedBranch, idx,
				fmt.Sprintf("unterminated transfer destination %q", token))
		}
		inner := token[1 : len(token)-1]
		fileExpr, nodeExpr, ok := strings.Cut(inner, ":")
		if !ok {
			return domain.Destination{}, p.errAt(domain.ParseMalformedBranch, idx,
				fmt.Sprintf("transfer destination %q must be [file:node]", token))
		}
		return domain.Destination{
			Kind:     domain.DestTransfer,
			FileExpr: strings.TrimSpace(fileExpr),
			NodeExpr: strings.TrimSpace(nodeExpr),
		}, nil
	}

	if token == "{exit}" {
		return domain.Destination{Kind: domain.DestExit}, nil
	}

	if m := dynamicRe.FindStringSubmatch(token); m != nil {
		return domain.Destination{Kind: domain.DestDynamic, Variable: m[1]}, nil
	}

	return domain.Destination{Kind: domain.DestNode, Node: token}, nil
}
