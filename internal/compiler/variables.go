package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/bramble/pkg/domain"
)

// parseVarBlock reads a `$global_vars: {` or `$local_vars: {` declaration
// starting at line idx, filling dst with the declared defaults. It returns
// the index of the closing brace line so the caller can resume after it.
func (p *Parser) parseVarBlock(decl string, idx int, dst map[string]domain.Value) (int, error) {
	rest := strings.TrimSpace(decl[strings.Index(decl, ":")+1:])
	if rest != "{" {
		return 0, p.errAt(domain.ParseInvalidValue, idx,
			fmt.Sprintf("variable block must open with '{', got %q", rest))
	}

	i := idx + 1
	for ; i < len(p.lines); i++ {
		line := strings.TrimSpace(p.lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "}" || line == "}," {
			return i, nil
		}

		name, value, next, err := p.parseVarLine(line, i)
		if err != nil {
			return 0, err
		}
		if _, exists := dst[name]; exists {
			return 0, p.errAt(domain.ParseDuplicateVariable, i,
				fmt.Sprintf("duplicate variable %q", name))
		}
		dst[name] = value
		i = next
	}

	return 0, p.errAt(domain.ParseInvalidValue, idx, "unterminated variable block")
}

// parseVarLine parses one `name: value` declaration. A value of `{` opens a
// nested ordered mapping consumed up to its matching brace; the returned
// index points at the last consumed line.
func (p *Parser) parseVarLine(line string, idx int) (string, domain.Value, int, error) {
	name, raw, ok := strings.Cut(line, ":")
	if !ok {
		return "", domain.Value{}, 0, p.errAt(domain.ParseInvalidValue, idx,
			fmt.Sprintf("invalid variable declaration %q", line))
	}
	name = strings.TrimSpace(name)
	raw = strings.TrimSpace(raw)

	if raw == "{" {
		entries, next, err := p.parseNestedMap(idx + 1)
		if err != nil {
			return "", domain.Value{}, 0, err
		}
		return name, domain.MapValue(entries...), next, nil
	}

	value, err := p.parseScalar(raw, idx)
	if err != nil {
		return "", domain.Value{}, 0, err
	}
	return name, value, idx, nil
}

// parseNestedMap consumes entries of a nested block until its closing brace,
// preserving declaration order.
func (p *Parser) parseNestedMap(start int) ([]domain.MapEntry, int, error) {
	var entries []domain.MapEntry
	seen := map[string]bool{}

	for i := start; i < len(p.lines); i++ {
		line := strings.TrimSpace(p.lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "}" || line == "}," {
			return entries, i, nil
		}

		name, value, next, err := p.parseVarLine(line, i)
		if err != nil {
			return nil, 0, err
		}
		if seen[name] {
			return nil, 0, p.errAt(domain.ParseDuplicateVariable, i,
				fmt.Sprintf("duplicate variable %q", name))
		}
		seen[name] = true
		entries = append(entries, domain.MapEntry{Name: name, Value: value})
		i = next
	}

	return nil, 0, p.errAt(domain.ParseInvalidValue, start, "unterminated nested block")
}

// parseScalar decodes a single declared value: a quoted string, true/false,
// a number, or the empty mapping {}.
func (p *Parser) parseScalar(raw string, idx int) (domain.Value, error) {
	raw = strings.TrimSuffix(raw, ",")
	raw = strings.TrimSpace(raw)

	switch {
	case raw == "":
		return domain.EmptyValue(), nil
	case raw == "{}":
		return domain.MapValue(), nil
	case raw == "true":
		return domain.BoolValue(true), nil
	case raw == "false":
		return domain.BoolValue(false), nil
	case strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2:
		return domain.StringValue(raw[1 : len(raw)-1]), nil
	}

	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return domain.NumberValue(n), nil
	}

	return domain.Value{}, p.errAt(domain.ParseInvalidValue, idx,
		fmt.Sprintf("invalid value %q", raw))
}
