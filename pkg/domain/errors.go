package domain

import (
	"errors"
	"fmt"
)

// ParseCode classifies parse failures. A parse failure is always fatal to
// loading the document it occurred in.
type ParseCode string

const (
	ParseMissingMetadata     ParseCode = "missing_metadata"
	ParseGlobalOutsideEntry  ParseCode = "global_outside_entry"
	ParseDuplicateVariable   ParseCode = "duplicate_variable"
	ParseInvalidNodeName     ParseCode = "invalid_node_name"
	ParseDuplicateNode       ParseCode = "duplicate_node"
	ParseMalformedBranch     ParseCode = "malformed_branch"
	ParseMalformedCall       ParseCode = "malformed_call"
	ParseInvalidValue        ParseCode = "invalid_value"
	ParseInvalidDependency   ParseCode = "invalid_dependency"
	ParseDuplicateDependency ParseCode = "duplicate_dependency"
)

// ParseError reports a malformed script.
type ParseError struct {
	Code ParseCode
	File string
	Line int // 1-based source line, 0 when not tied to a single line
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s:%d [%s]: %s", e.File, e.Line, e.Code, e.Msg)
	}
	return fmt.Sprintf("parse error in %s [%s]: %s", e.File, e.Code, e.Msg)
}

// RefCode classifies reference failures. Except for MissingDependency during
// initial load, these are recoverable at the navigator via the fallback
// policy.
type RefCode string

const (
	RefUnknownNode       RefCode = "unknown_node"
	RefUnknownFile       RefCode = "unknown_file"
	RefMissingDependency RefCode = "missing_dependency"
	RefUnknownFunction   RefCode = "unknown_function"
)

// ReferenceError reports a name that did not resolve.
type ReferenceError struct {
	Code RefCode
	File string // file the reference targets (or was made from, for functions)
	Name string // node, dependency or function name
	Err  error  // underlying cause, if any
}

func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("reference error [%s]: %q", e.Code, e.Name)
	if e.File != "" {
		msg += " in " + e.File
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ReferenceError) Unwrap() error { return e.Err }

// ScopeError reports a global write attempted outside the entry file's
// execution context. It is recoverable: the write is dropped and the error
// surfaces to the host as a warning.
type ScopeError struct {
	Variable string
	File     string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("scope error: global write to %q outside entry file (from %s)", e.Variable, e.File)
}

// IsParseCode reports whether err is a ParseError carrying the given code.
func IsParseCode(err error, code ParseCode) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Code == code
}

// IsRefCode reports whether err is a ReferenceError carrying the given code.
func IsRefCode(err error, code RefCode) bool {
	var re *ReferenceError
	return errors.As(err, &re) && re.Code == code
}
