package domain

// Metadata is the required header block of every script file.
type Metadata struct {
	Topic       string   `json:"topic" yaml:"topic"`
	Description string   `json:"description" yaml:"description"`
	Author      string   `json:"author" yaml:"author"`
	Version     string   `json:"version" yaml:"version"`
	Required    []string `json:"required,omitempty" yaml:"required,omitempty"`
}

// Document is one parsed script file. Documents are immutable after parsing
// and safe to share read-only across sessions.
type Document struct {
	// Name is the file identifier the document was loaded under.
	Name string `json:"name" yaml:"name"`

	Metadata Metadata `json:"metadata" yaml:"metadata"`

	// DeclaresGlobal is true only for the designated entry file; only that
	// file may carry a $global_vars block.
	DeclaresGlobal bool `json:"declares_global,omitempty" yaml:"declares_global,omitempty"`

	// GlobalDefaults seeds the session-wide store. Populated only when
	// DeclaresGlobal is set.
	GlobalDefaults map[string]Value `json:"global_defaults,omitempty" yaml:"global_defaults,omitempty"`

	// LocalDefaults seeds the per-file store every time a session enters
	// this document.
	LocalDefaults map[string]Value `json:"local_defaults,omitempty" yaml:"local_defaults,omitempty"`

	Nodes map[string]*Node `json:"nodes" yaml:"nodes"`
}

// Node is a named unit of content and branches; the unit of navigation.
type Node struct {
	Name     string           `json:"name" yaml:"name"`
	Content  []ContentElement `json:"content,omitempty" yaml:"content,omitempty"`
	Branches []Branch         `json:"branches,omitempty" yaml:"branches,omitempty"`
}

// ContentKind discriminates node content elements.
type ContentKind string

const (
	// ContentText is a raw text run, possibly spanning several source lines
	// and carrying ${name} interpolation tokens.
	ContentText ContentKind = "text"
	// ContentCall invokes a host function and binds its results.
	ContentCall ContentKind = "call"
)

// ContentElement is one entry of a node's ordered content list.
type ContentElement struct {
	Kind ContentKind `json:"kind" yaml:"kind"`
	Text string      `json:"text,omitempty" yaml:"text,omitempty"`
	Call *Call       `json:"call,omitempty" yaml:"call,omitempty"`
}

// Call names a host capability and the ordered variables receiving its
// results.
type Call struct {
	Function string   `json:"function" yaml:"function"`
	Bindings []string `json:"bindings" yaml:"bindings"`
}

// BranchKind discriminates the two branch variants.
type BranchKind string

const (
	// BranchOption transitions when user input matches one of its keywords.
	BranchOption BranchKind = "option"
	// BranchCondition transitions immediately when its variable is truthy.
	BranchCondition BranchKind = "condition"
)

// Branch is one ordered exit from a node. Source order matters: conditions
// short-circuit in declaration order before any option is considered.
type Branch struct {
	Kind BranchKind `json:"kind" yaml:"kind"`

	// Keywords are the normalized (trimmed, case-folded) trigger tokens of
	// an option branch.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Variable is the checked name of a condition branch.
	Variable string `json:"variable,omitempty" yaml:"variable,omitempty"`

	Destination Destination `json:"destination" yaml:"destination"`
}

// Matches reports whether an already-normalized input token triggers this
// option branch.
func (b Branch) Matches(token string) bool {
	if b.Kind != BranchOption {
		return false
	}
	for _, kw := range b.Keywords {
		if kw == token {
			return true
		}
	}
	return false
}

// DestinationKind discriminates transition targets.
type DestinationKind string

const (
	// DestNode targets a node in the current file.
	DestNode DestinationKind = "node"
	// DestTransfer targets a node in another file; both expressions may
	// carry ${name} interpolation resolved at transition time.
	DestTransfer DestinationKind = "transfer"
	// DestExit terminates the session.
	DestExit DestinationKind = "exit"
	// DestDynamic reads the target verbatim from a variable's string value.
	DestDynamic DestinationKind = "dynamic"
)

// Destination is the target of a transition.
type Destination struct {
	Kind DestinationKind `json:"kind" yaml:"kind"`

	// Node is the literal target of a DestNode destination.
	Node string `json:"node,omitempty" yaml:"node,omitempty"`

	// FileExpr and NodeExpr are the two sides of a DestTransfer, prior to
	// interpolation.
	FileExpr string `json:"file_expr,omitempty" yaml:"file_expr,omitempty"`
	NodeExpr string `json:"node_expr,omitempty" yaml:"node_expr,omitempty"`

	// Variable names the source of a DestDynamic destination.
	Variable string `json:"variable,omitempty" yaml:"variable,omitempty"`
}
