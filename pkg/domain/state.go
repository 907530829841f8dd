package domain

import "strings"

// SessionStatus defines the current mode of the navigator.
type SessionStatus string

const (
	// StatusRendering means the engine is emitting node content.
	StatusRendering SessionStatus = "rendering"
	// StatusAwaitingInput means the session is parked until the host submits
	// a line, either for option matching or for a pending function call.
	StatusAwaitingInput SessionStatus = "awaiting_input"
	// StatusTransferring means a cross-file transition is in progress.
	StatusTransferring SessionStatus = "transferring"
	// StatusExited is the terminal state.
	StatusExited SessionStatus = "exited"
)

// State is the mutable snapshot of one session. It is exclusively owned by
// that session and must never be shared between goroutines.
type State struct {
	EntryFile   string
	CurrentFile string
	CurrentNode string
	Status      SessionStatus

	// Globals lives for the whole session, seeded once from the entry
	// document's defaults.
	Globals map[string]Value

	// Locals is reinitialized from the current document's defaults every
	// time the session changes file.
	Locals map[string]Value

	// PendingCall is set while a function call waits for user input; Resume
	// is the content index of that call in the current node.
	PendingCall *Call
	Resume      int

	// History tracks the visited file:node path.
	History []string

	input    string
	hasInput bool
}

// NewState creates a session positioned at startNode of the entry document,
// seeding both stores from its declarations.
func NewState(entry *Document, startNode string) *State {
	s := &State{
		EntryFile:   entry.Name,
		CurrentFile: entry.Name,
		CurrentNode: startNode,
		Status:      StatusRendering,
		Globals:     make(map[string]Value),
		Locals:      make(map[string]Value),
	}
	for k, v := range entry.GlobalDefaults {
		s.Globals[k] = v
	}
	for k, v := range entry.LocalDefaults {
		s.Locals[k] = v
	}
	s.History = append(s.History, entry.Name+":"+startNode)
	return s
}

// Get resolves a variable, local scope first, then global. Unresolved names
// yield Empty, never an error.
func (s *State) Get(name string) Value {
	if v, ok := s.Locals[name]; ok {
		return v
	}
	if v, ok := s.Globals[name]; ok {
		return v
	}
	return EmptyValue()
}

// SetLocal writes to the per-file scope. Always permitted.
func (s *State) SetLocal(name string, v Value) {
	s.Locals[name] = v
}

// SetGlobal writes to the session-wide scope. Permitted only while the
// session executes the entry file; elsewhere the write is dropped and a
// ScopeError is returned for the host to surface.
func (s *State) SetGlobal(name string, v Value) error {
	if s.CurrentFile != s.EntryFile {
		return &ScopeError{Variable: name, File: s.CurrentFile}
	}
	s.Globals[name] = v
	return nil
}

// EnterFile repositions the session into doc, discarding all local writes
// and reseeding the local scope from the document's defaults. The global
// store is untouched.
func (s *State) EnterFile(doc *Document, node string) {
	s.CurrentFile = doc.Name
	s.CurrentNode = node
	s.Locals = make(map[string]Value)
	for k, v := range doc.LocalDefaults {
		s.Locals[k] = v
	}
}

// Interpolate substitutes every ${name} token in text with the display form
// of the variable's value. Malformed (unterminated) tokens are left verbatim.
func (s *State) Interpolate(text string) string {
	var sb strings.Builder
	for {
		start := strings.Index(text, "${")
		if start < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		end := strings.Index(text[start:], "}")
		if end < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		sb.WriteString(text[:start])
		name := text[start+2 : start+end]
		sb.WriteString(s.Get(name).Display())
		text = text[start+end+1:]
	}
}

// OfferInput stages one submitted line for consumption by a pending call.
func (s *State) OfferInput(line string) {
	s.input = line
	s.hasInput = true
}

// TakeInput consumes the staged input line, if any.
func (s *State) TakeInput() (string, bool) {
	if !s.hasInput {
		return "", false
	}
	line := s.input
	s.input, s.hasInput = "", false
	return line, true
}

// ClearInput drops any staged input without consuming it.
func (s *State) ClearInput() {
	s.input, s.hasInput = "", false
}
