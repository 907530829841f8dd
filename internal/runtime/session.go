package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/bramble/pkg/domain"
)

// Session drives one conversation. It owns its State exclusively: one input
// line is fully processed before the next is accepted, and neither Start nor
// Submit may be called concurrently.
type Session struct {
	engine *Engine
	state  *domain.State
}

// NewSession creates an unstarted session on the engine's entry document.
func (e *Engine) NewSession() *Session {
	return &Session{engine: e}
}

// State exposes the session snapshot. Callers must not retain it across
// goroutines.
func (s *Session) State() *domain.State { return s.state }

// Start loads the entry document, positions the session at the start node
// and renders until the first pause or exit. A failure to load or parse the
// entry file is fatal to the session.
func (s *Session) Start(ctx context.Context) (domain.Output, error) {
	var out domain.Output
	if s.state != nil {
		return out, fmt.Errorf("session already started")
	}

	e := s.engine
	doc, _, err := e.library.Resolve(e.library.Entry(), e.startNode)
	if err != nil {
		return out, err
	}

	s.state = domain.NewState(doc, e.startNode)
	e.emitNodeEnter(ctx, s.state)
	s.drive(ctx, &out)
	return out, nil
}

// Submit feeds one line of user input into the parked session. Depending on
// posture it either resumes a pending function call or matches the line
// against the current node's options. Unmatched input re-prompts and leaves
// the session (and every variable) untouched.
func (s *Session) Submit(ctx context.Context, line string) (domain.Output, error) {
	var out domain.Output
	if s.state == nil {
		return out, fmt.Errorf("session not started")
	}
	st := s.state
	e := s.engine

	if st.Status == domain.StatusExited {
		out.Exited = true
		return out, nil
	}
	if st.Status != domain.StatusAwaitingInput {
		return out, fmt.Errorf("session not awaiting input (status %s)", st.Status)
	}

	if st.PendingCall != nil {
		s.resumePendingCall(ctx, line, &out)
		return out, nil
	}

	_, node, err := e.library.Resolve(st.CurrentFile, st.CurrentNode)
	if err != nil {
		// The current position resolved when we entered it; losing it now
		// means the registry and session disagree. Fall back.
		e.warn(ctx, err)
		out.Append(e.fallbackMessage)
		e.enterFallback(ctx, st)
		s.drive(ctx, &out)
		return out, nil
	}

	branch, ok := matchOption(node, normalize(line))
	if !ok {
		out.Append(e.repromptMessage)
		out.AwaitingInput = true
		return out, nil
	}

	if err := e.transition(ctx, st, branch.Destination); err != nil {
		e.warn(ctx, err)
		out.Append(e.fallbackMessage)
		e.enterFallback(ctx, st)
	}
	s.drive(ctx, &out)
	return out, nil
}

// resumePendingCall re-invokes the call that parked the session, now with
// one line of input staged for it, then resumes rendering after the call
// element.
func (s *Session) resumePendingCall(ctx context.Context, line string, out *domain.Output) {
	st, e := s.state, s.engine

	st.OfferInput(line)
	call := st.PendingCall
	if e.dispatchCall(ctx, st, call) {
		st.PendingCall = nil
		st.ClearInput()
		st.Resume++
		st.Status = domain.StatusRendering
		s.drive(ctx, out)
		return
	}

	// The function still refuses to proceed; stay parked on the same call.
	st.ClearInput()
	out.AwaitingInput = true
}

// drive advances the session until it parks for input or exits: render the
// current node's content, fire the first truthy condition, repeat across
// transitions.
func (s *Session) drive(ctx context.Context, out *domain.Output) {
	st, e := s.state, s.engine

	for {
		switch st.Status {
		case domain.StatusExited:
			out.Exited = true
			return
		case domain.StatusAwaitingInput:
			out.AwaitingInput = true
			return
		}

		_, node, err := e.library.Resolve(st.CurrentFile, st.CurrentNode)
		if err != nil {
			e.warn(ctx, err)
			out.Append(e.fallbackMessage)
			e.enterFallback(ctx, st)
			continue
		}

		if parked := e.renderNode(ctx, st, node, out); parked {
			out.AwaitingInput = true
			return
		}

		if e.evaluateConditions(ctx, st, node, out) {
			continue
		}

		// No condition fired: wait for the user. A node without options
		// keeps re-prompting on every submitted line.
		st.Status = domain.StatusAwaitingInput
	}
}
