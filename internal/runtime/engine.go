// Package runtime implements the navigator: the state machine that renders
// nodes, dispatches host function calls, matches branches against input and
// moves a session between nodes and files.
package runtime

import (
	"context"
	"log/slog"

	"github.com/aretw0/bramble/internal/library"
	"github.com/aretw0/bramble/internal/logging"
	"github.com/aretw0/bramble/pkg/domain"
	"github.com/aretw0/bramble/pkg/ports"
)

const defaultStartNode = "start"

// Engine drives sessions over a shared document library. The engine itself
// is stateless and safe to share; each session owns its State exclusively.
type Engine struct {
	library    *library.Library
	dispatcher ports.FunctionDispatcher
	logger     *slog.Logger
	hooks      domain.LifecycleHooks

	startNode string

	// Fallback policy applied on function failure or unresolvable
	// destinations (tunable, not pinned by the language).
	fallbackFile    string
	fallbackNode    string
	fallbackMessage string

	repromptMessage string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger. Default is a no-op logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) { e.hooks = hooks }
}

// WithStartNode overrides the designated start node (default "start").
func WithStartNode(node string) EngineOption {
	return func(e *Engine) { e.startNode = node }
}

// WithFallback overrides the fallback destination taken when a function call
// fails or a destination cannot be resolved. Defaults to the entry file's
// start node.
func WithFallback(file, node string) EngineOption {
	return func(e *Engine) {
		e.fallbackFile = file
		e.fallbackNode = node
	}
}

// WithFallbackMessage overrides the message bound and emitted on fallback.
func WithFallbackMessage(msg string) EngineOption {
	return func(e *Engine) { e.fallbackMessage = msg }
}

// WithRepromptMessage overrides the message emitted when input matches no
// option.
func WithRepromptMessage(msg string) EngineOption {
	return func(e *Engine) { e.repromptMessage = msg }
}

// NewEngine creates an engine over lib, dispatching host calls through
// dispatcher.
func NewEngine(lib *library.Library, dispatcher ports.FunctionDispatcher, opts ...EngineOption) *Engine {
	e := &Engine{
		library:         lib,
		dispatcher:      dispatcher,
		logger:          logging.NewNop(),
		startNode:       defaultStartNode,
		fallbackMessage: "Something went wrong. Let's pick up from a safe place.",
		repromptMessage: "Sorry, I didn't catch that. Please answer with one of the offered keywords.",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fallbackFile == "" {
		e.fallbackFile = lib.Entry()
	}
	if e.fallbackNode == "" {
		e.fallbackNode = e.startNode
	}
	return e
}

// Library exposes the shared document registry (used by validation and
// introspection tooling).
func (e *Engine) Library() *library.Library { return e.library }

func (e *Engine) warn(ctx context.Context, err error) {
	e.logger.Warn("session warning", "err", err)
	if e.hooks.OnWarning != nil {
		e.hooks.OnWarning(ctx, err)
	}
}

// stateView is the window handed to host functions. It relays scope
// violations to the host as warnings while still returning them to the
// function, and dropping the write.
type stateView struct {
	ctx    context.Context
	engine *Engine
	state  *domain.State
}

func (v *stateView) Get(name string) domain.Value { return v.state.Get(name) }

func (v *stateView) SetLocal(name string, value domain.Value) { v.state.SetLocal(name, value) }

func (v *stateView) SetGlobal(name string, value domain.Value) error {
	err := v.state.SetGlobal(name, value)
	if err != nil {
		v.engine.warn(v.ctx, err)
	}
	return err
}

func (v *stateView) TakeInput() (string, bool) { return v.state.TakeInput() }
