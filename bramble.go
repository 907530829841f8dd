package bramble

import (
	"context"
	"log/slog"
	"sort"

	"github.com/aretw0/bramble/internal/library"
	"github.com/aretw0/bramble/internal/runtime"
	"github.com/aretw0/bramble/pkg/domain"
	"github.com/aretw0/bramble/pkg/ports"
	"github.com/aretw0/bramble/pkg/registry"
)

// Version is the library version reported by the CLI.
var Version = "0.1.0"

// DefaultEntryFile is the script loaded when no entry is configured.
const DefaultEntryFile = "main.bdl"

// Engine is the high-level entry point for the Bramble library.
// It wraps the internal runtime and provides a simplified API for hosts.
// One Engine (and its document registry) may serve many concurrent sessions;
// each Session must stay confined to a single goroutine.
type Engine struct {
	runtime *runtime.Engine
	library *library.Library
	funcs   *registry.Registry

	entryFile   string
	runtimeOpts []runtime.EngineOption
	dispatcher  ports.FunctionDispatcher
}

// Option configures the Engine.
type Option func(*Engine)

// WithEntryFile designates the entry script (default "main.bdl"). Only the
// entry file may declare $global_vars.
func WithEntryFile(name string) Option {
	return func(e *Engine) { e.entryFile = name }
}

// WithStartNode configures the initial node (default "start").
func WithStartNode(node string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithStartNode(node))
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithLifecycleHooks(hooks))
	}
}

// WithFallback sets the destination taken when a function call fails or a
// destination cannot be resolved (default: the entry file's start node).
func WithFallback(file, node string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithFallback(file, node))
	}
}

// WithFallbackMessage sets the message bound and emitted on fallback.
func WithFallbackMessage(msg string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithFallbackMessage(msg))
	}
}

// WithRepromptMessage sets the message emitted when input matches no option.
func WithRepromptMessage(msg string) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithRepromptMessage(msg))
	}
}

// WithDispatcher replaces the built-in function registry with a custom
// dispatcher. Register is a no-op once this option is used.
func WithDispatcher(d ports.FunctionDispatcher) Option {
	return func(e *Engine) { e.dispatcher = d }
}

// New initializes an Engine over the given script source.
func New(source ports.ScriptSource, opts ...Option) (*Engine, error) {
	eng := &Engine{
		entryFile: DefaultEntryFile,
		funcs:     registry.New(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.dispatcher == nil {
		eng.dispatcher = eng.funcs
	}

	eng.library = library.New(source, eng.entryFile)
	eng.runtime = runtime.NewEngine(eng.library, eng.dispatcher, eng.runtimeOpts...)
	return eng, nil
}

// Register adds a host function under the given name.
func (e *Engine) Register(name string, fn ports.Function) {
	e.funcs.Register(name, fn)
}

// NewSession creates an unstarted session.
func (e *Engine) NewSession() ports.Session {
	return e.runtime.NewSession()
}

// EntryFile returns the designated entry script name.
func (e *Engine) EntryFile() string { return e.entryFile }

// Inspect loads the entry document (and, through its Required list, the
// dependency closure) and returns the parsed documents sorted by name.
func (e *Engine) Inspect() ([]*domain.Document, error) {
	if _, err := e.library.Load(e.entryFile); err != nil {
		return nil, err
	}
	names := e.library.Loaded()
	sort.Strings(names)

	docs := make([]*domain.Document, 0, len(names))
	for _, name := range names {
		doc, err := e.library.Load(name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// InputFunc returns a host function that captures one line of user input as
// a string value. It parks the session until a line is submitted, then binds
// it to the call's first binding name.
func InputFunc() ports.Function {
	return func(ctx context.Context, view ports.StateView) ([]domain.Value, error) {
		line, ok := view.TakeInput()
		if !ok {
			return nil, ports.ErrAwaitInput
		}
		return []domain.Value{domain.StringValue(line)}, nil
	}
}
