package domain

import (
	"context"
	"time"
)

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventNodeEnter      EventType = "node_enter"
	EventNodeLeave      EventType = "node_leave"
	EventFunctionCall   EventType = "function_call"
	EventFunctionReturn EventType = "function_return"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// NodeEvent represents entry into or exit from a node.
type NodeEvent struct {
	EventBase
	File string `json:"file"`
	Node string `json:"node"`
}

// FunctionEvent represents a host function dispatch.
type FunctionEvent struct {
	EventBase
	File     string   `json:"file"`
	Node     string   `json:"node"`
	Function string   `json:"function"`
	Bindings []string `json:"bindings,omitempty"`
	Results  []Value  `json:"results,omitempty"`
	IsError  bool     `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability. All hooks are
// optional and invoked synchronously.
type LifecycleHooks struct {
	OnNodeEnter      func(context.Context, *NodeEvent)
	OnNodeLeave      func(context.Context, *NodeEvent)
	OnFunctionCall   func(context.Context, *FunctionEvent)
	OnFunctionReturn func(context.Context, *FunctionEvent)

	// OnWarning surfaces recoverable errors (scope violations, fallback
	// transitions) that do not stop the session.
	OnWarning func(context.Context, error)
}
