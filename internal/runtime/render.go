package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/bramble/pkg/domain"
	"github.com/aretw0/bramble/pkg/ports"
)

// renderNode emits a node's content elements in order, starting at the
// session's resume offset. Text runs are interpolated and appended to out;
// calls are dispatched and their results bound. It returns true when a call
// is waiting for user input and the session parked mid-node.
func (e *Engine) renderNode(ctx context.Context, st *domain.State, node *domain.Node, out *domain.Output) (parked bool) {
	for i := st.Resume; i < len(node.Content); i++ {
		elem := node.Content[i]
		switch elem.Kind {
		case domain.ContentText:
			out.Append(st.Interpolate(elem.Text))

		case domain.ContentCall:
			if !e.dispatchCall(ctx, st, elem.Call) {
				st.PendingCall = elem.Call
				st.Resume = i
				st.Status = domain.StatusAwaitingInput
				return true
			}
		}
	}
	st.Resume = 0
	return false
}

// dispatchCall invokes the named host function and binds its ordered results
// to the call's binding names via the local scope. Shorter result lists pad
// the remaining bindings with Empty; extra results are discarded.
//
// On failure (including an unregistered name) the fixed fallback policy
// applies: the first binding receives the fallback message, the second the
// fallback node reference, and rendering continues so the script's own
// `?{next} -> ${next}` branch can route the session. Returns false only when
// the call parked waiting for input.
func (e *Engine) dispatchCall(ctx context.Context, st *domain.State, call *domain.Call) bool {
	e.emitFunctionCall(ctx, st, call)

	view := &stateView{ctx: ctx, engine: e, state: st}
	results, err := e.dispatcher.Dispatch(ctx, call.Function, view)

	if errors.Is(err, ports.ErrAwaitInput) {
		return false
	}
	if err != nil {
		e.warn(ctx, err)
		e.emitFunctionReturn(ctx, st, call, nil, true)
		e.applyFallbackBindings(st, call)
		return true
	}

	for i, name := range call.Bindings {
		if i < len(results) {
			st.SetLocal(name, results[i])
		} else {
			st.SetLocal(name, domain.EmptyValue())
		}
	}
	e.emitFunctionReturn(ctx, st, call, results, false)
	return true
}

// applyFallbackBindings implements the fixed failure policy: the first
// binding (conventionally the message) receives the fallback message and the
// second (conventionally the destination) receives the fallback node
// reference.
func (e *Engine) applyFallbackBindings(st *domain.State, call *domain.Call) {
	if len(call.Bindings) >= 1 {
		st.SetLocal(call.Bindings[0], domain.StringValue(e.fallbackMessage))
	}
	if len(call.Bindings) >= 2 {
		st.SetLocal(call.Bindings[1], domain.StringValue(e.fallbackFile+":"+e.fallbackNode))
	}
}

func (e *Engine) emitNodeEnter(ctx context.Context, st *domain.State) {
	if e.hooks.OnNodeEnter == nil {
		return
	}
	e.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeEnter},
		File:      st.CurrentFile,
		Node:      st.CurrentNode,
	})
}

func (e *Engine) emitNodeLeave(ctx context.Context, st *domain.State) {
	if e.hooks.OnNodeLeave == nil {
		return
	}
	e.hooks.OnNodeLeave(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeLeave},
		File:      st.CurrentFile,
		Node:      st.CurrentNode,
	})
}

func (e *Engine) emitFunctionCall(ctx context.Context, st *domain.State, call *domain.Call) {
	if e.hooks.OnFunctionCall == nil {
		return
	}
	e.hooks.OnFunctionCall(ctx, &domain.FunctionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFunctionCall},
		File:      st.CurrentFile,
		Node:      st.CurrentNode,
		Function:  call.Function,
		Bindings:  call.Bindings,
	})
}

func (e *Engine) emitFunctionReturn(ctx context.Context, st *domain.State, call *domain.Call, results []domain.Value, isErr bool) {
	if e.hooks.OnFunctionReturn == nil {
		return
	}
	e.hooks.OnFunctionReturn(ctx, &domain.FunctionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFunctionReturn},
		File:      st.CurrentFile,
		Node:      st.CurrentNode,
		Function:  call.Function,
		Bindings:  call.Bindings,
		Results:   results,
		IsError:   isErr,
	})
}
