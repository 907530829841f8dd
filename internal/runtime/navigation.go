package runtime

import (
	"context"
	"strings"

	"github.com/aretw0/bramble/pkg/domain"
)

// normalize prepares user input or a keyword for matching: trimmed and
// case-folded.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// transition moves the session to dest. Interpolation on transfer
// expressions and dynamic variables happens here, at transition time.
// A ReferenceError is returned when the target cannot be resolved; the
// caller decides whether the fallback policy applies.
func (e *Engine) transition(ctx context.Context, st *domain.State, dest domain.Destination) error {
	switch dest.Kind {
	case domain.DestExit:
		e.emitNodeLeave(ctx, st)
		st.Status = domain.StatusExited
		return nil

	case domain.DestNode:
		return e.moveTo(ctx, st, st.CurrentFile, dest.Node)

	case domain.DestTransfer:
		st.Status = domain.StatusTransferring
		file := st.Interpolate(dest.FileExpr)
		node := st.Interpolate(dest.NodeExpr)
		return e.moveTo(ctx, st, file, node)

	case domain.DestDynamic:
		// The variable's display string is re-parsed as `file:node` or a
		// bare node reference.
		ref := st.Get(dest.Variable).Display()
		if file, node, ok := strings.Cut(ref, ":"); ok {
			st.Status = domain.StatusTransferring
			return e.moveTo(ctx, st, strings.TrimSpace(file), strings.TrimSpace(node))
		}
		return e.moveTo(ctx, st, st.CurrentFile, strings.TrimSpace(ref))

	default:
		return &domain.ReferenceError{Code: domain.RefUnknownNode, File: st.CurrentFile, Name: ""}
	}
}

// moveTo resolves (file, node) through the library and repositions the
// session. Entering a different file reinitializes the local scope from that
// document's defaults; the global scope is untouched.
func (e *Engine) moveTo(ctx context.Context, st *domain.State, file, node string) error {
	doc, _, err := e.library.Resolve(file, node)
	if err != nil {
		return err
	}

	e.emitNodeLeave(ctx, st)
	if doc.Name != st.CurrentFile {
		st.EnterFile(doc, node)
	} else {
		st.CurrentNode = node
	}
	st.Status = domain.StatusRendering
	st.Resume = 0
	st.History = append(st.History, doc.Name+":"+node)
	e.emitNodeEnter(ctx, st)
	return nil
}

// enterFallback applies the configured fallback destination after a failed
// call or unresolvable transition. If the fallback itself cannot be reached,
// or the session already sits on it, the session exits instead of looping.
func (e *Engine) enterFallback(ctx context.Context, st *domain.State) {
	if st.CurrentFile == e.fallbackFile && st.CurrentNode == e.fallbackNode {
		e.logger.Error("fallback node unreachable or looping, exiting session",
			"file", e.fallbackFile, "node", e.fallbackNode)
		st.Status = domain.StatusExited
		return
	}
	if err := e.moveTo(ctx, st, e.fallbackFile, e.fallbackNode); err != nil {
		e.logger.Error("fallback destination failed to resolve, exiting session", "err", err)
		st.Status = domain.StatusExited
	}
}

// evaluateConditions walks the node's branches in source order and fires the
// first condition whose variable is truthy. Options are skipped here; they
// only react to input. Returns true when a transition (or exit) happened.
func (e *Engine) evaluateConditions(ctx context.Context, st *domain.State, node *domain.Node, out *domain.Output) bool {
	for _, branch := range node.Branches {
		if branch.Kind != domain.BranchCondition {
			continue
		}
		if !st.Get(branch.Variable).Truthy() {
			continue
		}
		if err := e.transition(ctx, st, branch.Destination); err != nil {
			e.warn(ctx, err)
			out.Append(e.fallbackMessage)
			e.enterFallback(ctx, st)
		}
		return true
	}
	return false
}

// matchOption finds the first option branch, in source order, whose keyword
// set contains the normalized input token.
func matchOption(node *domain.Node, token string) (domain.Branch, bool) {
	for _, branch := range node.Branches {
		if branch.Matches(token) {
			return branch, true
		}
	}
	return domain.Branch{}, false
}
