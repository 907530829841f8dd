package ports

import (
	"context"

	"github.com/aretw0/bramble/pkg/domain"
)

// Session is the driving interface a shell uses to run one conversation.
// One input line is fully processed before the next is accepted; neither
// method may be called concurrently.
type Session interface {
	// Start renders from the entry document's start node and returns
	// everything emitted up to the first pause or exit.
	Start(ctx context.Context) (domain.Output, error)

	// Submit feeds one line of user input into the parked session.
	Submit(ctx context.Context, line string) (domain.Output, error)

	// State exposes the session snapshot for inspection.
	State() *domain.State
}
