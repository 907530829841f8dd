// Package runner hosts the execution loop of a Bramble session over plain
// text IO. It is the reference shell: it collects one line at a time, hands
// it to the session and prints whatever the engine emitted. Other frontends
// (chat, sockets) implement the same loop against ports.Session.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/bramble/internal/logging"
	"github.com/aretw0/bramble/pkg/domain"
	"github.com/aretw0/bramble/pkg/ports"
)

// ContentRenderer transforms a segment before it is written, allowing TUI
// rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Runner drives a session until it exits or input reaches EOF.
type Runner struct {
	input    io.Reader
	output   io.Writer
	renderer ContentRenderer
	logger   *slog.Logger
	prompt   string
}

// Option configures a Runner.
type Option func(*Runner)

// WithIO overrides the input and output streams (default Stdin/Stdout).
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *Runner) {
		if in != nil {
			r.input = in
		}
		if out != nil {
			r.output = out
		}
	}
}

// WithRenderer sets a content renderer applied to every segment.
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) { r.renderer = renderer }
}

// WithLogger sets the internal debug logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithPrompt overrides the input prompt (default "> ").
func WithPrompt(prompt string) Option {
	return func(r *Runner) { r.prompt = prompt }
}

// New creates a Runner with default Stdin/Stdout.
func New(opts ...Option) *Runner {
	r := &Runner{
		input:  os.Stdin,
		output: os.Stdout,
		logger: logging.NewNop(),
		prompt: "> ",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the session loop until the session exits or input ends.
// EOF on input is a clean teardown, not an error.
func (r *Runner) Run(ctx context.Context, session ports.Session) error {
	out, err := session.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	r.emit(out)

	reader := bufio.NewReader(r.input)
	for !out.Exited {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.output, r.prompt)
		line, err := reader.ReadString('\n')
		if err == io.EOF && line == "" {
			r.logger.Debug("input closed, ending session")
			return nil
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading input: %w", err)
		}

		out, err = session.Submit(ctx, strings.TrimRight(line, "\r\n"))
		if err != nil {
			return fmt.Errorf("submitting input: %w", err)
		}
		r.emit(out)
	}
	return nil
}

func (r *Runner) emit(out domain.Output) {
	for _, segment := range out.Segments {
		text := segment
		if r.renderer != nil {
			if rendered, err := r.renderer(segment); err == nil {
				text = rendered
			}
		}
		fmt.Fprintln(r.output, strings.TrimRight(text, "\n"))
	}
}
