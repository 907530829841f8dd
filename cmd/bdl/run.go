package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/bramble"
	"github.com/aretw0/bramble/internal/adapters/file"
	"github.com/aretw0/bramble/internal/logging"
	"github.com/aretw0/bramble/internal/presentation/tui"
	"github.com/aretw0/bramble/pkg/domain"
	"github.com/aretw0/bramble/pkg/ports"
	"github.com/aretw0/bramble/pkg/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive dialogue session",
	Long:  `Loads the entry script from the script directory and drives a session on the terminal until the dialogue exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		entry, _ := cmd.Flags().GetString("entry")
		start, _ := cmd.Flags().GetString("start")
		debug, _ := cmd.Flags().GetBool("debug")
		return runSession(dir, entry, start, debug)
	},
}

func init() {
	runCmd.Flags().Bool("debug", false, "Enable debug logging and lifecycle tracing")
	rootCmd.AddCommand(runCmd)
}

func runSession(dir, entry, start string, debug bool) error {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		tui.PrintBanner(bramble.Version)
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	source, err := file.NewSource(dir)
	if err != nil {
		return err
	}

	opts := []bramble.Option{
		bramble.WithEntryFile(entry),
		bramble.WithStartNode(start),
		bramble.WithLogger(logger),
	}
	if debug {
		opts = append(opts, bramble.WithLifecycleHooks(debugHooks(logger)))
	}

	engine, err := bramble.New(source, opts...)
	if err != nil {
		return fmt.Errorf("initializing engine: %w", err)
	}
	registerHostFunctions(engine)

	runnerOpts := []runner.Option{runner.WithLogger(logger)}
	if interactive {
		runnerOpts = append(runnerOpts, runner.WithRenderer(tui.NewRenderer()))
	}

	return runner.New(runnerOpts...).Run(context.Background(), engine.NewSession())
}

// registerHostFunctions wires the capabilities the bundled example scripts
// call. Hosts embedding the library register their own set.
func registerHostFunctions(engine *bramble.Engine) {
	engine.Register("getUserInput", bramble.InputFunc())

	engine.Register("getCurrentTime", func(ctx context.Context, view ports.StateView) ([]domain.Value, error) {
		return []domain.Value{domain.StringValue(time.Now().Format("15:04"))}, nil
	})

	engine.Register("analyzePassword", analyzePassword)
}

// analyzePassword is a deliberately simple strength heuristic for the
// example scripts: it reads the candidate from the `candidate` variable and
// returns a verdict message plus a next-node reference.
func analyzePassword(ctx context.Context, view ports.StateView) ([]domain.Value, error) {
	candidate := view.Get("candidate").Display()
	if candidate == "" {
		line, ok := view.TakeInput()
		if !ok {
			return nil, ports.ErrAwaitInput
		}
		candidate = line
	}

	score := 0
	if len(candidate) >= 12 {
		score++
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range candidate {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	for _, ok := range []bool{hasUpper, hasDigit, hasSymbol} {
		if ok {
			score++
		}
	}

	verdict := "That password is weak. Length and variety are your friends."
	if score >= 3 {
		verdict = "That's a strong password. Nice work."
	} else if score == 2 {
		verdict = "Not bad, but it could be stronger. Try adding length or symbols."
	}

	next := "verdict"
	if strings.Contains(strings.ToLower(candidate), "password") {
		verdict = "Never build a password around the word 'password'."
		next = "try_again"
	}

	return []domain.Value{
		domain.StringValue(verdict),
		domain.StringValue(next),
	}, nil
}

func debugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, ev *domain.NodeEvent) {
			logger.Debug("node enter", "file", ev.File, "node", ev.Node)
		},
		OnNodeLeave: func(ctx context.Context, ev *domain.NodeEvent) {
			logger.Debug("node leave", "file", ev.File, "node", ev.Node)
		},
		OnFunctionCall: func(ctx context.Context, ev *domain.FunctionEvent) {
			logger.Debug("function call", "function", ev.Function, "bindings", ev.Bindings)
		},
		OnFunctionReturn: func(ctx context.Context, ev *domain.FunctionEvent) {
			logger.Debug("function return", "function", ev.Function, "is_error", ev.IsError)
		},
		OnWarning: func(ctx context.Context, err error) {
			logger.Warn("session warning", "err", err)
		},
	}
}
