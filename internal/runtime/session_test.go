package runtime

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bramble/internal/library"
	"github.com/aretw0/bramble/pkg/adapters/memory"
	"github.com/aretw0/bramble/pkg/domain"
	"github.com/aretw0/bramble/pkg/ports"
	"github.com/aretw0/bramble/pkg/registry"
)

const mainScript = `# Topic: Security Training
# Description: Entry flow
# Author: test
# Version: 1
# Required: passwords.bdl

$global_vars: {
	user_name: ""
	score: 0
}

@start
Welcome! What is your name?
!{getUserInput} : ~{input}
?{input} -> intro

@intro
Nice to meet you, ${input}!
{passwords, password} -> [passwords.bdl:start]
{quit} -> {exit}
`

const passwordsScript = `# Topic: Passwords
# Description: Password module
# Author: test
# Version: 1
# Required: main.bdl

$local_vars: {
	attempts: 0
}

@start
Type a candidate password.
!{analyzePassword} : ~{message} ~{next}
${message}
?{next} -> ${next}

@strong
Great password!
{back} -> [main.bdl:intro]
{quit} -> {exit}

@weak
Too weak, attempt ${attempts}.
{again} -> start
`

// getUserInput echoes one submitted line, refusing empty ones.
func getUserInput(_ context.Context, view ports.StateView) ([]domain.Value, error) {
	line, ok := view.TakeInput()
	if !ok || line == "" {
		return nil, ports.ErrAwaitInput
	}
	return []domain.Value{domain.StringValue(line)}, nil
}

// analyzePassword judges a submitted candidate, counting attempts in the
// local scope and steering the script through its dynamic condition.
func analyzePassword(_ context.Context, view ports.StateView) ([]domain.Value, error) {
	candidate, ok := view.TakeInput()
	if !ok {
		return nil, ports.ErrAwaitInput
	}
	view.SetLocal("attempts", domain.NumberValue(view.Get("attempts").Num+1))
	if len(candidate) >= 8 {
		return []domain.Value{domain.StringValue("Strong choice."), domain.StringValue("strong")}, nil
	}
	return []domain.Value{domain.StringValue("That one is guessable."), domain.StringValue("weak")}, nil
}

func trainingEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	lib := library.New(memory.NewSource(map[string]string{
		"main.bdl":      mainScript,
		"passwords.bdl": passwordsScript,
	}), "main.bdl")

	reg := registry.New()
	reg.Register("getUserInput", getUserInput)
	reg.Register("analyzePassword", analyzePassword)

	return NewEngine(lib, reg, opts...)
}

func TestSessionGreetingFlow(t *testing.T) {
	ctx := context.Background()
	sess := trainingEngine(t).NewSession()

	out, err := sess.Start(ctx)
	require.NoError(t, err)
	assert.True(t, out.AwaitingInput)
	require.Len(t, out.Segments, 1)
	assert.Equal(t, "Welcome! What is your name?", out.Segments[0])

	st := sess.State()
	assert.Equal(t, domain.StatusAwaitingInput, st.Status)
	require.NotNil(t, st.PendingCall)
	assert.Equal(t, "getUserInput", st.PendingCall.Function)

	// An empty line does not satisfy the pending call; the session stays
	// parked on it.
	out, err = sess.Submit(ctx, "")
	require.NoError(t, err)
	assert.True(t, out.AwaitingInput)
	assert.Empty(t, out.Segments)
	require.NotNil(t, sess.State().PendingCall)

	out, err = sess.Submit(ctx, "Alex")
	require.NoError(t, err)
	assert.True(t, out.AwaitingInput)
	require.Len(t, out.Segments, 1)
	assert.Equal(t, "Nice to meet you, Alex!", out.Segments[0])

	st = sess.State()
	assert.Nil(t, st.PendingCall)
	assert.Equal(t, "intro", st.CurrentNode)
	assert.Equal(t, "main.bdl", st.CurrentFile)
}

func TestSessionFileTransferResetsLocals(t *testing.T) {
	ctx := context.Background()
	sess := trainingEngine(t).NewSession()

	_, err := sess.Start(ctx)
	require.NoError(t, err)
	_, err = sess.Submit(ctx, "Alex")
	require.NoError(t, err)

	// Matching is case-insensitive and whitespace-tolerant.
	out, err := sess.Submit(ctx, "  PASSWORD  ")
	require.NoError(t, err)
	assert.True(t, out.AwaitingInput)
	require.Len(t, out.Segments, 1)
	assert.Equal(t, "Type a candidate password.", out.Segments[0])

	st := sess.State()
	assert.Equal(t, "passwords.bdl", st.CurrentFile)
	assert.Equal(t, "start", st.CurrentNode)

	// The entry file's `input` local is gone, the module's locals are
	// freshly seeded, and globals survive the transfer.
	assert.Equal(t, domain.KindEmpty, st.Get("input").Kind)
	assert.Equal(t, "0", st.Get("attempts").Display())
	assert.Equal(t, "0", st.Get("score").Display())
}

func TestSessionDynamicRouting(t *testing.T) {
	ctx := context.Background()
	sess := trainingEngine(t).NewSession()

	_, err := sess.Start(ctx)
	require.NoError(t, err)
	_, err = sess.Submit(ctx, "Alex")
	require.NoError(t, err)
	_, err = sess.Submit(ctx, "password")
	require.NoError(t, err)

	// A short candidate routes through ?{next} -> ${next} to @weak.
	out, err := sess.Submit(ctx, "cat")
	require.NoError(t, err)
	require.Len(t, out.Segments, 2)
	assert.Equal(t, "That one is guessable.", out.Segments[0])
	assert.Equal(t, "Too weak, attempt 1.", out.Segments[1])
	assert.Equal(t, "weak", sess.State().CurrentNode)

	// Retry, then a strong one lands on @strong.
	_, err = sess.Submit(ctx, "again")
	require.NoError(t, err)
	out, err = sess.Submit(ctx, "correct horse battery")
	require.NoError(t, err)
	require.Len(t, out.Segments, 2)
	assert.Equal(t, "Strong choice.", out.Segments[0])
	assert.Equal(t, "Great password!", out.Segments[1])
	assert.Equal(t, "strong", sess.State().CurrentNode)

	// And back across files to the entry's intro node.
	out, err = sess.Submit(ctx, "back")
	require.NoError(t, err)
	require.Len(t, out.Segments, 1)
	assert.Equal(t, "main.bdl", sess.State().CurrentFile)
	assert.Equal(t, "intro", sess.State().CurrentNode)
}

func TestSessionRepromptLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	sess := trainingEngine(t).NewSession()

	_, err := sess.Start(ctx)
	require.NoError(t, err)
	_, err = sess.Submit(ctx, "Alex")
	require.NoError(t, err)

	before := len(sess.State().History)

	out, err := sess.Submit(ctx, "no such option")
	require.NoError(t, err)
	assert.True(t, out.AwaitingInput)
	require.Len(t, out.Segments, 1)
	assert.Contains(t, out.Segments[0], "didn't catch that")

	st := sess.State()
	assert.Equal(t, "intro", st.CurrentNode)
	assert.Equal(t, domain.StatusAwaitingInput, st.Status)
	assert.Len(t, st.History, before)
}

func TestSessionExit(t *testing.T) {
	ctx := context.Background()
	sess := trainingEngine(t).NewSession()

	_, err := sess.Start(ctx)
	require.NoError(t, err)
	_, err = sess.Submit(ctx, "Alex")
	require.NoError(t, err)

	out, err := sess.Submit(ctx, "quit")
	require.NoError(t, err)
	assert.True(t, out.Exited)
	assert.Equal(t, domain.StatusExited, sess.State().Status)

	// Further input is a no-op on an exited session.
	out, err = sess.Submit(ctx, "anything")
	require.NoError(t, err)
	assert.True(t, out.Exited)
	assert.Empty(t, out.Segments)
}

func TestSessionStartTwice(t *testing.T) {
	ctx := context.Background()
	sess := trainingEngine(t).NewSession()

	_, err := sess.Start(ctx)
	require.NoError(t, err)
	_, err = sess.Start(ctx)
	assert.Error(t, err)
}

func TestSessionSubmitBeforeStart(t *testing.T) {
	sess := trainingEngine(t).NewSession()
	_, err := sess.Submit(context.Background(), "hello")
	assert.Error(t, err)
}

func TestConditionShortCircuit(t *testing.T) {
	lib := library.New(memory.NewSource(map[string]string{
		"main.bdl": `# Topic: t
# Description: d
# Author: a
# Version: 1

$local_vars: {
	a: false
	b: true
	c: true
}

@start
Choosing.
?{a} -> wrong
{keyword} -> wrong
?{b} -> right
?{c} -> wrong

@right
Landed.

@wrong
Should not be here.
`,
	}), "main.bdl")

	sess := NewEngine(lib, registry.New()).NewSession()
	out, err := sess.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "right", sess.State().CurrentNode)
	assert.Equal(t, []string{"Choosing.", "Landed."}, out.Segments)
}

func TestCallFailureBindsFallback(t *testing.T) {
	lib := library.New(memory.NewSource(map[string]string{
		"main.bdl": `# Topic: t
# Description: d
# Author: a
# Version: 1

@start
Before the call.
!{flaky} : ~{message} ~{next}
${message}
?{next} -> ${next}

@safe
You are safe now.
`,
	}), "main.bdl")

	reg := registry.New()
	reg.Register("flaky", func(context.Context, ports.StateView) ([]domain.Value, error) {
		return nil, fmt.Errorf("backend unavailable")
	})

	var warnings []error
	engine := NewEngine(lib, reg,
		WithFallback("main.bdl", "safe"),
		WithFallbackMessage("Recovering."),
		WithLifecycleHooks(domain.LifecycleHooks{
			OnWarning: func(_ context.Context, err error) { warnings = append(warnings, err) },
		}),
	)

	out, err := engine.NewSession().Start(context.Background())
	require.NoError(t, err)

	// The failed call binds the fallback message and destination; the
	// script's own dynamic condition performs the routing.
	assert.Equal(t, []string{"Before the call.", "Recovering.", "You are safe now."}, out.Segments)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Error(), "backend unavailable")
}

func TestUnknownFunctionBindsFallback(t *testing.T) {
	lib := library.New(memory.NewSource(map[string]string{
		"main.bdl": `# Topic: t
# Description: d
# Author: a
# Version: 1

@start
!{unregistered} : ~{message} ~{next}
${message}
?{next} -> ${next}

@safe
Recovered.
`,
	}), "main.bdl")

	engine := NewEngine(lib, registry.New(), WithFallback("main.bdl", "safe"))
	sess := engine.NewSession()
	out, err := sess.Start(context.Background())
	require.NoError(t, err)

	require.Len(t, out.Segments, 2)
	assert.Equal(t, "Recovered.", out.Segments[1])
	assert.Equal(t, "safe", sess.State().CurrentNode)
}

func TestBrokenDestinationFallsBack(t *testing.T) {
	lib := library.New(memory.NewSource(map[string]string{
		"main.bdl": `# Topic: t
# Description: d
# Author: a
# Version: 1

@start
Pick one.
{leap} -> missing_node

@safe
Back on track.
`,
	}), "main.bdl")

	engine := NewEngine(lib, registry.New(),
		WithFallback("main.bdl", "safe"),
		WithFallbackMessage("Recovering."),
	)
	sess := engine.NewSession()

	_, err := sess.Start(context.Background())
	require.NoError(t, err)

	out, err := sess.Submit(context.Background(), "leap")
	require.NoError(t, err)
	assert.Equal(t, []string{"Recovering.", "Back on track."}, out.Segments)
	assert.Equal(t, "safe", sess.State().CurrentNode)
}

func TestGlobalWriteFromLibraryFileIsDropped(t *testing.T) {
	lib := library.New(memory.NewSource(map[string]string{
		"main.bdl": `# Topic: t
# Description: d
# Author: a
# Version: 1
# Required: lib.bdl

$global_vars: {
	score: 0
}

@start
Go.
{go} -> [lib.bdl:start]
`,
		"lib.bdl": `# Topic: t
# Description: d
# Author: a
# Version: 1

@start
!{bumpScore} : ~{ack}
Score is ${score}.
`,
	}), "main.bdl")

	reg := registry.New()
	reg.Register("bumpScore", func(_ context.Context, view ports.StateView) ([]domain.Value, error) {
		// The write is rejected outside the entry file; the function keeps
		// going regardless.
		_ = view.SetGlobal("score", domain.NumberValue(10))
		return []domain.Value{domain.StringValue("ok")}, nil
	})

	var warnings []error
	engine := NewEngine(lib, reg, WithLifecycleHooks(domain.LifecycleHooks{
		OnWarning: func(_ context.Context, err error) { warnings = append(warnings, err) },
	}))
	sess := engine.NewSession()

	_, err := sess.Start(context.Background())
	require.NoError(t, err)
	out, err := sess.Submit(context.Background(), "go")
	require.NoError(t, err)

	require.Len(t, out.Segments, 1)
	assert.Equal(t, "Score is 0.", out.Segments[0])

	require.Len(t, warnings, 1)
	var scopeErr *domain.ScopeError
	assert.True(t, errors.As(warnings[0], &scopeErr))
}

func TestShortResultListPadsEmpty(t *testing.T) {
	lib := library.New(memory.NewSource(map[string]string{
		"main.bdl": `# Topic: t
# Description: d
# Author: a
# Version: 1

@start
!{partial} : ~{a} ~{b}
A is '${a}' and B is '${b}'.
`,
	}), "main.bdl")

	reg := registry.New()
	reg.Register("partial", func(context.Context, ports.StateView) ([]domain.Value, error) {
		return []domain.Value{domain.StringValue("only one")}, nil
	})

	out, err := NewEngine(lib, reg).NewSession().Start(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Segments, 1)
	assert.Equal(t, "A is 'only one' and B is ''.", out.Segments[0])
}
