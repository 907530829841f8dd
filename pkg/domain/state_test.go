package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bramble/pkg/domain"
)

func entryDoc() *domain.Document {
	return &domain.Document{
		Name: "main.bdl",
		GlobalDefaults: map[string]domain.Value{
			"user_name": domain.StringValue(""),
			"score":     domain.NumberValue(0),
		},
		LocalDefaults: map[string]domain.Value{
			"greeted": domain.BoolValue(false),
		},
	}
}

func TestStateScoping(t *testing.T) {
	st := domain.NewState(entryDoc(), "start")

	// Locals shadow globals of the same name.
	st.SetLocal("score", domain.NumberValue(7))
	assert.Equal(t, "7", st.Get("score").Display())

	// Unknown names resolve to Empty, never an error.
	assert.Equal(t, domain.KindEmpty, st.Get("missing").Kind)

	require.NoError(t, st.SetGlobal("user_name", domain.StringValue("Alex")))
	assert.Equal(t, "Alex", st.Get("user_name").Display())
}

func TestStateGlobalWriteOutsideEntry(t *testing.T) {
	st := domain.NewState(entryDoc(), "start")
	st.EnterFile(&domain.Document{Name: "lib.bdl"}, "start")

	err := st.SetGlobal("score", domain.NumberValue(9))
	var scopeErr *domain.ScopeError
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, "score", scopeErr.Variable)
	assert.Equal(t, "lib.bdl", scopeErr.File)

	// The write was dropped, not applied.
	assert.Equal(t, "0", st.Get("score").Display())
}

func TestStateEnterFileResetsLocals(t *testing.T) {
	st := domain.NewState(entryDoc(), "start")
	st.SetLocal("greeted", domain.BoolValue(true))
	st.SetLocal("scratch", domain.StringValue("gone"))

	lib := &domain.Document{
		Name: "lib.bdl",
		LocalDefaults: map[string]domain.Value{
			"attempts": domain.NumberValue(0),
		},
	}
	st.EnterFile(lib, "start")

	assert.Equal(t, "lib.bdl", st.CurrentFile)
	assert.Equal(t, domain.KindEmpty, st.Get("greeted").Kind)
	assert.Equal(t, domain.KindEmpty, st.Get("scratch").Kind)
	assert.Equal(t, "0", st.Get("attempts").Display())

	// Globals survive the transfer.
	assert.Equal(t, "0", st.Get("score").Display())
}

func TestStateInterpolate(t *testing.T) {
	st := domain.NewState(entryDoc(), "start")
	require.NoError(t, st.SetGlobal("user_name", domain.StringValue("Alex")))

	assert.Equal(t, "Hello, Alex!", st.Interpolate("Hello, ${user_name}!"))
	assert.Equal(t, "Score: 0.", st.Interpolate("Score: ${score}."))

	// Unresolved names become the empty string.
	assert.Equal(t, "Hi !", st.Interpolate("Hi ${nobody}!"))

	// Unterminated tokens pass through verbatim.
	assert.Equal(t, "broken ${user_name", st.Interpolate("broken ${user_name"))

	// Multiple tokens on one line.
	assert.Equal(t, "Alex: 0", st.Interpolate("${user_name}: ${score}"))
}

func TestStateInputStaging(t *testing.T) {
	st := domain.NewState(entryDoc(), "start")

	_, ok := st.TakeInput()
	assert.False(t, ok)

	st.OfferInput("yes")
	line, ok := st.TakeInput()
	require.True(t, ok)
	assert.Equal(t, "yes", line)

	// Consuming is one-shot.
	_, ok = st.TakeInput()
	assert.False(t, ok)

	st.OfferInput("discarded")
	st.ClearInput()
	_, ok = st.TakeInput()
	assert.False(t, ok)
}
