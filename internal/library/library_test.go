package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/bramble/pkg/adapters/memory"
	"github.com/aretw0/bramble/pkg/domain"
)

func script(body string) string {
	return "# Topic: t\n# Description: d\n# Author: a\n# Version: 1\n" + body
}

func scriptWith(required, body string) string {
	return "# Topic: t\n# Description: d\n# Author: a\n# Version: 1\n# Required: " + required + "\n" + body
}

func TestLoadMemoizes(t *testing.T) {
	lib := New(memory.NewSource(map[string]string{
		"main.bdl": script("\n@start\nHi.\n"),
	}), "main.bdl")

	first, err := lib.Load("main.bdl")
	require.NoError(t, err)
	second, err := lib.Load("main.bdl")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"main.bdl"}, lib.Loaded())
}

func TestLoadRecursiveRequired(t *testing.T) {
	lib := New(memory.NewSource(map[string]string{
		"main.bdl": scriptWith("a.bdl", "\n@start\nHi.\n"),
		"a.bdl":    scriptWith("b.bdl", "\n@start\nA.\n"),
		"b.bdl":    script("\n@start\nB.\n"),
	}), "main.bdl")

	_, err := lib.Load("main.bdl")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.bdl", "b.bdl", "main.bdl"}, lib.Loaded())
}

func TestLoadToleratesRequireCycles(t *testing.T) {
	lib := New(memory.NewSource(map[string]string{
		"main.bdl": scriptWith("lib.bdl", "\n@start\nHi.\n"),
		"lib.bdl":  scriptWith("main.bdl", "\n@start\nLib.\n"),
	}), "main.bdl")

	doc, err := lib.Load("main.bdl")
	require.NoError(t, err)
	assert.Equal(t, "main.bdl", doc.Name)
	assert.Equal(t, []string{"lib.bdl", "main.bdl"}, lib.Loaded())
}

func TestLoadMissingDependency(t *testing.T) {
	lib := New(memory.NewSource(map[string]string{
		"main.bdl": scriptWith("gone.bdl", "\n@start\nHi.\n"),
	}), "main.bdl")

	_, err := lib.Load("main.bdl")
	var refErr *domain.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, domain.RefMissingDependency, refErr.Code)
	assert.Equal(t, "main.bdl", refErr.File)
	assert.Equal(t, "gone.bdl", refErr.Name)

	// The failed load is not left in the cache.
	assert.Empty(t, lib.Loaded())
}

func TestLoadUnknownFile(t *testing.T) {
	lib := New(memory.NewSource(map[string]string{}), "main.bdl")

	_, err := lib.Load("main.bdl")
	var refErr *domain.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, domain.RefUnknownFile, refErr.Code)
}

func TestEntryGlobalsOnlyForEntry(t *testing.T) {
	lib := New(memory.NewSource(map[string]string{
		"main.bdl": script("\n$global_vars: {\n\tx: 1\n}\n\n@start\nHi.\n"),
		"lib.bdl":  script("\n$global_vars: {\n\ty: 2\n}\n\n@start\nLib.\n"),
	}), "main.bdl")

	_, err := lib.Load("main.bdl")
	require.NoError(t, err)

	// The same declaration in a non-entry file is a parse error.
	_, err = lib.Load("lib.bdl")
	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, domain.ParseGlobalOutsideEntry, perr.Code)
}

func TestResolve(t *testing.T) {
	lib := New(memory.NewSource(map[string]string{
		"main.bdl": script("\n@start\nHi.\n\n@end\nBye.\n"),
	}), "main.bdl")

	doc, node, err := lib.Resolve("main.bdl", "end")
	require.NoError(t, err)
	assert.Equal(t, "main.bdl", doc.Name)
	assert.Equal(t, "end", node.Name)

	_, _, err = lib.Resolve("main.bdl", "missing")
	var refErr *domain.ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, domain.RefUnknownNode, refErr.Code)
	assert.Equal(t, "missing", refErr.Name)
}
