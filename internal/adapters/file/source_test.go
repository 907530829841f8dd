package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.bdl"), []byte("# Topic: t"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.bdl"), []byte("# Topic: u"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a script"), 0o644))
	return dir
}

func TestSourceLoad(t *testing.T) {
	src, err := NewSource(scriptDir(t))
	require.NoError(t, err)

	raw, err := src.Load("main.bdl")
	require.NoError(t, err)
	assert.Equal(t, "# Topic: t", string(raw))

	_, err = src.Load("missing.bdl")
	assert.Error(t, err)
}

func TestSourceRejectsPathTraversal(t *testing.T) {
	src, err := NewSource(scriptDir(t))
	require.NoError(t, err)

	for _, name := range []string{"../main.bdl", "sub/main.bdl", `sub\main.bdl`} {
		_, err := src.Load(name)
		assert.Error(t, err, name)
	}
}

func TestSourceListFiltersExtension(t *testing.T) {
	src, err := NewSource(scriptDir(t))
	require.NoError(t, err)

	names, err := src.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"lib.bdl", "main.bdl"}, names)
}

func TestNewSourceErrors(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)

	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	_, err = NewSource(f)
	assert.Error(t, err)
}
