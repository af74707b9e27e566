package pywalk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("\n"), 0644))
	}
}

func TestEnumerate_FiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a.py",
		filepath.Join("pkg", "b.py"),
		"README.md",
		filepath.Join("pkg", "data.json"),
	)

	files, err := Enumerate([]string{root}, nil, "py")

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.py"),
		filepath.Join(root, "pkg", "b.py"),
	}, files)
}

func TestEnumerate_ExplicitFileRoot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.py", "b.py")

	files, err := Enumerate([]string{filepath.Join(root, "a.py")}, nil, "py")

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.py")}, files)
}

func TestEnumerate_MixedRootsDeduplicated(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.py", filepath.Join("pkg", "b.py"))

	files, err := Enumerate([]string{filepath.Join(root, "a.py"), root}, nil, "py")

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.py"),
		filepath.Join(root, "pkg", "b.py"),
	}, files)
}

func TestEnumerate_IgnorePatterns(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"keep.py",
		filepath.Join("build", "gen.py"),
		filepath.Join("pkg", "keep_test.py"),
	)

	// A bare directory name skips the whole subtree; a glob matches paths.
	files, err := Enumerate([]string{root}, []string{"build", "**/*_test.py"}, "py")

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "keep.py")}, files)
}

func TestEnumerate_MissingRoot(t *testing.T) {
	_, err := Enumerate([]string{filepath.Join(t.TempDir(), "nope")}, nil, "py")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestEnumerate_StableOrder(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "c.py", "a.py", filepath.Join("b", "x.py"))

	first, err := Enumerate([]string{root}, nil, "py")
	require.NoError(t, err)
	second, err := Enumerate([]string{root}, nil, "py")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
