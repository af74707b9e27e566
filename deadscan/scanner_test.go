package deadscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/deadfile/config"
)

// writeTree creates a project root with pyproject.toml plus the given files.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[project]\n"), 0644))

	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestScan_EndToEnd(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "import json\n\nif __name__ == \"__main__\":\n    print(1)\n",
	})

	report, err := NewScanner(config.Default()).Scan([]string{root}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, report.Dead)
	assert.Equal(t, 2, report.ScannedFiles)
	assert.Empty(t, report.Warnings)
}

func TestScan_ImportedFileIsLive(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "import a\n\nif __name__ == \"__main__\":\n    print(a.x)\n",
	})

	report, err := NewScanner(config.Default()).Scan([]string{root}, nil)

	require.NoError(t, err)
	assert.Empty(t, report.Dead)
}

func TestScan_InitializerNeverReportedDead(t *testing.T) {
	root := writeTree(t, map[string]string{
		filepath.Join("pkg", "__init__.py"): "",
		"main.py":                           "if __name__ == '__main__':\n    pass\n",
	})

	report, err := NewScanner(config.Default()).Scan([]string{root}, nil)

	require.NoError(t, err)
	assert.Empty(t, report.Dead)
}

func TestScan_PackageImportKeepsInitializerAlive(t *testing.T) {
	root := writeTree(t, map[string]string{
		filepath.Join("pkg", "__init__.py"): "",
		filepath.Join("pkg", "mod.py"):      "y = 2\n",
		"main.py":                           "import pkg\nfrom pkg import mod\n\nif __name__ == '__main__':\n    pass\n",
	})

	report, err := NewScanner(config.Default()).Scan([]string{root}, nil)

	require.NoError(t, err)
	assert.Empty(t, report.Dead)
}

func TestScan_RelativeImportKeepsSiblingAlive(t *testing.T) {
	root := writeTree(t, map[string]string{
		filepath.Join("pkg", "__init__.py"): "",
		filepath.Join("pkg", "used.py"):     "z = 3\n",
		filepath.Join("pkg", "unused.py"):   "z = 4\n",
		filepath.Join("pkg", "app.py"):      "from . import used\n\nif __name__ == '__main__':\n    pass\n",
	})

	report, err := NewScanner(config.Default()).Scan([]string{root}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("pkg", "unused.py")}, report.Dead)
}

func TestScan_TargetScopeNarrowerThanProject(t *testing.T) {
	root := writeTree(t, map[string]string{
		"stale.py":                      "a = 1\n",
		filepath.Join("sub", "dead.py"): "b = 2\n",
		filepath.Join("sub", "used.py"): "c = 3\n",
		"main.py":                       "from sub import used\n\nif __name__ == '__main__':\n    pass\n",
	})

	// Only sub/ is in scope, so stale.py is not reported even though the
	// whole project's import graph says nobody imports it.
	report, err := NewScanner(config.Default()).Scan([]string{filepath.Join(root, "sub")}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("sub", "dead.py")}, report.Dead)
	assert.Equal(t, 4, report.ScannedFiles)
}

func TestScan_UnparseableFileIsAbsorbed(t *testing.T) {
	root := writeTree(t, map[string]string{
		"broken.py": "def broken(:\n    pass\n",
		"a.py":      "x = 1\n",
		"b.py":      "import a\n\nif __name__ == '__main__':\n    pass\n",
	})

	report, err := NewScanner(config.Default()).Scan([]string{root}, nil)

	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "broken.py")
	// broken.py contributes no imports but is still a candidate.
	assert.Equal(t, []string{"broken.py"}, report.Dead)
}

func TestScan_VanishedFileIsSkippedWithWarning(t *testing.T) {
	root := writeTree(t, map[string]string{
		"gone.py": "x = 1\n",
		"main.py": "if __name__ == '__main__':\n    pass\n",
	})

	// gone.py exists at enumeration time but vanishes before it is read.
	reader := func(path string) ([]byte, error) {
		if filepath.Base(path) == "gone.py" {
			return nil, os.ErrNotExist
		}
		return os.ReadFile(path)
	}
	report, err := NewScannerWithReader(config.Default(), reader).Scan([]string{root}, nil)

	require.NoError(t, err)
	assert.NotContains(t, report.Dead, "gone.py")
	require.Len(t, report.Warnings, 2)
	for _, warning := range report.Warnings {
		assert.Contains(t, warning, "gone.py")
		assert.Contains(t, warning, "vanished")
	}
}

func TestScan_UnreadableFileStaysACandidate(t *testing.T) {
	root := writeTree(t, map[string]string{
		"locked.py": "x = 1\n",
		"main.py":   "if __name__ == '__main__':\n    pass\n",
	})

	reader := func(path string) ([]byte, error) {
		if filepath.Base(path) == "locked.py" {
			return nil, os.ErrPermission
		}
		return os.ReadFile(path)
	}
	report, err := NewScannerWithReader(config.Default(), reader).Scan([]string{root}, nil)

	require.NoError(t, err)
	// Unlike a vanished file, a read failure is reported but the file stays
	// a candidate; with no importers it is still dead.
	assert.Contains(t, report.Dead, "locked.py")
	require.Len(t, report.Warnings, 2)
	for _, warning := range report.Warnings {
		assert.Contains(t, warning, "failed to read")
		assert.Contains(t, warning, "locked.py")
	}
}

func TestScan_IgnorePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		filepath.Join("build", "gen.py"): "g = 1\n",
		"main.py":                        "if __name__ == '__main__':\n    pass\n",
	})

	report, err := NewScanner(config.Default()).Scan([]string{root}, []string{"build"})

	require.NoError(t, err)
	assert.Empty(t, report.Dead)
	assert.Equal(t, 1, report.ScannedFiles)
}

func TestScan_DeterministicAcrossRuns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py":                          "x = 1\n",
		filepath.Join("p", "b.py"):      "y = 2\n",
		filepath.Join("p", "c.py"):      "z = 3\n",
		filepath.Join("q", "d.py"):      "w = 4\n",
		filepath.Join("q", "r", "e.py"): "v = 5\n",
	})
	scanner := NewScanner(config.Default())

	first, err := scanner.Scan([]string{root}, nil)
	require.NoError(t, err)
	second, err := scanner.Scan([]string{root}, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Dead, second.Dead)
	assert.Equal(t, first.ScannedFiles, second.ScannedFiles)
}

func TestScan_MissingTargetIsFatal(t *testing.T) {
	_, err := NewScanner(config.Default()).Scan([]string{filepath.Join(t.TempDir(), "nope")}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestScan_ImporterGraphIsQueryable(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "import a\n\nif __name__ == '__main__':\n    pass\n",
	})

	report, err := NewScanner(config.Default()).Scan([]string{root}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"b.py"}, report.Graph.Importers("a"))
}
