package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/funclen/internal/adapters/treesitter"
	"github.com/corey/funclen/internal/config"
)

func settings() config.Config {
	cfg := config.Default()
	cfg.ErrorLineLimit = 10
	cfg.WarningLineLimit = 5
	return cfg
}

// pyFunc returns a Python function named name spanning exactly lines lines (lines >= 2).
func pyFunc(name string, lines int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "def %s():\n", name)
	for i := 1; i < lines-1; i++ {
		fmt.Fprintf(&sb, "    v%d = %d\n", i, i)
	}
	sb.WriteString("    return None\n")
	return sb.String()
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestApp(t *testing.T, cfg config.Config, ignoreTest bool) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := New(Config{
		Settings:   cfg,
		IgnoreTest: ignoreTest,
		Parser:     treesitter.NewParser(),
		Out:        &out,
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)
	return a, &out
}

func TestNew_RequiresParser(t *testing.T) {
	_, err := New(Config{Settings: config.Default()})
	assert.Error(t, err)
}

func TestRun_NoPaths(t *testing.T) {
	a, out := newTestApp(t, settings(), false)
	assert.False(t, a.Run(nil))
	assert.Empty(t, out.String())
}

func TestRun_FilesAndDirectories(t *testing.T) {
	root := t.TempDir()
	single := writeFile(t, filepath.Join(root, "single.py"), pyFunc("warned", 6))
	dir := filepath.Join(root, "project")
	deep := writeFile(t, filepath.Join(dir, "pkg", "mod.py"), pyFunc("failing", 10))
	missing := filepath.Join(root, "does-not-exist")

	a, out := newTestApp(t, settings(), false)
	tooLong := a.Run([]string{single, missing, dir})

	assert.True(t, tooLong)
	assert.Equal(t, fmt.Sprintf(
		"(warning) The function 'warned' in file '%s' has 6 lines.\n"+
			"(error) The function 'failing' in file '%s' has 10 lines.\n",
		single, deep), out.String())
}

func TestRun_WarningOnlyExitsClean(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "w.py"), pyFunc("f", 6))
	a, out := newTestApp(t, settings(), false)
	assert.False(t, a.Run([]string{path}))
	assert.Contains(t, out.String(), "(warning)")
}

func TestRun_ParseErrorDoesNotFail(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "bad.py"), "def (:\n")
	a, out := newTestApp(t, settings(), false)
	assert.False(t, a.Run([]string{path}))
	assert.Contains(t, out.String(), fmt.Sprintf("The file '%s' has errors", path))
}

func TestRun_IgnoreTest(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "test_x.py"), pyFunc("test_big", 20))

	a, out := newTestApp(t, settings(), true)
	assert.False(t, a.Run([]string{path}))
	assert.Empty(t, out.String())

	a, _ = newTestApp(t, settings(), false)
	assert.True(t, a.Run([]string{path}))
}

func TestRun_FreshAnalyzerPerRun(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "again.py"), pyFunc("f", 12))
	a, out := newTestApp(t, settings(), false)

	assert.True(t, a.Run([]string{path}))
	first := out.String()
	out.Reset()
	assert.True(t, a.Run([]string{path}))
	assert.Equal(t, first, out.String())
}
