package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePyproject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 60, cfg.ErrorLineLimit)
	assert.Equal(t, 50, cfg.WarningLineLimit)
	assert.True(t, cfg.EnableOutput)
	assert.Equal(t, []string{".git", ".venv", "node_modules"}, cfg.IgnoreDirectories)
	assert.Equal(t, []string{"conftest.py", "fixtures.py"}, cfg.IgnoreFiles)
}

func TestDefault_IndependentCopies(t *testing.T) {
	a := Default()
	a.IgnoreDirectories[0] = "changed"
	assert.Equal(t, ".git", Default().IgnoreDirectories[0])
}

func TestLoad_FullSection(t *testing.T) {
	path := writePyproject(t, `
[project]
name = "demo"

[tool.FunctionLengthAnalyzer]
error_line_limit = 10
warning_line_limit = 5
enable_output = false
ignore_directories = ["build"]
ignore_files = ["setup.py"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		ErrorLineLimit:    10,
		WarningLineLimit:  5,
		EnableOutput:      false,
		IgnoreDirectories: []string{"build"},
		IgnoreFiles:       []string{"setup.py"},
	}, cfg)
}

func TestLoad_MissingKeysFallBack(t *testing.T) {
	path := writePyproject(t, `
[tool.FunctionLengthAnalyzer]
error_line_limit = 80
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	want := Default()
	want.ErrorLineLimit = 80
	assert.Equal(t, want, cfg)
}

func TestLoad_EmptyListIsKept(t *testing.T) {
	path := writePyproject(t, `
[tool.FunctionLengthAnalyzer]
ignore_files = []
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.IgnoreFiles)
	assert.Equal(t, Default().IgnoreDirectories, cfg.IgnoreDirectories)
}

func TestLoad_Fallbacks(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
		},
		{
			name: "no section",
			path: func(t *testing.T) string {
				return writePyproject(t, "[tool.black]\nline-length = 88\n")
			},
			wantErr: ErrNoSection,
		},
		{
			name: "malformed toml",
			path: func(t *testing.T) string {
				return writePyproject(t, "[tool.FunctionLengthAnalyzer\nerror_line_limit = \n")
			},
		},
		{
			name: "wrong value type",
			path: func(t *testing.T) string {
				return writePyproject(t, "[tool.FunctionLengthAnalyzer]\nerror_line_limit = \"ten\"\n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path(t))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestApply(t *testing.T) {
	limit := 12
	off := false

	base := Default()
	got := base.Apply(Overrides{ErrorLineLimit: &limit, EnableOutput: &off})

	assert.Equal(t, 12, got.ErrorLineLimit)
	assert.Equal(t, 50, got.WarningLineLimit)
	assert.False(t, got.EnableOutput)

	// The receiver is untouched.
	assert.Equal(t, 60, base.ErrorLineLimit)
	assert.True(t, base.EnableOutput)
}

func TestApply_NoOverrides(t *testing.T) {
	assert.Equal(t, Default(), Default().Apply(Overrides{}))
}
