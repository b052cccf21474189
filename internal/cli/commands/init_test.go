package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/greeter/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string)
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			args:      []string{},
			wantFiles: []string{"greeter.yaml", ".gitignore", "web", "web/README.md"},
		},
		{
			name:      "init into new subdirectory",
			args:      []string{"sub/project"},
			wantFiles: []string{"sub/project/greeter.yaml", "sub/project/web"},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "greeter.yaml"), []byte("existing"), 0o600))
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "greeter.yaml"), []byte("existing"), 0o600))
			},
			args:      []string{"--force"},
			wantFiles: []string{"greeter.yaml", "web"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)
			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			out, err := runCommand(t, NewInitCommand(), markdownConfig(), tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "greeter project initialized!")

			for _, f := range tt.wantFiles {
				_, err := os.Stat(filepath.Join(tmpDir, f))
				assert.NoError(t, err, "expected %s to exist", f)
			}
		})
	}
}

func TestInitProducesLoadableConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GREETER_SESSION_SECRET", "")

	_, err := runCommand(t, NewInitCommand(), markdownConfig())
	require.NoError(t, err)

	cfg, used, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "greeter.yaml"), used)
	assert.Equal(t, "World", cfg.Name)
	assert.Equal(t, filepath.Join(dir, "web"), cfg.Serve.WasmDir)
	assert.Empty(t, cfg.Serve.SessionSecret, "unset secret variable falls back to a generated key")
}

func TestInit_SubstitutesProjectName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GREETER_SESSION_SECRET", "")

	_, err := runCommand(t, NewInitCommand(), markdownConfig(), "My Greeter")
	require.NoError(t, err)

	cfg, _, err := config.Load(filepath.Join(dir, "My Greeter", "greeter.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "My Greeter", cfg.Project)
	assert.Equal(t, "World", cfg.Name)
}

func TestInit_WasmTemplate(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := runCommand(t, NewInitCommand(), markdownConfig(), "hello-wasm", "--template", "wasm")
	require.NoError(t, err)
	assert.Contains(t, out, "open /wasm/")

	project := filepath.Join(dir, "hello-wasm")
	for _, f := range []string{"greeter.yaml", ".gitignore", "go.mod", "main.go", "README.md", "web/index.html"} {
		_, err := os.Stat(filepath.Join(project, f))
		assert.NoError(t, err, "expected %s to exist", f)
	}
	for _, f := range []string{"go.mod.tmpl", "main.go.tmpl", "web/index.html.tmpl"} {
		_, err := os.Stat(filepath.Join(project, f))
		assert.True(t, os.IsNotExist(err), "%s should have been renamed", f)
	}

	goMod := readFile(t, filepath.Join(project, "go.mod"))
	assert.True(t, strings.HasPrefix(goMod, "module hello-wasm\n"), "go.mod: %q", goMod)

	mainGo := readFile(t, filepath.Join(project, "main.go"))
	assert.Contains(t, mainGo, "//go:build js && wasm")
	assert.Contains(t, mainGo, "github.com/leapstack-labs/greeter/pkg/greet")
	assert.Contains(t, mainGo, "greet.Greet(name, alert)")
	assert.Contains(t, mainGo, "// Command hello-wasm greets")

	page := readFile(t, filepath.Join(project, "web", "index.html"))
	assert.Contains(t, page, "<title>hello-wasm</title>")
	assert.Contains(t, page, `fetch("greeter.wasm")`)
	assert.Contains(t, page, "window.greet(")

	assert.Contains(t, readFile(t, filepath.Join(project, "greeter.yaml")), `project: "hello-wasm"`)
}

func TestInit_UnknownTemplate(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := runCommand(t, NewInitCommand(), markdownConfig(), "--template", "react")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown template "react"`)
	assert.Contains(t, err.Error(), "minimal, wasm")

	_, statErr := os.Stat(filepath.Join(dir, "greeter.yaml"))
	assert.True(t, os.IsNotExist(statErr), "nothing is written for an unknown template")
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello-wasm", "hello-wasm"},
		{"My Greeter", "my-greeter"},
		{"  spaced   out ", "spaced-out"},
		{"weird!@#name", "weirdname"},
		{".hidden", "hidden"},
		{"!!!", "greeter-app"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, moduleName(tt.in))
		})
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}
