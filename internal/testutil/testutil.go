// Package testutil provides common test helpers for the envline project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	return tempFile(t, "config.toml", content)
}

// TempYAMLConfigFile creates a temporary config.yaml with the given content.
func TempYAMLConfigFile(t *testing.T, content string) string {
	t.Helper()

	return tempFile(t, "config.yaml", content)
}

func tempFile(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("tempFile: write failed: %v", err)
	}

	return path
}

// SetupTestConfig creates a config.toml overriding every direnv message,
// so rendered output shows which value was picked. Returns the file path.
func SetupTestConfig(t *testing.T) string {
	t.Helper()

	content := `[direnv]
format = "$symbol$rc_path $loaded/$allowed"
symbol = "D "
style = "bold red"
allowed_msg = "ok"
not_allowed_msg = "pending"
denied_msg = "blocked"
loaded_msg = "on"
unloaded_msg = "off"
command_timeout = 250
`
	return TempConfigFile(t, content)
}

// WriteFile writes content to path on fs, creating parent directories.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("WriteFile: mkdir failed: %v", err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: write failed: %v", err)
	}
}

// WriteRC writes a .envrc into dir and returns its path.
func WriteRC(t *testing.T, fs afero.Fs, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ".envrc")
	WriteFile(t, fs, path, content)
	return path
}

// Touch creates an empty file (e.g. an allow/deny marker) at path.
func Touch(t *testing.T, fs afero.Fs, path string) {
	t.Helper()

	WriteFile(t, fs, path, "")
}
