package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandTilde(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"bare tilde", "~", "/home/test"},
		{"tilde prefix", "~/.local/share/direnv", "/home/test/.local/share/direnv"},
		{"absolute", "/var/lib/direnv", "/var/lib/direnv"},
		{"other user", "~alice/x", "~alice/x"},
		{"relative", "data/direnv", "data/direnv"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, filepath.FromSlash(tt.want), ExpandTilde(filepath.FromSlash(tt.path), filepath.FromSlash("/home/test")))
		})
	}
}

func TestContractHome(t *testing.T) {
	t.Parallel()

	home := filepath.FromSlash("/home/test")
	assert.Equal(t, "~", ContractHome(home, home))
	assert.Equal(t, filepath.FromSlash("~/work/.envrc"), ContractHome(filepath.FromSlash("/home/test/work/.envrc"), home))
	assert.Equal(t, filepath.FromSlash("/home/tester/.envrc"), ContractHome(filepath.FromSlash("/home/tester/.envrc"), home))
	assert.Equal(t, filepath.FromSlash("/srv/.envrc"), ContractHome(filepath.FromSlash("/srv/.envrc"), ""))
}

func TestDefaultConfigPath(t *testing.T) {
	t.Parallel()

	p := DefaultConfigPath()
	assert.Equal(t, ConfigFileName, filepath.Base(p))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(p)))
}
