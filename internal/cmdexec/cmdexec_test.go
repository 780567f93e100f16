package cmdexec

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealCommander_SeparatesStreams(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	t.Parallel()

	c := &RealCommander{}
	out, err := c.Run(context.Background(), "", "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", string(out.Stdout))
	assert.Equal(t, "err\n", string(out.Stderr))
}

func TestRealCommander_RunsInDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	t.Parallel()

	dir := t.TempDir()
	c := &RealCommander{}
	out, err := c.Run(context.Background(), dir, "sh", "-c", "ls -a")
	require.NoError(t, err)
	assert.Contains(t, string(out.Stdout), ".")
}

func TestRealCommander_NonZeroExitKeepsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	t.Parallel()

	c := &RealCommander{}
	out, err := c.Run(context.Background(), "", "sh", "-c", "echo partial; exit 3")
	require.Error(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "partial\n", string(out.Stdout))
}

func TestRealCommander_LookPathMissing(t *testing.T) {
	t.Parallel()

	c := &RealCommander{}
	_, err := c.LookPath("envline-definitely-not-installed")
	assert.Error(t, err)
}
