package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/envline/internal/cli"
	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/setup"
	"github.com/hbjs97/envline/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// acceptAll keeps every suggested value and confirms saving.
type acceptAll struct {
	confirm bool
	actions int
}

func (f *acceptAll) RunActionSelect() (setup.Action, error) {
	f.actions++
	return setup.ActionEdit, nil
}

func (f *acceptAll) RunFormatSelect(current string) (string, error) { return current, nil }

func (f *acceptAll) RunModuleForm(d config.Direnv) (config.Direnv, error) { return d, nil }

func (f *acceptAll) RunConfirm(string) (bool, error) { return f.confirm, nil }

func TestSetupCmd_HasForceFlag(t *testing.T) {
	app := &cli.App{
		Commander: testutil.NewFakeCommander(),
		CfgPath:   "/tmp/test-config.toml",
	}
	cmd := app.NewRootCmd()

	setupCmd, _, err := cmd.Find([]string{"setup"})
	require.NoError(t, err)
	assert.NotNil(t, setupCmd)

	flag := setupCmd.Flags().Lookup("force")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestSetupCmd_WritesConfig(t *testing.T) {
	app := newTestApp(t, testutil.NewFakeCommander(), afero.NewMemMapFs(), "/", nil)
	app.CfgPath = filepath.Join(t.TempDir(), "envline", "config.toml")
	app.FormRunner = &acceptAll{confirm: true}

	out, _, err := execute(t, app, "setup")
	require.NoError(t, err)
	assert.Contains(t, out, "설정 파일이 저장되었습니다")

	cfg, err := config.Load(app.CfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestSetupCmd_ForceStartsFromScratch(t *testing.T) {
	app := newTestApp(t, testutil.NewFakeCommander(), afero.NewMemMapFs(), "/", nil)
	app.CfgPath = testutil.SetupTestConfig(t)
	runner := &acceptAll{confirm: true}
	app.FormRunner = runner

	_, _, err := execute(t, app, "setup", "--force")
	require.NoError(t, err)
	assert.Zero(t, runner.actions)

	cfg, err := config.Load(app.CfgPath)
	require.NoError(t, err)
	assert.Equal(t, "direnv ", cfg.Direnv.Symbol)
}

func TestSetupCmd_DeclinedKeepsNothing(t *testing.T) {
	app := newTestApp(t, testutil.NewFakeCommander(), afero.NewMemMapFs(), "/", nil)
	app.FormRunner = &acceptAll{confirm: false}

	_, _, err := execute(t, app, "setup")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCanceled, cli.MapExitCode(err))
	_, statErr := os.Stat(app.CfgPath)
	assert.True(t, os.IsNotExist(statErr))
}
