package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hbjs97/envline/internal/cli"
	"github.com/hbjs97/envline/internal/direnv"
	"github.com/hbjs97/envline/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	home      = "/home/test"
	dataDir   = "/home/test/.local/share/direnv"
	statusCmd = "direnv status --json"
)

// newTestApp creates an App rooted at cwd with an in-memory filesystem.
func newTestApp(t *testing.T, fc *testutil.FakeCommander, fs afero.Fs, cwd string, env map[string]string) *cli.App {
	t.Helper()
	return &cli.App{
		Commander: fc,
		CfgPath:   filepath.Join(t.TempDir(), "config.toml"),
		Fs:        fs,
		Env: func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		},
		Getwd: func() (string, error) { return cwd, nil },
		Home:  home,
	}
}

// execute runs the root command and returns stdout, stderr and the error.
func execute(t *testing.T, app *cli.App, args ...string) (string, string, error) {
	t.Helper()

	cmd := app.NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// --- prompt ---

func TestPromptCmd_FromStatusOutput(t *testing.T) {
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, testutil.StatusJSON(
		&testutil.RC{Allowed: 2, Path: "/work/.envrc"},
		&testutil.RC{Allowed: 2, Path: "/work/.envrc"},
	), nil)
	app := newTestApp(t, fc, afero.NewMemMapFs(), "/work", nil)

	out, _, err := execute(t, app, "--color", "never", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "direnv loaded/denied ", out)
	assert.Equal(t, []string{"/work"}, fc.Dirs)
}

func TestPromptCmd_FallbackToFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	rc := testutil.WriteRC(t, fs, "/work", "layout go\n")
	testutil.Touch(t, fs, filepath.Join(dataDir, "allow", direnv.AllowFingerprint(rc, []byte("layout go\n"))))
	require.NoError(t, fs.MkdirAll("/work/cmd/app", 0755))

	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, "", errors.New("executable file not found"))
	app := newTestApp(t, fc, fs, "/work/cmd/app", map[string]string{direnv.EnvDirenvFile: rc})

	out, _, err := execute(t, app, "--color", "never", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "direnv loaded/allowed ", out)
}

func TestPromptCmd_DirFlag(t *testing.T) {
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, testutil.StatusJSON(&testutil.RC{Allowed: 1, Path: "/other/.envrc"}, nil), nil)
	app := newTestApp(t, fc, afero.NewMemMapFs(), "/work", nil)

	out, _, err := execute(t, app, "--color", "never", "prompt", "--dir", "/other")
	require.NoError(t, err)
	assert.Equal(t, "direnv not loaded/not allowed ", out)
	assert.Equal(t, []string{"/other"}, fc.Dirs)
}

func TestPromptCmd_RelativeDirFlagResolvedAgainstCwd(t *testing.T) {
	fs := afero.NewMemMapFs()
	rc := testutil.WriteRC(t, fs, "/work", "layout go\n")
	testutil.Touch(t, fs, filepath.Join(dataDir, "allow", direnv.AllowFingerprint(rc, []byte("layout go\n"))))
	require.NoError(t, fs.MkdirAll("/work/pkg/sub", 0755))

	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, "", errors.New("executable file not found"))
	app := newTestApp(t, fc, fs, "/work/pkg", nil)

	out, _, err := execute(t, app, "--color", "never", "prompt", "--dir", "sub")
	require.NoError(t, err)
	assert.Equal(t, "direnv not loaded/allowed ", out)
	assert.Equal(t, []string{"/work/pkg/sub"}, fc.Dirs)

	_, _, err = execute(t, app, "--color", "never", "prompt", "--dir", "../pkg/./sub/")
	require.NoError(t, err)
	assert.Equal(t, "/work/pkg/sub", fc.Dirs[1])
}

func TestPromptCmd_NotApplicablePrintsNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0755))
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, testutil.LegacyStatus(nil, nil), nil)

	out, _, err := execute(t, newTestApp(t, fc, fs, "/empty", nil), "prompt")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPromptCmd_ErrorsDegradeToEmptyOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteRC(t, fs, "/work", "")
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, "", errors.New("boom"))

	// 로드된 .envrc를 읽을 수 없으면 판정 전체가 실패한다.
	app := newTestApp(t, fc, fs, "/work", map[string]string{direnv.EnvDirenvFile: "/gone/.envrc"})
	out, stderr, err := execute(t, app, "prompt")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "프롬프트 세그먼트 생략")
}

func TestPromptCmd_InvalidConfigDegrades(t *testing.T) {
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, testutil.StatusJSON(&testutil.RC{Allowed: 0, Path: "/work/.envrc"}, nil), nil)
	app := newTestApp(t, fc, afero.NewMemMapFs(), "/work", nil)
	app.CfgPath = testutil.TempConfigFile(t, "[direnv]\nformat = \"[$symbol\"\n")

	out, _, err := execute(t, app, "prompt")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, fc.Called("direnv"))
}

func TestPromptCmd_CustomConfig(t *testing.T) {
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, testutil.StatusJSON(
		&testutil.RC{Allowed: 1, Path: "/work/.envrc"},
		&testutil.RC{Allowed: 0, Path: "/work/.envrc"},
	), nil)
	app := newTestApp(t, fc, afero.NewMemMapFs(), "/work", nil)
	app.CfgPath = testutil.SetupTestConfig(t)

	out, _, err := execute(t, app, "--color", "never", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "D /work/.envrc on/pending", out)
}

func TestPromptCmd_Disabled(t *testing.T) {
	fc := testutil.NewFakeCommander()
	app := newTestApp(t, fc, afero.NewMemMapFs(), "/work", nil)
	app.CfgPath = testutil.TempConfigFile(t, "[direnv]\ndisabled = true\n")

	out, _, err := execute(t, app, "prompt")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.False(t, fc.Called("direnv"))
}

func TestPromptCmd_ColorAlways(t *testing.T) {
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, testutil.StatusJSON(&testutil.RC{Allowed: 0, Path: "/work/.envrc"}, nil), nil)

	out, _, err := execute(t, newTestApp(t, fc, afero.NewMemMapFs(), "/work", nil), "--color", "always", "prompt")
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "direnv not loaded/allowed")
}

func TestRootCmd_InvalidColorFlag(t *testing.T) {
	app := newTestApp(t, testutil.NewFakeCommander(), afero.NewMemMapFs(), "/", nil)
	_, _, err := execute(t, app, "--color", "rainbow", "prompt")
	assert.Error(t, err)
}

// --- status ---

func TestStatusCmd_Text(t *testing.T) {
	fs := afero.NewMemMapFs()
	rc := testutil.WriteRC(t, fs, "/home/test/proj", "use nix\n")
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, testutil.StatusJSON(&testutil.RC{Allowed: 0, Path: rc}, nil), nil)

	out, _, err := execute(t, newTestApp(t, fc, fs, "/home/test/proj", nil), "status")
	require.NoError(t, err)

	allow := direnv.AllowFingerprint(rc, []byte("use nix\n"))
	deny := direnv.DenyFingerprint(rc)
	assert.Contains(t, out, "source: status (json)\n")
	assert.Contains(t, out, "found: ~/proj/.envrc\n")
	assert.Contains(t, out, "  allowed: allowed\n")
	assert.Contains(t, out, "  allow:   ~/.local/share/direnv/allow/"+allow+"\n")
	assert.Contains(t, out, "  deny:    ~/.local/share/direnv/deny/"+deny+"\n")
	assert.Contains(t, out, "loaded: -\n")
}

func TestStatusCmd_NotApplicable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/tmp", 0755))
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, "", errors.New("missing"))

	out, _, err := execute(t, newTestApp(t, fc, fs, "/tmp", nil), "status")
	require.NoError(t, err)
	assert.Equal(t, "source: filesystem\n적용되는 .envrc 없음\n", out)
}

func TestStatusCmd_JSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	rc := testutil.WriteRC(t, fs, "/work", "")
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, "garbage", nil)

	app := newTestApp(t, fc, fs, "/work", map[string]string{direnv.EnvDirenvFile: "/gone/.envrc"})
	_, _, err := execute(t, app, "status", "--json")
	require.Error(t, err)
	assert.Equal(t, cli.ExitReadRC, cli.MapExitCode(err))

	app = newTestApp(t, fc, fs, "/work", nil)
	out, _, err := execute(t, app, "status", "--json")
	require.NoError(t, err)
	require.True(t, gjson.Valid(out), out)

	doc := gjson.Parse(out)
	assert.Equal(t, "filesystem", doc.Get("source").String())
	assert.False(t, doc.Get("decoder").Exists())
	assert.Equal(t, rc, doc.Get("foundRC.path").String())
	assert.Equal(t, "not_allowed", doc.Get("foundRC.allowed").String())
	assert.True(t, strings.HasSuffix(doc.Get("foundRC.denyPath").String(), direnv.DenyFingerprint(rc)))
	assert.Equal(t, gjson.Null, doc.Get("loadedRC").Type)
}

func TestStatusCmd_ReportsUnreadableReportedRC(t *testing.T) {
	fc := testutil.NewFakeCommander()
	fc.Register(statusCmd, testutil.StatusJSON(&testutil.RC{Allowed: 0, Path: "/remote/.envrc"}, nil), nil)

	out, _, err := execute(t, newTestApp(t, fc, afero.NewMemMapFs(), "/remote", nil), "status", "--json")
	require.NoError(t, err)
	assert.Contains(t, gjson.Get(out, "foundRC.error").String(), "/remote/.envrc")
	assert.False(t, gjson.Get(out, "foundRC.allowPath").Exists())
}

// --- doctor ---

func TestDoctorCmd(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.Touch(t, fs, filepath.Join(dataDir, "allow", "abc"))
	fc := testutil.NewFakeCommander()
	fc.Paths["direnv"] = "/usr/bin/direnv"
	fc.Register("direnv version", "2.34.0\n", nil)

	out, _, err := execute(t, newTestApp(t, fc, fs, "/", nil), "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] direnv: /usr/bin/direnv (2.34.0)")
	assert.Contains(t, out, "[OK] data_dir: /home/test/.local/share/direnv (allow 1, deny 0)")
	assert.Contains(t, out, "[OK] config:")
	assert.Contains(t, out, "[OK] loaded_rc:")
}

func TestDoctorCmd_InvalidConfig(t *testing.T) {
	app := newTestApp(t, testutil.NewFakeCommander(), afero.NewMemMapFs(), "/", nil)
	app.CfgPath = testutil.TempConfigFile(t, "[direnv]\nstyle = \"glitter\"\n")

	out, _, err := execute(t, app, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "[FAIL] direnv:")
	assert.Contains(t, out, "[FAIL] config:")
	assert.Contains(t, out, "[!!] data_dir:")
}

// --- exit codes ---

func TestMapExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want cli.ExitCode
	}{
		{nil, cli.ExitSuccess},
		{errors.New("other"), cli.ExitGeneral},
		{fmt.Errorf("wrap: %w", cli.ErrConfig), cli.ExitConfigError},
		{fmt.Errorf("wrap: %w", cli.ErrFormat), cli.ExitConfigError},
		{fmt.Errorf("wrap: %w", cli.ErrReadRC), cli.ExitReadRC},
		{fmt.Errorf("wrap: %w", cli.ErrCanceled), cli.ExitCanceled},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.MapExitCode(tt.err), "err %v", tt.err)
	}
}
