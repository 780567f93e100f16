package cli

import (
	"os"
	"path/filepath"

	"github.com/hbjs97/envline/internal/cmdexec"
	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/direnv"
	"github.com/hbjs97/envline/internal/logging"
	"github.com/hbjs97/envline/internal/paths"
	"github.com/hbjs97/envline/internal/resolver"
	"github.com/hbjs97/envline/internal/setup"
	"github.com/hbjs97/envline/internal/style"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// App은 CLI 명령이 공유하는 의존성이다. 비어있는 필드는 실제 환경 값으로 채워진다.
type App struct {
	Commander  cmdexec.Commander
	CfgPath    string
	Fs         afero.Fs
	Env        direnv.EnvLookup
	Getwd      func() (string, error)
	Home       string
	FormRunner setup.FormRunner

	verbose int
	color   string
}

// NewRootCmd는 envline CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	a.applyDefaults()

	cmd := &cobra.Command{
		Use:           "envline",
		Short:         "direnv 상태를 프롬프트 세그먼트로 표시한다",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := style.ParseColorMode(a.color); err != nil {
				return err
			}
			logging.SetupWithWriter(cmd.ErrOrStderr(), a.verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", a.CfgPath, "설정 파일 경로")
	cmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "상세 로그 (-v info, -vv debug, -vvv trace)")
	cmd.PersistentFlags().StringVar(&a.color, "color", string(style.ColorAuto), "색상 출력 (auto, always, never)")

	cmd.AddCommand(
		a.newPromptCmd(),
		a.newStatusCmd(),
		a.newDoctorCmd(),
		a.newSetupCmd(),
	)
	return cmd
}

func (a *App) applyDefaults() {
	if a.Commander == nil {
		a.Commander = &cmdexec.RealCommander{}
	}
	if a.CfgPath == "" {
		a.CfgPath = paths.DefaultConfigPath()
	}
	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}
	if a.Env == nil {
		a.Env = os.LookupEnv
	}
	if a.Getwd == nil {
		a.Getwd = os.Getwd
	}
	if a.Home == "" {
		a.Home = paths.Home()
	}
	if a.FormRunner == nil {
		a.FormRunner = &setup.HuhFormRunner{}
	}
}

// pipeline은 설정에 맞는 상태 판정 파이프라인을 만든다.
func (a *App) pipeline(cfg *config.Config) *resolver.Resolver {
	store := direnv.NewStore(a.Fs, a.dataDir(cfg))
	fallback := direnv.NewResolver(a.Fs, a.Env, store)
	return resolver.New(a.Commander, fallback, cfg.Direnv.CommandTimeoutDuration())
}

func (a *App) dataDir(cfg *config.Config) string {
	return paths.ExpandTilde(cfg.Direnv.DataDir, a.Home)
}

// workDir은 판정 기준 디렉토리를 절대 경로로 반환한다.
// --dir가 없으면 현재 디렉토리, 상대 경로면 현재 디렉토리 기준으로 해석한다.
func (a *App) workDir(flag string) (string, error) {
	if flag != "" && filepath.IsAbs(flag) {
		return filepath.Clean(flag), nil
	}
	cwd, err := a.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, flag), nil
}
