package cli

import (
	"fmt"

	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/logging"
	"github.com/hbjs97/envline/internal/prompt"
	"github.com/hbjs97/envline/internal/style"
	"github.com/spf13/cobra"
)

func (a *App) newPromptCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "프롬프트에 넣을 direnv 세그먼트를 출력한다",
		Long: `현재 디렉토리의 direnv 상태를 설정된 포맷으로 출력한다.
표시할 상태가 없거나 오류가 나면 아무것도 출력하지 않고 정상 종료한다.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.renderPrompt(cmd, dir)
			if err != nil {
				logger := logging.GetLogger("prompt")
				logger.Warn().Err(err).Msg("프롬프트 세그먼트 생략")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "판정 기준 디렉토리 (기본: 현재 디렉토리)")
	return cmd
}

func (a *App) renderPrompt(cmd *cobra.Command, dirFlag string) (string, error) {
	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		return "", err
	}
	if cfg.Direnv.Disabled {
		return "", nil
	}

	dir, err := a.workDir(dirFlag)
	if err != nil {
		return "", fmt.Errorf("cli.prompt: %w", err)
	}
	res, err := a.pipeline(cfg).Resolve(cmd.Context(), dir)
	if err != nil {
		return "", err
	}

	painter := style.NewPainter(cmd.OutOrStdout(), style.ColorMode(a.color))
	out, _, err := prompt.New(cfg.Direnv, painter).Render(res.State)
	return out, err
}
