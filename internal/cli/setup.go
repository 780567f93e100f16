package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/hbjs97/envline/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newSetupCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "대화형으로 설정 파일을 만든다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if force {
				if err := os.Remove(a.CfgPath); err != nil && !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("cli.setup: %w", err)
				}
			}
			r := &setup.Runner{
				CfgPath:    a.CfgPath,
				Commander:  a.Commander,
				FormRunner: a.FormRunner,
				Out:        cmd.OutOrStdout(),
			}
			return r.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "기존 설정 파일을 지우고 처음부터 설정")
	return cmd
}
