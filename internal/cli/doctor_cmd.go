package cli

import (
	"fmt"
	"io"

	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/doctor"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "direnv 연동 환경을 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd)
		},
	}
}

func (a *App) runDoctor(cmd *cobra.Command) error {
	// 설정 오류는 CheckConfig가 보고하므로 data_dir은 기본값으로 진행한다.
	cfg, err := config.LoadOrDefault(a.CfgPath)
	if err != nil {
		cfg = config.Default()
	}

	results := doctor.RunAll(cmd.Context(), doctor.Options{
		Commander:  a.Commander,
		Fs:         a.Fs,
		Env:        a.Env,
		ConfigPath: a.CfgPath,
		DataDir:    a.dataDir(cfg),
	})
	printDiagResults(cmd.OutOrStdout(), results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(w io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(w, "  [%s] %s: %s\n", statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(w, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "OK"
	case doctor.StatusWarn:
		return "!!"
	case doctor.StatusFail:
		return "FAIL"
	default:
		return "??"
	}
}
