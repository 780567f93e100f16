package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hbjs97/envline/internal/cmdexec"
	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/direnv"
	"github.com/hbjs97/envline/internal/doctor"
	"github.com/hbjs97/envline/internal/prompt"
)

// ErrCanceled는 사용자가 저장을 취소했을 때 반환된다.
var ErrCanceled = errors.New("설정이 취소되었습니다")

// Runner는 interactive setup의 진입점이다.
type Runner struct {
	CfgPath    string
	Commander  cmdexec.Commander
	FormRunner FormRunner
	Out        io.Writer // 비어있으면 os.Stdout
}

// Run은 setup 플로우를 실행한다.
func (r *Runner) Run(ctx context.Context) error {
	cfg, err := r.initial()
	if err != nil {
		return err
	}
	if cfg == nil {
		fmt.Fprintln(r.out(), "변경 없이 종료합니다.")
		return nil
	}

	current := cfg.Direnv
	if current.Format, err = r.FormRunner.RunFormatSelect(current.Format); err != nil {
		return err
	}
	if current, err = r.FormRunner.RunModuleForm(current); err != nil {
		return err
	}
	cfg.Direnv = current

	if err := r.preview(current); err != nil {
		return err
	}

	ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("%s 에 저장할까요?", r.CfgPath))
	if err != nil {
		return err
	}
	if !ok {
		return ErrCanceled
	}
	if err := config.Save(r.CfgPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(r.out(), "설정 파일이 저장되었습니다: %s\n", r.CfgPath)

	r.runDoctor(ctx)
	return nil
}

// initial은 폼의 시작 설정을 결정한다. nil이면 사용자가 취소한 것이다.
func (r *Runner) initial() (*config.Config, error) {
	_, err := os.Stat(r.CfgPath)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(r.out(), "envline 초기 설정을 시작합니다.")
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("setup.Run: %w", err)
	}

	action, err := r.FormRunner.RunActionSelect()
	if err != nil {
		return nil, err
	}
	switch action {
	case ActionEdit:
		cfg, err := config.Load(r.CfgPath)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	case ActionReset:
		return config.Default(), nil
	case ActionCancel:
		return nil, nil
	default:
		return nil, fmt.Errorf("setup: 알 수 없는 작업: %s", action)
	}
}

// preview는 대표 상태 두 가지를 새 설정으로 렌더링해 보여준다.
func (r *Runner) preview(cfg config.Direnv) error {
	allowed, denied := direnv.Allowed, direnv.Denied
	samples := []struct {
		label string
		state *direnv.State
	}{
		{"허용, 미로드", &direnv.State{RCPath: "~/project/.envrc", Allowed: &allowed}},
		{"거부, 로드됨", &direnv.State{
			RCPath: "~/project/.envrc", Allowed: &denied,
			LoadedRCPath: "~/project/.envrc", LoadedAllowed: &denied,
		}},
	}

	cfg.Disabled = false
	renderer := prompt.New(cfg, nil)
	fmt.Fprintln(r.out(), "미리보기:")
	for _, s := range samples {
		out, _, err := renderer.Render(s.state)
		if err != nil {
			return fmt.Errorf("setup.preview: %w", err)
		}
		fmt.Fprintf(r.out(), "  %-12s %q\n", s.label, out)
	}
	return nil
}

// runDoctor는 설정 완료 후 direnv 설치 여부를 확인한다.
func (r *Runner) runDoctor(ctx context.Context) {
	res := doctor.CheckBinary(ctx, r.Commander)
	if res.Status == doctor.StatusOK {
		return
	}
	fmt.Fprintf(r.out(), "\n[!] %s: %s\n", res.Name, res.Message)
	if res.Fix != "" {
		fmt.Fprintf(r.out(), "    Fix: %s\n", res.Fix)
	}
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}
