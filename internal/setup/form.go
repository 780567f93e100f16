package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/format"
	"github.com/hbjs97/envline/internal/style"
)

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
type HuhFormRunner struct{}

var _ FormRunner = (*HuhFormRunner)(nil)

const customFormat = "__current__"

// RunActionSelect는 작업 선택 UI를 표시한다.
func (h *HuhFormRunner) RunActionSelect() (Action, error) {
	var action Action
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[Action]().
			Title("기존 설정이 있습니다. 작업을 선택하세요").
			Options(
				huh.NewOption("현재 설정 수정", ActionEdit),
				huh.NewOption("기본값으로 다시 설정", ActionReset),
				huh.NewOption("취소", ActionCancel),
			).
			Value(&action),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("setup.RunActionSelect: %w", err)
	}
	return action, nil
}

// RunFormatSelect는 포맷 preset 선택 UI를 표시한다.
func (h *HuhFormRunner) RunFormatSelect(current string) (string, error) {
	selected := current
	options := make([]huh.Option[string], 0, len(Presets)+1)
	known := false
	for _, p := range Presets {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  %q", p.Name, p.Format), p.Format))
		if p.Format == current {
			known = true
		}
	}
	if !known && current != "" {
		options = append(options, huh.NewOption(fmt.Sprintf("현재 값 유지  %q", current), customFormat))
		selected = customFormat
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("프롬프트 포맷을 선택하세요").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("setup.RunFormatSelect: %w", err)
	}
	if selected == customFormat {
		return current, nil
	}
	return selected, nil
}

// RunModuleForm은 모듈 입력 폼을 실행한다.
func (h *HuhFormRunner) RunModuleForm(defaults config.Direnv) (config.Direnv, error) {
	input := defaults

	styleValidate := func(s string) error {
		_, err := style.Parse(s)
		return err
	}
	formatValidate := func(s string) error {
		_, err := format.Parse(s)
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("symbol").Description("세그먼트 앞에 붙는 문자열").Value(&input.Symbol),
			huh.NewInput().Title("style").Description("예: bold orange, fg:#ff8700 italic").
				Value(&input.Style).Validate(styleValidate),
			huh.NewInput().Title("format").Value(&input.Format).Validate(formatValidate),
		),
		huh.NewGroup(
			huh.NewInput().Title("allowed_msg").Value(&input.AllowedMsg),
			huh.NewInput().Title("not_allowed_msg").Value(&input.NotAllowedMsg),
			huh.NewInput().Title("denied_msg").Value(&input.DeniedMsg),
			huh.NewInput().Title("loaded_msg").Value(&input.LoadedMsg),
			huh.NewInput().Title("unloaded_msg").Value(&input.UnloadedMsg),
		),
	)
	if err := form.Run(); err != nil {
		return config.Direnv{}, fmt.Errorf("setup.RunModuleForm: %w", err)
	}
	return input, nil
}

// RunConfirm은 확인 프롬프트를 표시한다.
func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("setup.RunConfirm: %w", err)
	}
	return confirm, nil
}
