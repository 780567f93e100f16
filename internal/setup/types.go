package setup

import "github.com/hbjs97/envline/internal/config"

// Action은 기존 설정이 있을 때 사용자가 선택하는 작업이다.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionReset  Action = "reset"
	ActionCancel Action = "cancel"
)

// Preset은 미리 정의된 포맷 문자열이다.
type Preset struct {
	Name   string
	Format string
}

// Presets는 포맷 선택 UI에 표시되는 목록이다. 첫 항목이 기본값이다.
var Presets = []Preset{
	{Name: "기본", Format: config.DefaultFormat},
	{Name: "경로 포함", Format: "[$symbol($rc_path )$loaded/$allowed]($style) "},
	{Name: "허용 상태만", Format: "[$symbol$allowed]($style) "},
	{Name: "간결", Format: "[$allowed]($style) "},
}

// FormRunner는 TUI 폼 실행을 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunActionSelect는 기존 설정에 대한 작업 선택 UI를 표시한다.
	RunActionSelect() (Action, error)

	// RunFormatSelect는 포맷 preset 선택 UI를 표시한다.
	// current가 preset에 없으면 "현재 값 유지" 항목을 함께 보여준다.
	RunFormatSelect(current string) (string, error)

	// RunModuleForm은 symbol, style, 메시지 입력 폼을 실행한다.
	// defaults의 값이 초기값으로 표시된다.
	RunModuleForm(defaults config.Direnv) (config.Direnv, error)

	// RunConfirm은 확인 프롬프트를 표시한다.
	RunConfirm(message string) (bool, error)
}
