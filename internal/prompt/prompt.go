// Package prompt는 direnv 상태를 프롬프트 세그먼트 문자열로 렌더링한다.
package prompt

import (
	"errors"
	"fmt"

	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/direnv"
	"github.com/hbjs97/envline/internal/format"
	"github.com/hbjs97/envline/internal/style"
)

// ErrFormat은 포맷 문자열 해석이나 평가 실패를 나타낸다.
var ErrFormat = errors.New("프롬프트 포맷 오류")

// Renderer는 설정된 포맷으로 State를 렌더링한다.
type Renderer struct {
	cfg     config.Direnv
	painter *style.Painter
}

// New는 새 Renderer를 생성한다. painter가 nil이면 색상 없이 출력한다.
func New(cfg config.Direnv, painter *style.Painter) *Renderer {
	if painter == nil {
		painter = style.Plain()
	}
	return &Renderer{cfg: cfg, painter: painter}
}

// Render는 state를 렌더링한다.
// 적용 대상이 아니거나 모듈이 비활성화되어 있으면 ("", false, nil)을 반환한다.
func (r *Renderer) Render(state *direnv.State) (string, bool, error) {
	if r.cfg.Disabled || !state.Applicable() {
		return "", false, nil
	}

	f, err := format.Parse(r.cfg.Format)
	if err != nil {
		return "", false, fmt.Errorf("prompt.Render: %w: %w", ErrFormat, err)
	}
	segs, err := f.Map(r.variables(state)).MapStyle(r.styles).Segments()
	if err != nil {
		return "", false, fmt.Errorf("prompt.Render: %w: %w", ErrFormat, err)
	}
	return format.Render(segs, r.painter), true, nil
}

func (r *Renderer) variables(state *direnv.State) format.LookupFunc {
	return func(name string) (string, bool) {
		switch name {
		case "symbol":
			return r.cfg.Symbol, true
		case "rc_path":
			if state.RCPath == "" {
				return "", false
			}
			return state.RCPath, true
		case "allowed":
			if state.Allowed == nil {
				return "", false
			}
			return r.allowedMsg(*state.Allowed), true
		case "loaded":
			if state.Loaded() {
				return r.cfg.LoadedMsg, true
			}
			return r.cfg.UnloadedMsg, true
		}
		return "", false
	}
}

func (r *Renderer) styles(name string) (string, bool) {
	if name == "style" {
		return r.cfg.Style, true
	}
	return "", false
}

func (r *Renderer) allowedMsg(s direnv.AllowStatus) string {
	switch s {
	case direnv.Allowed:
		return r.cfg.AllowedMsg
	case direnv.Denied:
		return r.cfg.DeniedMsg
	default:
		return r.cfg.NotAllowedMsg
	}
}
