package direnv

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrUnknownState는 어떤 디코더로도 direnv status 출력을 해석하지 못했을 때 반환된다.
var ErrUnknownState = errors.New("알 수 없는 direnv 상태")

// Decoder는 direnv status 출력 형식 하나를 해석한다.
type Decoder interface {
	// Name은 로그와 status 출력에 쓰이는 디코더 이름이다.
	Name() string
	// Decode는 출력 전체를 State로 변환한다.
	Decode(raw string) (*State, error)
}

// DefaultDecoders는 Parse가 순서대로 시도하는 디코더 목록이다.
var DefaultDecoders = []Decoder{StructuredDecoder{}, LegacyDecoder{}}

// Parse는 DefaultDecoders로 direnv status 출력을 해석한다.
func Parse(raw string) (*State, error) {
	state, _, err := ParseWith(raw, DefaultDecoders...)
	return state, err
}

// ParseWith는 decoders를 순서대로 시도하고 처음 성공한 결과와 디코더 이름을 반환한다.
// 모두 실패하면 ErrUnknownState와 각 디코더의 에러를 묶어 반환한다.
func ParseWith(raw string, decoders ...Decoder) (*State, string, error) {
	errs := []error{ErrUnknownState}
	for _, d := range decoders {
		state, err := d.Decode(raw)
		if err == nil {
			return state, d.Name(), nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
	}
	return nil, "", fmt.Errorf("direnv.Parse: %w", errors.Join(errs...))
}

// StructuredDecoder는 direnv 2.33 이상의 `status --json` 출력을 해석한다.
//
//	{"config": {...}, "state": {"foundRC": {"allowed": 0, "path": "..."}, "loadedRC": null}}
type StructuredDecoder struct{}

// Name은 "json"을 반환한다.
func (StructuredDecoder) Name() string { return "json" }

// Decode는 JSON 출력을 State로 변환한다. 알 수 없는 필드는 무시한다.
func (StructuredDecoder) Decode(raw string) (*State, error) {
	if !gjson.Valid(raw) {
		return nil, errors.New("JSON 형식 아님")
	}
	st := gjson.Parse(raw).Get("state")
	if !st.IsObject() {
		return nil, errors.New("state 객체 없음")
	}

	rcPath, allowed, err := decodeRC(st.Get("foundRC"))
	if err != nil {
		return nil, fmt.Errorf("foundRC: %w", err)
	}
	loadedPath, loadedAllowed, err := decodeRC(st.Get("loadedRC"))
	if err != nil {
		return nil, fmt.Errorf("loadedRC: %w", err)
	}

	return &State{
		RCPath:        rcPath,
		LoadedRCPath:  loadedPath,
		Allowed:       allowed,
		LoadedAllowed: loadedAllowed,
	}, nil
}

// decodeRC는 {allowed, path} 객체 하나를 해석한다. null이면 경로와 상태 모두 없음이다.
func decodeRC(v gjson.Result) (string, *AllowStatus, error) {
	if !v.Exists() || v.Type == gjson.Null {
		return "", nil, nil
	}
	if !v.IsObject() {
		return "", nil, errors.New("객체 아님")
	}

	a := v.Get("allowed")
	if a.Type != gjson.Number || a.Num != math.Trunc(a.Num) {
		return "", nil, fmt.Errorf("allowed 정수 아님: %s", a.Raw)
	}
	status, err := AllowStatusFromCode(a.Int())
	if err != nil {
		return "", nil, err
	}

	p := v.Get("path")
	if p.Type != gjson.String || p.Str == "" {
		return "", nil, errors.New("path 없음")
	}
	return p.Str, &status, nil
}

const (
	prefixFoundPath     = "Found RC path"
	prefixFoundAllowed  = "Found RC allowed"
	prefixLoadedPath    = "Loaded RC path"
	prefixLoadedAllowed = "Loaded RC allowed"
)

// LegacyDecoder는 direnv 2.33 미만의 줄 단위 `status` 출력을 해석한다.
type LegacyDecoder struct{}

// Name은 "legacy"를 반환한다.
func (LegacyDecoder) Name() string { return "legacy" }

// Decode는 네 가지 접두사 줄만 읽고 나머지 진단 줄은 무시한다.
// Found RC path와 Found RC allowed가 모두 있어야 성공한다.
func (LegacyDecoder) Decode(raw string) (*State, error) {
	state := &State{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if v, ok := strings.CutPrefix(line, prefixFoundPath); ok {
			state.RCPath = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, prefixFoundAllowed); ok {
			s, err := ParseAllowStatus(strings.TrimSpace(v))
			if err != nil {
				return nil, err
			}
			state.Allowed = &s
		} else if v, ok := strings.CutPrefix(line, prefixLoadedPath); ok {
			state.LoadedRCPath = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, prefixLoadedAllowed); ok {
			s, err := ParseAllowStatus(strings.TrimSpace(v))
			if err != nil {
				return nil, err
			}
			state.LoadedAllowed = &s
		}
	}

	if state.RCPath == "" || state.Allowed == nil {
		return nil, errors.New("Found RC path/allowed 없음")
	}
	return state, nil
}
