package direnv

import (
	"errors"
	"fmt"
)

// ErrInvalidAllowStatus는 허용 상태 코드/토큰을 해석할 수 없을 때 반환된다.
var ErrInvalidAllowStatus = errors.New("알 수 없는 허용 상태")

// AllowStatus는 .envrc 파일의 허용 상태다.
type AllowStatus int

const (
	// Allowed는 direnv allow로 신뢰된 상태다.
	Allowed AllowStatus = iota
	// NotAllowed는 아직 허용/거부 결정이 없는 상태다.
	NotAllowed
	// Denied는 direnv deny로 거부된 상태다.
	Denied
)

// String은 상태 이름을 반환한다.
func (s AllowStatus) String() string {
	switch s {
	case Allowed:
		return "allowed"
	case NotAllowed:
		return "not_allowed"
	case Denied:
		return "denied"
	default:
		return fmt.Sprintf("AllowStatus(%d)", int(s))
	}
}

// AllowStatusFromCode는 direnv status --json의 정수 코드를 변환한다.
func AllowStatusFromCode(code int64) (AllowStatus, error) {
	switch code {
	case 0:
		return Allowed, nil
	case 1:
		return NotAllowed, nil
	case 2:
		return Denied, nil
	default:
		return 0, fmt.Errorf("direnv.AllowStatusFromCode: %d: %w", code, ErrInvalidAllowStatus)
	}
}

// ParseAllowStatus는 구버전 direnv status 출력의 토큰을 변환한다.
// 구버전은 "true"/"false"를 출력하고 이후 버전은 정수 문자열을 출력한다.
func ParseAllowStatus(token string) (AllowStatus, error) {
	switch token {
	case "0", "true":
		return Allowed, nil
	case "1":
		return NotAllowed, nil
	case "2", "false":
		return Denied, nil
	default:
		return 0, fmt.Errorf("direnv.ParseAllowStatus: %q: %w", token, ErrInvalidAllowStatus)
	}
}

// State는 현재 디렉토리에 대한 direnv 상태 스냅샷이다.
// 빈 문자열 경로와 nil 상태는 "없음"을 뜻한다.
type State struct {
	RCPath        string
	LoadedRCPath  string
	Allowed       *AllowStatus
	LoadedAllowed *AllowStatus
}

// Applicable은 표시할 상태가 있는지 반환한다.
func (s *State) Applicable() bool {
	return s != nil && (s.RCPath != "" || s.LoadedRCPath != "")
}

// Loaded는 현재 셸 세션에 로드된 .envrc가 있는지 반환한다.
func (s *State) Loaded() bool {
	return s.LoadedRCPath != ""
}

// Equal은 두 상태의 모든 필드가 같은지 비교한다.
func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.RCPath == o.RCPath &&
		s.LoadedRCPath == o.LoadedRCPath &&
		statusEqual(s.Allowed, o.Allowed) &&
		statusEqual(s.LoadedAllowed, o.LoadedAllowed)
}

func statusEqual(a, b *AllowStatus) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
