package cli

import (
	"errors"
)

// ExitCode는 envline의 종료 코드다.
// prompt 명령은 셸 프롬프트를 깨지 않도록 항상 ExitSuccess로 끝난다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitConfigError는 설정 파일 또는 포맷 오류다.
	ExitConfigError ExitCode = 2
	// ExitReadRC는 .envrc 읽기 실패다.
	ExitReadRC ExitCode = 3
	// ExitCanceled는 사용자가 setup을 취소한 경우다.
	ExitCanceled ExitCode = 4
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrConfig), errors.Is(err, ErrFormat):
		return ExitConfigError
	case errors.Is(err, ErrReadRC):
		return ExitReadRC
	case errors.Is(err, ErrCanceled):
		return ExitCanceled
	default:
		return ExitGeneral
	}
}
