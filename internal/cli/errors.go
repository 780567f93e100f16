package cli

import (
	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/direnv"
	"github.com/hbjs97/envline/internal/prompt"
	"github.com/hbjs97/envline/internal/setup"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrFormat은 포맷 문자열 오류를 나타내는 sentinel error다.
	ErrFormat = prompt.ErrFormat
	// ErrReadRC는 .envrc를 읽지 못했을 때의 sentinel error다.
	ErrReadRC = direnv.ErrReadRC
	// ErrCanceled는 setup이 취소되었을 때의 sentinel error다.
	ErrCanceled = setup.ErrCanceled
)
