package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hbjs97/envline/internal/cmdexec"
	"github.com/hbjs97/envline/internal/direnv"
	"github.com/hbjs97/envline/internal/logging"
)

const (
	// SourceStatus는 direnv status 출력에서 상태를 얻었음을 뜻한다.
	SourceStatus = "status"
	// SourceFilesystem은 .envrc와 허용 마커를 직접 조회했음을 뜻한다.
	SourceFilesystem = "filesystem"
)

// Result는 상태 판정 결과다.
type Result struct {
	State   *direnv.State
	Source  string // "status", "filesystem"
	Decoder string // status 출력을 해석한 디코더 이름. filesystem이면 빈 값
}

// Resolver는 direnv status 실행 후 실패 시 파일시스템 판정으로 넘어가는 파이프라인이다.
type Resolver struct {
	cmd      cmdexec.Commander
	fallback *direnv.Resolver
	timeout  time.Duration
	decoders []direnv.Decoder
}

// New는 새 Resolver를 생성한다. timeout이 0이면 제한 없이 실행한다.
func New(cmd cmdexec.Commander, fallback *direnv.Resolver, timeout time.Duration) *Resolver {
	return &Resolver{
		cmd:      cmd,
		fallback: fallback,
		timeout:  timeout,
		decoders: direnv.DefaultDecoders,
	}
}

// Resolve는 dir 기준 direnv 상태를 판정한다.
func (r *Resolver) Resolve(ctx context.Context, dir string) (*Result, error) {
	logger := logging.GetLogger("resolver")
	start := time.Now()
	defer logging.LogDuration(logger, start, "resolve")

	// Step 1: direnv status --json
	if raw, stderr, ok := r.runStatus(ctx, dir); ok {
		state, decoder, err := direnv.ParseWith(raw, r.decoders...)
		if err == nil {
			logger.Debug().Str("decoder", decoder).Msg("direnv status 해석 완료")
			return &Result{State: state, Source: SourceStatus, Decoder: decoder}, nil
		}
		logger.Warn().Err(err).Str("stderr", excerpt(stderr)).Msg("direnv status 해석 실패, 파일시스템으로 판정")
	}

	// Step 2: 파일시스템 판정
	state, err := r.fallback.Resolve(dir)
	if err != nil {
		return nil, fmt.Errorf("resolver.Resolve: %w", err)
	}
	return &Result{State: state, Source: SourceFilesystem}, nil
}

func (r *Resolver) runStatus(ctx context.Context, dir string) (stdout, stderr string, ok bool) {
	logger := logging.GetLogger("resolver")
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.cmd.Run(ctx, dir, "direnv", "status", "--json")
	if out != nil {
		stdout, stderr = string(out.Stdout), string(out.Stderr)
	}
	if err != nil {
		logger.Debug().Err(err).Str("stderr", excerpt(stderr)).Msg("direnv status 실행 실패")
		return "", "", false
	}
	if strings.TrimSpace(stdout) == "" {
		logger.Debug().Msg("direnv status 출력 없음")
		return "", "", false
	}
	return stdout, stderr, true
}

// excerpt는 로그용으로 stderr 첫 줄만 남긴다.
func excerpt(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	const limit = 200
	if len(line) > limit {
		return line[:limit] + "…"
	}
	return line
}
