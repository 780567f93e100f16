package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hbjs97/envline/internal/cmdexec"
	"github.com/hbjs97/envline/internal/config"
	"github.com/hbjs97/envline/internal/direnv"
	"github.com/spf13/afero"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// Options는 RunAll에 필요한 입력이다.
type Options struct {
	Commander  cmdexec.Commander
	Fs         afero.Fs
	Env        direnv.EnvLookup
	ConfigPath string
	DataDir    string // 틸드가 이미 확장된 경로
}

// CheckBinary는 direnv 바이너리 존재 여부와 버전을 확인한다.
func CheckBinary(ctx context.Context, cmd cmdexec.Commander) DiagResult {
	path, err := cmd.LookPath("direnv")
	if err != nil {
		return DiagResult{
			Name:    "direnv",
			Status:  StatusFail,
			Message: "direnv 없음, 파일시스템 판정만 사용됨",
			Fix:     "설치: https://direnv.net/docs/installation.html",
		}
	}

	out, err := cmd.Run(ctx, "", "direnv", "version")
	if err != nil || out == nil {
		return DiagResult{
			Name:    "direnv",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 실행 실패", path),
			Fix:     "direnv version 으로 직접 확인",
		}
	}
	return DiagResult{
		Name:    "direnv",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (%s)", path, strings.TrimSpace(string(out.Stdout))),
	}
}

// CheckDataDir는 허용/거부 마커 디렉토리를 확인한다.
func CheckDataDir(fs afero.Fs, dataDir string) DiagResult {
	info, err := fs.Stat(dataDir)
	if err != nil {
		return DiagResult{
			Name:    "data_dir",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 없음, 허용된 .envrc가 아직 없음", dataDir),
			Fix:     "direnv allow 실행 또는 설정의 data_dir 확인",
		}
	}
	if !info.IsDir() {
		return DiagResult{
			Name:    "data_dir",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 는 디렉토리가 아님", dataDir),
			Fix:     "설정의 data_dir 확인",
		}
	}

	store := direnv.NewStore(fs, dataDir)
	allowed := countEntries(fs, store.AllowDir())
	denied := countEntries(fs, store.DenyDir())
	return DiagResult{
		Name:    "data_dir",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (allow %d, deny %d)", dataDir, allowed, denied),
	}
}

func countEntries(fs afero.Fs, dir string) int {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return 0
	}
	return len(entries)
}

// CheckConfig는 설정 파일 유효성과 권한을 확인한다.
func CheckConfig(path string) DiagResult {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DiagResult{
			Name:    "config",
			Status:  StatusOK,
			Message: fmt.Sprintf("%s 없음, 기본값 사용", path),
		}
	}
	if _, err := config.Load(path); err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     "envline setup 으로 다시 생성",
		}
	}
	if err := config.ValidateFilePermissions(path); err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: err.Error(),
			Fix:     fmt.Sprintf("chmod 600 %s", path),
		}
	}
	return DiagResult{
		Name:    "config",
		Status:  StatusOK,
		Message: path,
	}
}

// CheckLoadedRC는 DIRENV_FILE이 가리키는 .envrc가 읽히는지 확인한다.
func CheckLoadedRC(fs afero.Fs, env direnv.EnvLookup) DiagResult {
	path, ok := env(direnv.EnvDirenvFile)
	if !ok || path == "" {
		return DiagResult{
			Name:    "loaded_rc",
			Status:  StatusOK,
			Message: "로드된 .envrc 없음",
		}
	}
	if _, err := fs.Stat(path); err != nil {
		return DiagResult{
			Name:    "loaded_rc",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s=%s 를 읽을 수 없음, 프롬프트가 표시되지 않음", direnv.EnvDirenvFile, path),
			Fix:     "디렉토리를 다시 진입하거나 direnv reload 실행",
		}
	}
	return DiagResult{
		Name:    "loaded_rc",
		Status:  StatusOK,
		Message: path,
	}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, opts Options) []DiagResult {
	return []DiagResult{
		CheckBinary(ctx, opts.Commander),
		CheckDataDir(opts.Fs, opts.DataDir),
		CheckConfig(opts.ConfigPath),
		CheckLoadedRC(opts.Fs, opts.Env),
	}
}

// HasFailure는 FAIL 결과가 하나라도 있는지 반환한다.
func HasFailure(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
