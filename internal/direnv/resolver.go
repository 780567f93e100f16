package direnv

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// RCFileName은 direnv가 실행하는 디렉토리 스크립트 이름이다.
	RCFileName = ".envrc"

	// EnvDirenvFile은 direnv가 현재 로드한 .envrc 경로를 기록하는 환경변수다.
	EnvDirenvFile = "DIRENV_FILE"
)

// EnvLookup은 환경변수 조회 함수다. os.LookupEnv와 같은 시그니처다.
type EnvLookup func(name string) (string, bool)

// Resolver는 파일시스템과 환경변수에서 직접 State를 계산한다.
// direnv 명령 출력을 쓸 수 없을 때의 fallback 경로다.
type Resolver struct {
	fs    afero.Fs
	env   EnvLookup
	store *Store
}

// NewResolver는 새 Resolver를 생성한다.
func NewResolver(fs afero.Fs, env EnvLookup, store *Store) *Resolver {
	return &Resolver{fs: fs, env: env, store: store}
}

// FindRC는 currentDir부터 루트까지 올라가며 가장 가까운 .envrc를 찾는다.
// 상대 경로는 프로세스 작업 디렉토리 기준 절대 경로로 바꾼 뒤 탐색하므로
// 반환 경로는 항상 절대 경로다. 없으면 빈 문자열을 반환한다.
func (r *Resolver) FindRC(currentDir string) (string, error) {
	dir, err := filepath.Abs(currentDir)
	if err != nil {
		return "", fmt.Errorf("direnv.FindRC: %w", err)
	}
	for {
		candidate := filepath.Join(dir, RCFileName)
		if info, err := r.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadedRC는 DIRENV_FILE 값을 그대로 반환한다. 존재 여부는 확인하지 않는다.
func (r *Resolver) LoadedRC() string {
	if r.env == nil {
		return ""
	}
	v, ok := r.env(EnvDirenvFile)
	if !ok {
		return ""
	}
	return v
}

// Resolve는 currentDir의 State를 계산한다.
// 어느 한쪽이라도 .envrc를 읽지 못하면 전체 판정을 중단한다.
func (r *Resolver) Resolve(currentDir string) (*State, error) {
	rc, err := r.FindRC(currentDir)
	if err != nil {
		return nil, fmt.Errorf("direnv.Resolve: %w", err)
	}
	state := &State{
		RCPath:       rc,
		LoadedRCPath: r.LoadedRC(),
	}

	if state.Allowed, err = r.status(state.RCPath); err != nil {
		return nil, fmt.Errorf("direnv.Resolve: %w", err)
	}
	if state.LoadedAllowed, err = r.status(state.LoadedRCPath); err != nil {
		return nil, fmt.Errorf("direnv.Resolve: %w", err)
	}
	return state, nil
}

func (r *Resolver) status(path string) (*AllowStatus, error) {
	if path == "" {
		return nil, nil
	}
	s, err := r.store.Status(path)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
