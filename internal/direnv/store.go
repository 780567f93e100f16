package direnv

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrReadRC는 허용 상태 계산을 위해 .envrc 내용을 읽지 못했을 때 반환된다.
var ErrReadRC = errors.New(".envrc 읽기 실패")

const (
	allowSubdir = "allow"
	denySubdir  = "deny"
)

// Fingerprint는 하나의 .envrc에 대한 allow/deny 마커 파일 이름이다.
type Fingerprint struct {
	Allow string
	Deny  string
}

// AllowFingerprint는 경로와 내용으로 allow 마커 이름을 계산한다.
// 내용이 바뀌면 값이 달라지므로 파일 수정 시 허용이 해제된다.
func AllowFingerprint(path string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte("\n"))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// DenyFingerprint는 경로만으로 deny 마커 이름을 계산한다.
func DenyFingerprint(path string) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte("\n"))
	return hex.EncodeToString(h.Sum(nil))
}

// Store는 direnv의 허용 마커 저장소(읽기 전용)다.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore는 dataDir(예: ~/.local/share/direnv, 확장된 경로) 기반 Store를 생성한다.
func NewStore(fs afero.Fs, dataDir string) *Store {
	return &Store{fs: fs, dir: dataDir}
}

// Dir은 저장소 루트 경로를 반환한다.
func (s *Store) Dir() string {
	return s.dir
}

// AllowDir은 allow 마커 디렉토리 경로를 반환한다.
func (s *Store) AllowDir() string {
	return filepath.Join(s.dir, allowSubdir)
}

// DenyDir은 deny 마커 디렉토리 경로를 반환한다.
func (s *Store) DenyDir() string {
	return filepath.Join(s.dir, denySubdir)
}

// AllowPath는 allow 마커 파일 경로를 반환한다.
func (s *Store) AllowPath(fp Fingerprint) string {
	return filepath.Join(s.dir, allowSubdir, fp.Allow)
}

// DenyPath는 deny 마커 파일 경로를 반환한다.
func (s *Store) DenyPath(fp Fingerprint) string {
	return filepath.Join(s.dir, denySubdir, fp.Deny)
}

// Fingerprints는 rcPath의 내용을 읽어 두 마커 이름을 계산한다.
func (s *Store) Fingerprints(rcPath string) (Fingerprint, error) {
	content, err := afero.ReadFile(s.fs, rcPath)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("direnv.Fingerprints: %s: %w: %w", rcPath, ErrReadRC, err)
	}
	return Fingerprint{
		Allow: AllowFingerprint(rcPath, content),
		Deny:  DenyFingerprint(rcPath),
	}, nil
}

// Status는 마커 저장소에서 rcPath의 허용 상태를 계산한다.
// allow 마커가 deny 마커보다 우선한다.
func (s *Store) Status(rcPath string) (AllowStatus, error) {
	fp, err := s.Fingerprints(rcPath)
	if err != nil {
		return 0, err
	}
	if s.exists(s.AllowPath(fp)) {
		return Allowed, nil
	}
	if s.exists(s.DenyPath(fp)) {
		return Denied, nil
	}
	return NotAllowed, nil
}

func (s *Store) exists(path string) bool {
	_, err := s.fs.Stat(path)
	return err == nil
}
