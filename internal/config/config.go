package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hbjs97/envline/internal/format"
	"github.com/hbjs97/envline/internal/style"
	"gopkg.in/yaml.v3"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 파일 오류")

const (
	// DefaultFormat은 direnv 모듈의 기본 포맷 문자열이다.
	DefaultFormat = "[$symbol$loaded/$allowed]($style) "
	// DefaultCommandTimeoutMS는 direnv status 실행 제한 시간(ms)이다.
	DefaultCommandTimeoutMS = 500
)

// Config는 envline 설정 파일의 최상위 구조체다.
type Config struct {
	Version int    `toml:"version" yaml:"version"`
	Direnv  Direnv `toml:"direnv" yaml:"direnv"`
}

// Direnv는 [direnv] 모듈 설정이다.
type Direnv struct {
	Format         string `toml:"format" yaml:"format"`
	Symbol         string `toml:"symbol" yaml:"symbol"`
	Style          string `toml:"style" yaml:"style"`
	AllowedMsg     string `toml:"allowed_msg" yaml:"allowed_msg"`
	NotAllowedMsg  string `toml:"not_allowed_msg" yaml:"not_allowed_msg"`
	DeniedMsg      string `toml:"denied_msg" yaml:"denied_msg"`
	LoadedMsg      string `toml:"loaded_msg" yaml:"loaded_msg"`
	UnloadedMsg    string `toml:"unloaded_msg" yaml:"unloaded_msg"`
	Disabled       bool   `toml:"disabled" yaml:"disabled"`
	DataDir        string `toml:"data_dir" yaml:"data_dir"`
	CommandTimeout int    `toml:"command_timeout" yaml:"command_timeout"`
}

// Default는 기본값으로 채워진 Config를 반환한다.
func Default() *Config {
	return &Config{
		Version: 1,
		Direnv: Direnv{
			Format:         DefaultFormat,
			Symbol:         "direnv ",
			Style:          "bold orange",
			AllowedMsg:     "allowed",
			NotAllowedMsg:  "not allowed",
			DeniedMsg:      "denied",
			LoadedMsg:      "loaded",
			UnloadedMsg:    "not loaded",
			DataDir:        "~/.local/share/direnv",
			CommandTimeout: DefaultCommandTimeoutMS,
		},
	}
}

// Load는 설정 파일을 파싱하여 Config를 반환한다.
// 파일에 없는 키는 기본값을 유지하고, 명시한 빈 문자열은 그대로 쓴다.
// 확장자가 .yaml/.yml이면 YAML, 그 외에는 TOML로 읽는다.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := decode(path, cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault는 파일이 없으면 기본 설정을 반환한다.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// CommandTimeoutDuration은 command_timeout을 time.Duration으로 반환한다.
func (d Direnv) CommandTimeoutDuration() time.Duration {
	return time.Duration(d.CommandTimeout) * time.Millisecond
}

func decode(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%w: 알 수 없는 키 %s", ErrConfig, undecoded[0])
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Direnv.CommandTimeout == 0 {
		c.Direnv.CommandTimeout = DefaultCommandTimeoutMS
	}
	if c.Direnv.DataDir == "" {
		c.Direnv.DataDir = Default().Direnv.DataDir
	}
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("config.Load: %w: 지원하지 않는 version %d", ErrConfig, c.Version)
	}
	if _, err := format.Parse(c.Direnv.Format); err != nil {
		return fmt.Errorf("config.Load: %w: direnv.format: %w", ErrConfig, err)
	}
	if _, err := style.Parse(c.Direnv.Style); err != nil {
		return fmt.Errorf("config.Load: %w: direnv.style: %w", ErrConfig, err)
	}
	if c.Direnv.CommandTimeout < 0 {
		return fmt.Errorf("config.Load: %w: direnv.command_timeout는 0 이상이어야 합니다", ErrConfig)
	}
	return nil
}

// ValidateFilePermissions는 파일 권한이 0600보다 넓으면 에러를 반환한다.
func ValidateFilePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config.ValidateFilePermissions: %w", err)
	}
	perm := info.Mode().Perm()
	if perm&0077 != 0 {
		return fmt.Errorf("config.ValidateFilePermissions: %s 권한이 %o (0600 필요)", path, perm)
	}
	return nil
}
