package reqdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"
	"go.uber.org/zap"

	"github.com/reqlix/reqdb/internal/fs"
)

// Config holds the store options. Only the requirements directory is read
// from the config file; the remaining fields are wired by the caller.
type Config struct {
	// Dir is the requirements directory holding one markdown file per
	// category plus the reserved AGENTS.md.
	Dir string `json:"requirements_dir"` //nolint:tagliatelle // snake_case for config file

	// LockTimeout bounds how long a mutation waits for the cross-process
	// file lock. Zero uses the filesystem default.
	LockTimeout time.Duration `json:"-"`

	// FilePerm is the mode for newly written category files.
	// Zero means 0o644.
	FilePerm os.FileMode `json:"-"`

	// FS overrides the filesystem, mainly for tests. Nil means the real
	// filesystem.
	FS fs.FS `json:"-"`

	// Logger receives debug-level operation logs. Nil means no logging.
	Logger *zap.Logger `json:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Dir: "requirements",
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".reqdb.json"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigInvalid      = errors.New("invalid config file")
)

// LoadConfig loads configuration with the following precedence (highest
// wins):
//  1. Defaults
//  2. Project config file at workDir/.reqdb.json (if it exists)
//  3. Explicit config file via configPath (must exist when given)
//
// The config file is JSONC; comments and trailing commas are allowed. A
// relative Dir is resolved against workDir. Returns the effective config
// and the path of the file that was loaded, if any.
func LoadConfig(workDir, configPath string) (Config, string, error) {
	cfg := DefaultConfig()

	cfgFile := configPath
	mustExist := configPath != ""

	if cfgFile == "" {
		cfgFile = filepath.Join(workDir, ConfigFileName)
	} else if !filepath.IsAbs(cfgFile) {
		cfgFile = filepath.Join(workDir, cfgFile)
	}

	data, err := os.ReadFile(cfgFile) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if mustExist {
			return Config{}, "", fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
		}

		cfg.Dir = filepath.Join(workDir, cfg.Dir)

		return cfg, "", nil
	}

	fileCfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, "", fmt.Errorf("%w %s: %w", errConfigInvalid, cfgFile, parseErr)
	}

	if fileCfg.Dir != "" {
		cfg.Dir = fileCfg.Dir
	}

	if !filepath.IsAbs(cfg.Dir) {
		cfg.Dir = filepath.Join(workDir, cfg.Dir)
	}

	return cfg, cfgFile, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}
