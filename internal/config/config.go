package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directories subforge owns outside the working directory.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Transcription configures the speech recognizer invocation.
type Transcription struct {
	// Engine selects the recognizer backend: "whisper" or "whisperx".
	Engine string `toml:"engine"`
	// Model is the recognition model name (e.g. "turbo", "large-v3").
	Model string `toml:"model"`
	// Language is the fixed spoken language of every file in the batch.
	Language string `toml:"language"`
	// Device is the inference device passed to the engine ("cpu", "cuda").
	Device string `toml:"device"`
	// ComputeType is the WhisperX compute type; float32 keeps fp16 off.
	ComputeType string `toml:"compute_type"`
	// VADMethod selects WhisperX voice activity detection ("silero" or "pyannote").
	VADMethod string `toml:"vad_method"`
	// HFToken is the Hugging Face token required by pyannote VAD.
	HFToken       string `toml:"hf_token"`
	UVXBinary     string `toml:"uvx_binary"`
	WhisperBinary string `toml:"whisper_binary"`
	FFmpegBinary  string `toml:"ffmpeg_binary"`
}

// Discovery controls which files in the working directory are transcribed.
type Discovery struct {
	Patterns        []string `toml:"patterns"`
	CaseInsensitive bool     `toml:"case_insensitive"`
}

// Output controls subtitle file naming and write semantics.
type Output struct {
	Extension string `toml:"extension"`
	Atomic    bool   `toml:"atomic"`
}

// Pipeline contains batch execution knobs.
type Pipeline struct {
	// FileTimeoutSeconds bounds one recognizer call; 0 disables the limit.
	FileTimeoutSeconds int `toml:"file_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subforge.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Transcription Transcription `toml:"transcription"`
	Discovery     Discovery     `toml:"discovery"`
	Output        Output        `toml:"output"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. The bool reports whether a file was found; when
// none exists the defaults are returned.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if err := loadDotEnv(filepath.Dir(resolvedPath)); err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// loadDotEnv loads .env files from the config directory and the current
// directory. Variables already present in the environment win.
func loadDotEnv(configDir string) error {
	candidates := []string{filepath.Join(configDir, dotEnvName)}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, dotEnvName))
	}
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return fmt.Errorf("load env file %s: %w", candidate, err)
		}
	}
	return nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockDir returns the directory holding per-working-directory run locks.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

// FileTimeout returns the per-file recognizer timeout, or zero when disabled.
func (c *Config) FileTimeout() time.Duration {
	if c.Pipeline.FileTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Pipeline.FileTimeoutSeconds) * time.Second
}

// RecognizerBinary returns the executable the configured engine shells out to.
func (c *Config) RecognizerBinary() string {
	if c.Transcription.Engine == EngineWhisperX {
		return c.Transcription.UVXBinary
	}
	return c.Transcription.WhisperBinary
}

func expandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
