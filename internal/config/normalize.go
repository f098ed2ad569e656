package config

import (
	"fmt"
	"os"
	"strings"

	"subforge/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeDiscovery()
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	t := &c.Transcription
	if value := envValue("SUBFORGE_ENGINE"); value != "" {
		t.Engine = value
	}
	if value := envValue("SUBFORGE_MODEL"); value != "" {
		t.Model = value
	}
	if value := envValue("SUBFORGE_LANGUAGE"); value != "" {
		t.Language = value
	}

	t.Engine = strings.ToLower(strings.TrimSpace(t.Engine))
	if t.Engine == "" {
		t.Engine = defaultEngine
	}
	t.Model = strings.TrimSpace(t.Model)
	if t.Model == "" {
		t.Model = defaultModel
	}
	if iso := language.ToISO2(t.Language); iso != "" {
		t.Language = iso
	} else {
		t.Language = strings.ToLower(strings.TrimSpace(t.Language))
	}
	t.Device = strings.ToLower(strings.TrimSpace(t.Device))
	if t.Device == "" {
		t.Device = defaultDevice
	}
	t.ComputeType = strings.ToLower(strings.TrimSpace(t.ComputeType))
	if t.ComputeType == "" {
		t.ComputeType = defaultComputeType
	}
	t.VADMethod = strings.ToLower(strings.TrimSpace(t.VADMethod))
	if t.VADMethod == "" {
		t.VADMethod = defaultVADMethod
	}
	t.HFToken = strings.TrimSpace(t.HFToken)
	if t.HFToken == "" {
		if value := envValue("HUGGING_FACE_HUB_TOKEN"); value != "" {
			t.HFToken = value
		} else {
			t.HFToken = envValue("HF_TOKEN")
		}
	}
	t.UVXBinary = binaryOrDefault(t.UVXBinary, defaultUVXBinary)
	t.WhisperBinary = binaryOrDefault(t.WhisperBinary, defaultWhisperBinary)
	t.FFmpegBinary = binaryOrDefault(t.FFmpegBinary, defaultFFmpegBinary)
}

func (c *Config) normalizeDiscovery() {
	patterns := make([]string, 0, len(c.Discovery.Patterns))
	seen := make(map[string]struct{}, len(c.Discovery.Patterns))
	for _, pattern := range c.Discovery.Patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if _, ok := seen[pattern]; ok {
			continue
		}
		seen[pattern] = struct{}{}
		patterns = append(patterns, pattern)
	}
	c.Discovery.Patterns = patterns
}

func (c *Config) normalizeOutput() {
	ext := strings.TrimSpace(c.Output.Extension)
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Output.Extension = ext
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func envValue(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func binaryOrDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
