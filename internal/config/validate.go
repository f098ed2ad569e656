package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if c.Pipeline.FileTimeoutSeconds < 0 {
		return errors.New("pipeline.file_timeout_seconds must be >= 0")
	}
	return c.validateLogging()
}

func (c *Config) validateTranscription() error {
	t := c.Transcription
	switch t.Engine {
	case EngineWhisper, EngineWhisperX:
	default:
		return fmt.Errorf("transcription.engine must be %q or %q, got %q", EngineWhisper, EngineWhisperX, t.Engine)
	}
	if strings.TrimSpace(t.Model) == "" {
		return errors.New("transcription.model must be set")
	}
	if strings.TrimSpace(t.Language) == "" {
		return errors.New("transcription.language must be set (auto-detection is not supported)")
	}
	if t.Language == "auto" {
		return errors.New("transcription.language must name a language; auto-detection is not supported")
	}
	switch t.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.vad_method must be silero or pyannote, got %q", t.VADMethod)
	}
	if t.Engine == EngineWhisperX && t.VADMethod == "pyannote" && t.HFToken == "" {
		return errors.New("transcription.hf_token must be set when vad_method is pyannote (or set HF_TOKEN)")
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	if len(c.Discovery.Patterns) == 0 {
		return errors.New("discovery.patterns must include at least one pattern")
	}
	for _, pattern := range c.Discovery.Patterns {
		if strings.ContainsAny(pattern, `/\`) {
			return fmt.Errorf("discovery.patterns: %q must not contain a path separator", pattern)
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("discovery.patterns: %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validateOutput() error {
	ext := c.Output.Extension
	if len(ext) < 2 || strings.ContainsAny(ext, `/\*?[`) {
		return fmt.Errorf("output.extension %q is not a valid file extension", ext)
	}
	for _, pattern := range c.Discovery.Patterns {
		if matched, _ := filepath.Match(pattern, "x"+ext); matched {
			return fmt.Errorf("output.extension %q would be picked up by discovery pattern %q", ext, pattern)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
