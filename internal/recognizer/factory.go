package recognizer

import (
	"fmt"
	"path/filepath"

	"subforge/internal/config"
)

// New builds the recognizer selected by cfg. The same instance is meant to
// serve every file of a run.
func New(cfg *config.Config, runner CommandRunner) (Recognizer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("recognizer: config required")
	}
	t := cfg.Transcription
	scratch := ""
	if cfg.Paths.StateDir != "" {
		scratch = filepath.Join(cfg.Paths.StateDir, "scratch")
	}
	switch t.Engine {
	case config.EngineWhisper:
		return NewWhisper(WhisperConfig{
			Binary:     t.WhisperBinary,
			Model:      t.Model,
			Device:     t.Device,
			ScratchDir: scratch,
		}, runner), nil
	case config.EngineWhisperX:
		return NewWhisperX(WhisperXConfig{
			UVXBinary:   t.UVXBinary,
			Model:       t.Model,
			Device:      t.Device,
			ComputeType: t.ComputeType,
			VADMethod:   t.VADMethod,
			HFToken:     t.HFToken,
			ScratchDir:  scratch,
		}, runner), nil
	default:
		return nil, fmt.Errorf("recognizer: unsupported engine %q", t.Engine)
	}
}

// DefaultOptions returns the call options every batch run uses: the
// configured language, zero temperature, and fp16 disabled.
func DefaultOptions(cfg *config.Config) Options {
	return Options{
		Language:          cfg.Transcription.Language,
		Deterministic:     true,
		CompatibilityMode: true,
	}
}
