package recognizer

// WhisperConfig configures the openai-whisper CLI engine.
type WhisperConfig struct {
	Binary string
	Model  string
	Device string
	// ScratchDir is the parent for per-call output directories; empty uses
	// the system temp directory.
	ScratchDir string
}

// Whisper engine defaults.
const (
	EngineWhisper      = "whisper"
	WhisperCommand     = "whisper"
	DefaultModel       = "turbo"
	DefaultDevice      = "cpu"
	jsonOutputFormat   = "json"
	zeroTemperature    = "0"
	noFallbackIncrease = "None"
)

// NewWhisper builds the whisper CLI engine. A nil runner uses ExecRunner.
func NewWhisper(cfg WhisperConfig, runner CommandRunner) Recognizer {
	if cfg.Binary == "" {
		cfg.Binary = WhisperCommand
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if runner == nil {
		runner = ExecRunner()
	}
	return &engine{
		name:       EngineWhisper,
		binary:     cfg.Binary,
		scratchDir: cfg.ScratchDir,
		runner:     runner,
		buildArgs: func(source, outputDir string, opts Options) []string {
			return whisperArgs(cfg, source, outputDir, opts)
		},
	}
}

func whisperArgs(cfg WhisperConfig, source, outputDir string, opts Options) []string {
	args := []string{
		source,
		"--model", cfg.Model,
		"--language", opts.Language,
		"--task", "transcribe",
		"--device", cfg.Device,
		"--output_format", jsonOutputFormat,
		"--output_dir", outputDir,
		"--verbose", "False",
	}
	if opts.Deterministic {
		args = append(args,
			"--temperature", zeroTemperature,
			"--temperature_increment_on_fallback", noFallbackIncrease,
		)
	}
	if opts.CompatibilityMode {
		args = append(args, "--fp16", "False")
	}
	return args
}
