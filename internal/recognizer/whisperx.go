package recognizer

// WhisperXConfig configures the WhisperX engine launched through uvx.
type WhisperXConfig struct {
	UVXBinary   string
	Model       string
	Device      string
	ComputeType string
	VADMethod   string
	HFToken     string
	ScratchDir  string
}

// WhisperX engine defaults.
const (
	EngineWhisperX       = "whisperx"
	UVXCommand           = "uvx"
	PypiIndexURL         = "https://pypi.org/simple"
	CompatComputeType    = "float32"
	VADMethodSilero      = "silero"
	VADMethodPyannote    = "pyannote"
	torchWeightsOnlyFlag = "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1"
)

// NewWhisperX builds the WhisperX engine. A nil runner uses ExecRunner with
// the torch legacy-checkpoint flag set, which pyannote still needs.
func NewWhisperX(cfg WhisperXConfig, runner CommandRunner) Recognizer {
	if cfg.UVXBinary == "" {
		cfg.UVXBinary = UVXCommand
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if cfg.ComputeType == "" {
		cfg.ComputeType = CompatComputeType
	}
	if cfg.VADMethod == "" {
		cfg.VADMethod = VADMethodSilero
	}
	if runner == nil {
		runner = ExecRunner(torchWeightsOnlyFlag)
	}
	return &engine{
		name:       EngineWhisperX,
		binary:     cfg.UVXBinary,
		scratchDir: cfg.ScratchDir,
		runner:     runner,
		buildArgs: func(source, outputDir string, opts Options) []string {
			return whisperXArgs(cfg, source, outputDir, opts)
		},
	}
}

func whisperXArgs(cfg WhisperXConfig, source, outputDir string, opts Options) []string {
	computeType := cfg.ComputeType
	if opts.CompatibilityMode {
		computeType = CompatComputeType
	}
	args := []string{
		"--index-url", PypiIndexURL,
		"whisperx",
		source,
		"--model", cfg.Model,
		"--language", opts.Language,
		"--device", cfg.Device,
		"--compute_type", computeType,
		"--output_format", jsonOutputFormat,
		"--output_dir", outputDir,
		"--vad_method", cfg.VADMethod,
	}
	if cfg.VADMethod == VADMethodPyannote && cfg.HFToken != "" {
		args = append(args, "--hf_token", cfg.HFToken)
	}
	if opts.Deterministic {
		args = append(args,
			"--temperature", zeroTemperature,
			"--temperature_increment_on_fallback", noFallbackIncrease,
		)
	}
	return args
}
