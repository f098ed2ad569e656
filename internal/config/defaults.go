package config

// Recognizer engine names.
const (
	EngineWhisper  = "whisper"
	EngineWhisperX = "whisperx"
)

const (
	defaultConfigPath    = "~/.config/subforge/config.toml"
	projectConfigName    = "subforge.toml"
	dotEnvName           = ".env"
	defaultStateDir      = "~/.local/share/subforge/state"
	defaultLogDir        = "~/.local/share/subforge/logs"
	defaultEngine        = EngineWhisper
	defaultModel         = "turbo"
	defaultLanguage      = "pt"
	defaultDevice        = "cpu"
	defaultComputeType   = "float32"
	defaultVADMethod     = "silero"
	defaultUVXBinary     = "uvx"
	defaultWhisperBinary = "whisper"
	defaultFFmpegBinary  = "ffmpeg"
	defaultExtension     = ".srt"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// DefaultPatterns is the stock discovery list. Upper-case variants are
// enumerated explicitly and only for some containers; set
// discovery.case_insensitive to match every casing instead.
var DefaultPatterns = []string{
	"*.mp4", "*.mp3", "*.wav", "*.m4a", "*.flac", "*.avi", "*.mov", "*.mkv",
	"*.MP4", "*.MP3", "*.WAV",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	patterns := make([]string, len(DefaultPatterns))
	copy(patterns, DefaultPatterns)
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Transcription: Transcription{
			Engine:        defaultEngine,
			Model:         defaultModel,
			Language:      defaultLanguage,
			Device:        defaultDevice,
			ComputeType:   defaultComputeType,
			VADMethod:     defaultVADMethod,
			UVXBinary:     defaultUVXBinary,
			WhisperBinary: defaultWhisperBinary,
			FFmpegBinary:  defaultFFmpegBinary,
		},
		Discovery: Discovery{
			Patterns: patterns,
		},
		Output: Output{
			Extension: defaultExtension,
			Atomic:    true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
