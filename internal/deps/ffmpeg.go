package deps

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// FFmpegRequirement describes the decoder both recognizer engines use to
// read media.
func FFmpegRequirement(command string) Requirement {
	if strings.TrimSpace(command) == "" {
		command = "ffmpeg"
	}
	return Requirement{
		Name:        "FFmpeg",
		Command:     command,
		Description: "Decodes audio and video for the recognizer",
		Hint:        FFmpegInstallHint(runtime.GOOS),
	}
}

// RecognizerRequirement describes the engine launcher for engine.
func RecognizerRequirement(engine, command string) Requirement {
	switch engine {
	case "whisperx":
		return Requirement{
			Name:        "uvx",
			Command:     command,
			Description: "Runs WhisperX in an isolated Python environment",
			Hint:        "install uv: https://docs.astral.sh/uv/getting-started/installation/",
		}
	default:
		return Requirement{
			Name:        "Whisper",
			Command:     command,
			Description: "openai-whisper command-line recognizer",
			Hint:        "pip install -U openai-whisper",
		}
	}
}

// FFmpegInstallHint returns the package-manager command for goos.
func FFmpegInstallHint(goos string) string {
	switch goos {
	case "darwin":
		return "brew install ffmpeg"
	case "windows":
		return "choco install ffmpeg (or download from https://ffmpeg.org/download.html)"
	default:
		return "sudo apt install ffmpeg"
	}
}

// Version runs "command -version" and returns the first output line, which
// for ffmpeg carries the release string. Any failure yields "".
func Version(ctx context.Context, command string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, command, "-version").Output() //nolint:gosec
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}
