package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subforge/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func stubBinaries(t *testing.T, names ...string) {
	t.Helper()
	binDir := t.TempDir()
	for _, name := range names {
		script := []byte("#!/bin/sh\necho \"" + name + " version test\"\n")
		if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir)
}

func TestRunAllPassesWithBinariesPresent(t *testing.T) {
	stubBinaries(t, "ffmpeg", "whisper")
	cfg := config.Default()

	results := RunAll(context.Background(), &cfg, t.TempDir())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %+v", results)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	if results[1].Detail != "ffmpeg version test" {
		t.Fatalf("expected ffmpeg version detail, got %q", results[1].Detail)
	}
}

func TestRunAllReportsMissingDecoder(t *testing.T) {
	stubBinaries(t, "uvx")
	cfg := config.Default()
	cfg.Transcription.Engine = config.EngineWhisperX

	failed := Failed(RunAll(context.Background(), &cfg, t.TempDir()))
	if len(failed) != 1 || failed[0].Name != "FFmpeg" {
		t.Fatalf("expected only ffmpeg missing, got %+v", failed)
	}
	if failed[0].Hint == "" {
		t.Fatal("expected install hint for ffmpeg")
	}
	msg := Summarize(failed)
	if !strings.Contains(msg, "FFmpeg") || !strings.Contains(msg, "install:") {
		t.Fatalf("unexpected summary %q", msg)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, t.TempDir()); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}
