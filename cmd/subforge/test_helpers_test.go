package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"subforge/internal/config"
	"subforge/internal/recognizer"
	"subforge/internal/transcript"
)

type stubRecognizer struct {
	calls   []string
	respond func(ctx context.Context, path string) (transcript.Result, error)
}

func (s *stubRecognizer) Name() string { return "stub" }

func (s *stubRecognizer) Recognize(ctx context.Context, path string, opts recognizer.Options) (transcript.Result, error) {
	s.calls = append(s.calls, filepath.Base(path))
	if s.respond != nil {
		return s.respond(ctx, path)
	}
	return transcript.Result{Segments: []transcript.Segment{
		{Start: 0, End: 1.25, Text: "olá " + filepath.Base(path)},
	}}, nil
}

func stubDeps(rec recognizer.Recognizer) appDeps {
	return appDeps{
		newRecognizer: func(*config.Config) (recognizer.Recognizer, error) { return rec, nil },
	}
}

// setupCLIEnv isolates HOME and PATH. binaries are stub executables placed
// on the new PATH.
func setupCLIEnv(t *testing.T, binaries ...string) {
	t.Helper()
	base := t.TempDir()
	home := filepath.Join(base, "home")
	binDir := filepath.Join(base, "bin")
	for _, dir := range []string{home, binDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	for _, name := range binaries {
		script := []byte("#!/bin/sh\necho \"" + name + " version stub\"\n")
		if err := os.WriteFile(filepath.Join(binDir, name), script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("HOME", home)
	t.Setenv("PATH", binDir)
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"SUBFORGE_ENGINE", "SUBFORGE_MODEL", "SUBFORGE_LANGUAGE", "HF_TOKEN", "HUGGING_FACE_HUB_TOKEN"} {
		t.Setenv(key, "")
	}
}

func mediaDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("media"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, ctx context.Context, deps appDeps, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(ctx, args, &stdout, &stderr, deps)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}
