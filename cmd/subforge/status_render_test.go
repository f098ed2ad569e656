package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"subforge/internal/pipeline"
)

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("Engine", statusOK, "whisper", false)
	want := "  Engine:        [OK] whisper"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	colored := renderStatusLine("Engine", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red line, got %q", colored)
	}
	if !strings.Contains(colored, "[FAIL]") {
		t.Fatalf("expected FAIL label, got %q", colored)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader(" Resumo ", false)
	if len(lines) != 3 || lines[1] != "  Resumo" || lines[0] != strings.Repeat("=", 10) {
		t.Fatalf("unexpected header %q", lines)
	}
}

func TestRenderSummaryOmitsZeroCounters(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	summary := pipeline.Summary{
		Total:      2,
		Successful: 1,
		Failed:     1,
		Started:    start,
		Finished:   start.Add(90 * time.Second),
		Outcomes: []pipeline.Outcome{
			{Path: "/m/a.mp4", Status: pipeline.StatusSucceeded},
			{Path: "/m/b.mp4", Status: pipeline.StatusFailed, Err: errors.New("decoder\nexploded")},
		},
	}
	text := strings.Join(renderSummary(summary, false), "\n")
	if strings.Contains(text, "Skipped:") {
		t.Fatalf("skipped should be hidden when zero:\n%s", text)
	}
	for _, want := range []string{"1 file", "Failed:", "1m30s", "b.mp4", "decoder exploded"} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestErrorTextTruncates(t *testing.T) {
	long := errors.New(strings.Repeat("é", 150))
	got := errorText(long)
	if len([]rune(got)) != maxErrorWidth || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation %q", got)
	}
	if errorText(nil) != "" {
		t.Fatal("nil error should render empty")
	}
}
