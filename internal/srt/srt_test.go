package srt

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subforge/internal/transcript"
)

func render(t *testing.T, segments []transcript.Segment) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, segments); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.String()
}

func TestEncodeBlockLayout(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, End: 1, Text: " a "},
		{Start: 1, End: 2.5, Text: "b"},
	}
	want := "1\n00:00:00,000 --> 00:00:01,000\na\n\n2\n00:00:01,000 --> 00:00:02,500\nb\n\n"
	if got := render(t, segments); got != want {
		t.Fatalf("unexpected document:\n%q\nwant:\n%q", got, want)
	}
	if render(t, nil) != "" {
		t.Fatal("no segments should render an empty document")
	}
}

func TestEncodeKeepsMultilineTextInsideBlock(t *testing.T) {
	got := render(t, []transcript.Segment{{Start: 0, End: 1, Text: "linha um\n\n  linha dois "}})
	want := "1\n00:00:00,000 --> 00:00:01,000\nlinha um\nlinha dois\n\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestEncodePreservesInteriorWhitespace(t *testing.T) {
	got := render(t, []transcript.Segment{
		{Start: 0, End: 1, Text: "  Olá,  mundo\t bonito  "},
		{Start: 1, End: 2, Text: "a  b"},
	})
	want := "1\n00:00:00,000 --> 00:00:01,000\nOlá,  mundo\t bonito\n\n" +
		"2\n00:00:01,000 --> 00:00:02,000\na  b\n\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0.0, End: 1.0, Text: "a"},
		{Start: 1.0, End: 2.5, Text: "b"},
	}
	cues, err := Parse(strings.NewReader(render(t, segments)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	for i, cue := range cues {
		if cue.Index != i+1 {
			t.Errorf("cue %d index = %d", i, cue.Index)
		}
		if cue.Start != segments[i].Start || cue.End != segments[i].End || cue.Text != segments[i].Text {
			t.Errorf("cue %d = %+v, want %+v", i, cue, segments[i])
		}
	}
}

func TestParseToleratesCRLFAndBOM(t *testing.T) {
	doc := "\ufeff1\r\n00:00:01,000 --> 00:00:02,000 X1:0\r\nOlá\r\n\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\nmundo\r\n"
	cues, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cues) != 2 || cues[0].Text != "Olá" || cues[1].End != 4 {
		t.Fatalf("unexpected cues %+v", cues)
	}
}

func TestParseRejectsMalformedBlock(t *testing.T) {
	if _, err := Parse(strings.NewReader("one\n00:00:01,000 --> 00:00:02,000\ntext\n")); err == nil {
		t.Fatal("expected invalid index error")
	}
	if _, err := Parse(strings.NewReader("1\nno timing here\n")); err == nil {
		t.Fatal("expected invalid timing error")
	}
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aula.srt")
	segments := []transcript.Segment{{Start: 0, End: 1.2, Text: "Ação"}}

	if err := WriteFile(path, segments, true); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != render(t, segments) {
		t.Fatalf("unexpected file content %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the subtitle, found %d entries", len(entries))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("unexpected mode %v", info.Mode().Perm())
	}
}

func TestWriteFileFailsWhenDirectoryMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.srt")
	for _, atomic := range []bool{true, false} {
		if err := WriteFile(path, nil, atomic); err == nil {
			t.Fatalf("atomic=%v: expected error for missing directory", atomic)
		}
	}
}

func TestWriteFileDirect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.srt")
	if err := WriteFile(path, []transcript.Segment{{Start: 2, End: 3, Text: "oi"}}, false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cues, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "oi" {
		t.Fatalf("unexpected cues %+v", cues)
	}
}
