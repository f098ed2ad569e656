package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subforge/internal/discovery"
	"subforge/internal/logging"
	"subforge/internal/recognizer"
	"subforge/internal/transcript"
)

var testPatterns = []string{"*.mp4", "*.mp3", "*.wav", "*.MP4"}

type fakeRecognizer struct {
	calls   []string
	opts    []recognizer.Options
	respond func(ctx context.Context, path string) (transcript.Result, error)
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Recognize(ctx context.Context, path string, opts recognizer.Options) (transcript.Result, error) {
	f.calls = append(f.calls, filepath.Base(path))
	f.opts = append(f.opts, opts)
	if f.respond != nil {
		return f.respond(ctx, path)
	}
	return cannedResult(path), nil
}

func cannedResult(path string) transcript.Result {
	name := filepath.Base(path)
	return transcript.Result{Language: "pt", Segments: []transcript.Segment{
		{Start: 0, End: 1, Text: "início de " + name},
		{Start: 1, End: 2.5, Text: "fim"},
	}}
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

func newController(t *testing.T, rec recognizer.Recognizer, mutate ...func(*Config)) *Controller {
	t.Helper()
	cfg := Config{
		Recognizer:  rec,
		Recognition: recognizer.Options{Language: "pt", Deterministic: true, CompatibilityMode: true},
		Discovery:   discovery.Options{Patterns: testPatterns},
		Extension:   ".srt",
		Atomic:      true,
		RunID:       "test-run",
		Logger:      logging.NewNop(),
	}
	for _, fn := range mutate {
		fn(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestRunDirTranscribesInOrderWithFixedOptions(t *testing.T) {
	dir := mediaDir(t, "b.mp4", "a.wav", "notes.txt")
	rec := &fakeRecognizer{}
	c := newController(t, rec)

	summary, err := c.RunDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if summary.Total != 2 || summary.Successful != 2 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if strings.Join(rec.calls, ",") != "a.wav,b.mp4" {
		t.Fatalf("unexpected call order %v", rec.calls)
	}
	for _, opts := range rec.opts {
		if opts.Language != "pt" || !opts.Deterministic || !opts.CompatibilityMode {
			t.Fatalf("unexpected recognition options %+v", opts)
		}
	}
	want := "1\n00:00:00,000 --> 00:00:01,000\ninício de a.wav\n\n2\n00:00:01,000 --> 00:00:02,500\nfim\n\n"
	if got := readFile(t, filepath.Join(dir, "a.srt")); got != want {
		t.Fatalf("unexpected subtitle:\n%q", got)
	}
	if c.State() != StateDone {
		t.Fatalf("expected done state, got %s", c.State())
	}
	if summary.RunID != "test-run" || summary.Dir != dir {
		t.Fatalf("summary metadata not populated: %+v", summary)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := mediaDir(t, "a.mp4", "b.mp3", "c.wav")
	first := &fakeRecognizer{}
	if _, err := newController(t, first).RunDir(context.Background(), dir); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before := map[string]string{}
	for _, name := range []string{"a.srt", "b.srt", "c.srt"} {
		before[name] = readFile(t, filepath.Join(dir, name))
	}

	second := &fakeRecognizer{}
	summary, err := newController(t, second).RunDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Skipped != summary.Total || summary.Successful != 0 || summary.Total != 3 {
		t.Fatalf("expected everything skipped, got %+v", summary)
	}
	if len(second.calls) != 0 {
		t.Fatalf("recognizer must not run for skipped files: %v", second.calls)
	}
	for name, content := range before {
		if got := readFile(t, filepath.Join(dir, name)); got != content {
			t.Fatalf("%s changed between runs", name)
		}
	}
}

func TestRunResumesPartialDirectory(t *testing.T) {
	dir := mediaDir(t, "a.mp4", "b.mp4")
	if err := os.WriteFile(filepath.Join(dir, "a.srt"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec := &fakeRecognizer{}
	summary, err := newController(t, rec).RunDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if summary.Skipped != 1 || summary.Successful != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if strings.Join(rec.calls, ",") != "b.mp4" {
		t.Fatalf("expected only b.mp4 transcribed, got %v", rec.calls)
	}
	if readFile(t, filepath.Join(dir, "a.srt")) != "existing" {
		t.Fatal("existing subtitle must not be touched")
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	dir := mediaDir(t, "a.mp4", "b.mp4", "c.mp4", "d.mp4", "e.mp4")
	if err := os.WriteFile(filepath.Join(dir, "e.srt"), []byte("done"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec := &fakeRecognizer{respond: func(ctx context.Context, path string) (transcript.Result, error) {
		switch filepath.Base(path) {
		case "b.mp4":
			return transcript.Result{}, errors.New("corrupt media")
		case "c.mp4":
			panic("model crashed")
		}
		return cannedResult(path), nil
	}}

	summary, err := newController(t, rec).RunDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if len(rec.calls) != 4 {
		t.Fatalf("expected every pending file attempted, got %v", rec.calls)
	}
	if summary.Successful != 2 || summary.Failed != 2 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Processed() != summary.Total {
		t.Fatalf("counters must sum to total: %+v", summary)
	}
	for _, name := range []string{"b.srt", "c.srt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Fatalf("failed file must not leave %s behind", name)
		}
	}
	failed := summary.FailedOutcomes()
	if len(failed) != 2 || !strings.Contains(failed[0].Err.Error(), "corrupt media") {
		t.Fatalf("unexpected failed outcomes %+v", failed)
	}
	if !errors.Is(failed[1].Err, ErrRecognizerPanic) {
		t.Fatalf("expected recovered panic, got %v", failed[1].Err)
	}
}

func TestRunDirEmptyDirectory(t *testing.T) {
	dir := mediaDir(t, "readme.txt")
	rec := &fakeRecognizer{}
	c := newController(t, rec)
	summary, err := c.RunDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if summary.Total != 0 || summary.Successful != 0 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
	if c.State() != StateDone {
		t.Fatalf("expected done state, got %s", c.State())
	}
}

func TestRunDirMissingDirectory(t *testing.T) {
	c := newController(t, &fakeRecognizer{})
	_, err := c.RunDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, discovery.ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
}

func TestRunCancellationPropagates(t *testing.T) {
	dir := mediaDir(t, "a.mp4", "b.mp4", "c.mp4")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &fakeRecognizer{respond: func(ctx context.Context, path string) (transcript.Result, error) {
		if filepath.Base(path) == "b.mp4" {
			cancel()
			return transcript.Result{}, ctx.Err()
		}
		return cannedResult(path), nil
	}}
	c := newController(t, rec)

	summary, err := c.RunDir(ctx, dir)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Successful != 1 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Fatalf("in-flight file must not be counted: %+v", summary)
	}
	if summary.Remaining() != 2 {
		t.Fatalf("expected 2 remaining, got %d", summary.Remaining())
	}
	if strings.Join(rec.calls, ",") != "a.mp4,b.mp4" {
		t.Fatalf("work after cancellation must not start: %v", rec.calls)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.srt")); !os.IsNotExist(err) {
		t.Fatal("cancelled file must not produce a subtitle")
	}
	if c.State() != StateAborted {
		t.Fatalf("expected aborted state, got %s", c.State())
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &fakeRecognizer{}
	summary, err := newController(t, rec).Run(ctx, []string{"/nowhere/a.mp4"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(rec.calls) != 0 || summary.Processed() != 0 {
		t.Fatalf("nothing should run: calls=%v summary=%+v", rec.calls, summary)
	}
}

func TestFileTimeoutIsAFailureNotACancellation(t *testing.T) {
	dir := mediaDir(t, "a.mp4", "b.mp4")
	rec := &fakeRecognizer{respond: func(ctx context.Context, path string) (transcript.Result, error) {
		if filepath.Base(path) == "a.mp4" {
			<-ctx.Done()
			return transcript.Result{}, ctx.Err()
		}
		return cannedResult(path), nil
	}}
	c := newController(t, rec, func(cfg *Config) { cfg.FileTimeout = 20 * time.Millisecond })

	summary, err := c.RunDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if summary.Failed != 1 || summary.Successful != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	failed := summary.FailedOutcomes()
	if !strings.Contains(failed[0].Err.Error(), "timed out") {
		t.Fatalf("expected timeout in error, got %v", failed[0].Err)
	}
}

func TestEmptyTranscriptWritesEmptySubtitle(t *testing.T) {
	dir := mediaDir(t, "silence.wav")
	rec := &fakeRecognizer{respond: func(ctx context.Context, path string) (transcript.Result, error) {
		return transcript.Result{}, nil
	}}
	summary, err := newController(t, rec).RunDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if summary.Successful != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if got := readFile(t, filepath.Join(dir, "silence.srt")); got != "" {
		t.Fatalf("expected empty subtitle, got %q", got)
	}
}

func TestSerializationFailureIsIsolated(t *testing.T) {
	dir := mediaDir(t, "a.mp4", "b.mp4")
	// Subtitles land in "<stem>.srt.d/x"; only a.srt.d exists, so writing b fails.
	if err := os.Mkdir(filepath.Join(dir, "a.srt.d"), 0o755); err != nil {
		t.Fatal(err)
	}
	rec := &fakeRecognizer{}
	c := newController(t, rec, func(cfg *Config) { cfg.Extension = ".srt.d/x" })
	summary, err := c.Run(context.Background(), []string{filepath.Join(dir, "a.mp4"), filepath.Join(dir, "b.mp4")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Successful != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestNewRequiresRecognizer(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without recognizer")
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		StateIdle:        "idle",
		StateDiscovering: "discovering",
		StateNoFiles:     "no_files",
		StateProcessing:  "processing",
		StateSummarizing: "summarizing",
		StateDone:        "done",
		StateAborted:     "aborted",
		State(99):        "unknown",
	} {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", state, got, want)
		}
	}
}
