package recognizer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subforge/internal/transcript"
)

// jsonSegment matches the segment objects both whisper and whisperx emit.
// Extra fields (words, tokens, avg_logprob) are ignored.
type jsonSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type jsonPayload struct {
	Language string        `json:"language"`
	Segments []jsonSegment `json:"segments"`
}

// LoadJSON parses an engine JSON transcript and cleans it.
func LoadJSON(path string) (transcript.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return transcript.Result{}, err
	}
	var payload jsonPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return transcript.Result{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	result := transcript.Result{
		Language: strings.TrimSpace(payload.Language),
		Segments: make([]transcript.Segment, 0, len(payload.Segments)),
	}
	for _, seg := range payload.Segments {
		result.Segments = append(result.Segments, transcript.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return transcript.Clean(result), nil
}

// transcriptPath is where both engines write the JSON for source: the source
// stem with a .json extension inside outputDir.
func transcriptPath(outputDir, source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".json")
}

// scratchDir creates a per-call directory for engine output.
func scratchDir(root string) (string, func(), error) {
	if root != "" {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return "", func() {}, fmt.Errorf("create scratch root: %w", err)
		}
	}
	dir, err := os.MkdirTemp(root, "subforge-*")
	if err != nil {
		return "", func() {}, fmt.Errorf("create scratch dir: %w", err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}
