package transcript

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Segment is one timed span of recognized speech. Times are seconds from
// the start of the media.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the full output of one recognizer call.
type Result struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}

// Empty reports whether the result carries no segments.
func (r Result) Empty() bool {
	return len(r.Segments) == 0
}

// NormalizeText folds text to Unicode NFC and trims surrounding whitespace.
// Interior spacing is kept as recognized.
func NormalizeText(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}

// Clean returns a copy of the result with segment text normalized and
// segments dropped when their text is empty or their times are not finite.
// Negative times are clamped to zero. Order is preserved.
func Clean(r Result) Result {
	out := Result{Language: r.Language, Segments: make([]Segment, 0, len(r.Segments))}
	for _, seg := range r.Segments {
		text := NormalizeText(seg.Text)
		if text == "" {
			continue
		}
		if !finite(seg.Start) || !finite(seg.End) {
			continue
		}
		out.Segments = append(out.Segments, Segment{
			Start: math.Max(seg.Start, 0),
			End:   math.Max(seg.End, 0),
			Text:  text,
		})
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
