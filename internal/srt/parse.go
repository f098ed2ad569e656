package srt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Cue is one parsed SRT block.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Parse reads SRT blocks from r. Blocks are separated by one or more blank
// lines; a UTF-8 byte order mark and CRLF line endings are tolerated.
func Parse(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		cues  []Cue
		block []string
		line  int
	)
	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		cue, err := parseBlock(block)
		if err != nil {
			return fmt.Errorf("block ending at line %d: %w", line, err)
		}
		cues = append(cues, cue)
		block = block[:0]
		return nil
	}

	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cues, nil
}

// ParseFile parses the SRT document at path.
func ParseFile(path string) ([]Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open srt: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

func parseBlock(lines []string) (Cue, error) {
	if len(lines) < 2 {
		return Cue{}, fmt.Errorf("incomplete cue %q", strings.Join(lines, " / "))
	}
	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Cue{}, fmt.Errorf("invalid cue index %q", lines[0])
	}
	startText, endText, ok := strings.Cut(lines[1], "-->")
	if !ok {
		return Cue{}, fmt.Errorf("invalid timing line %q", lines[1])
	}
	start, err := ParseTimestamp(startText)
	if err != nil {
		return Cue{}, err
	}
	// Ignore positional hints some encoders append after the end time.
	if fields := strings.Fields(endText); len(fields) > 0 {
		endText = fields[0]
	}
	end, err := ParseTimestamp(endText)
	if err != nil {
		return Cue{}, err
	}
	return Cue{
		Index: index,
		Start: start,
		End:   end,
		Text:  strings.Join(lines[2:], "\n"),
	}, nil
}
