package srt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"subforge/internal/transcript"
)

// Encode writes segments as SRT blocks in the given order. Segment text is
// normalized; a segment whose text is empty after normalization is still
// written so indices line up with the input.
func Encode(w io.Writer, segments []transcript.Segment) error {
	bw := bufio.NewWriter(w)
	for i, seg := range segments {
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatTimestamp(seg.Start),
			FormatTimestamp(seg.End),
			cueText(seg.Text),
		); err != nil {
			return fmt.Errorf("write cue %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush srt: %w", err)
	}
	return nil
}

// cueText trims each line and drops blank ones so the text can never
// terminate the block early. Spacing inside a line is left alone.
func cueText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = transcript.NormalizeText(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// WriteFile writes segments to path. With atomic set the document goes to a
// hidden temporary file beside path, is synced, and is renamed into place,
// so path only ever exists complete.
func WriteFile(path string, segments []transcript.Segment, atomic bool) error {
	if !atomic {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create subtitle: %w", err)
		}
		if err := Encode(file, segments); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("close subtitle: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp subtitle: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := Encode(tmp, segments); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp subtitle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp subtitle: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp subtitle: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("commit subtitle: %w", err)
	}
	committed = true
	return nil
}
