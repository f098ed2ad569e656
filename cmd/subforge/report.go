package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"subforge/internal/config"
	"subforge/internal/discovery"
	"subforge/internal/language"
	"subforge/internal/pipeline"
)

func writeLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

func renderBanner(workDir string, cfg *config.Config, engine, runID string, colorize bool) []string {
	lines := renderSectionHeader("subforge: audio/video to SRT", colorize)
	lines = append(lines,
		renderStatusLine("Directory", statusInfo, workDir, colorize),
		renderStatusLine("Engine", statusInfo, engine, colorize),
		renderStatusLine("Model", statusInfo, cfg.Transcription.Model, colorize),
		renderStatusLine("Language", statusInfo, fmt.Sprintf("%s (%s)", language.DisplayName(cfg.Transcription.Language), cfg.Transcription.Language), colorize),
		renderStatusLine("Run ID", statusInfo, runID, colorize),
		"",
	)
	return lines
}

func renderNoFiles(patterns []string, colorize bool) []string {
	return []string{
		renderStatusLine("Media files", statusWarn, "none found in this directory", colorize),
		renderStatusLine("Formats", statusInfo, strings.Join(discovery.Extensions(patterns), ", "), colorize),
	}
}

func renderSummary(summary pipeline.Summary, colorize bool) []string {
	lines := []string{""}
	lines = append(lines, renderSectionHeader("Transcription summary", colorize)...)
	lines = append(lines, renderStatusLine("Successful", statusOK, pluralFiles(summary.Successful), colorize))
	if summary.Skipped > 0 {
		lines = append(lines, renderStatusLine("Skipped", statusInfo, pluralFiles(summary.Skipped)+" (subtitle already existed)", colorize))
	}
	if summary.Failed > 0 {
		lines = append(lines, renderStatusLine("Failed", statusError, pluralFiles(summary.Failed), colorize))
	}
	lines = append(lines, renderStatusLine("Elapsed", statusInfo, summary.Elapsed().Round(time.Second).String(), colorize))

	if failed := summary.FailedOutcomes(); len(failed) > 0 {
		rows := make([][]string, 0, len(failed))
		for _, o := range failed {
			rows = append(rows, []string{filepath.Base(o.Path), errorText(o.Err)})
		}
		lines = append(lines, "", renderTable([]string{"File", "Error"}, rows, nil))
	}
	return lines
}

func renderInterrupted(summary pipeline.Summary, colorize bool) []string {
	lines := []string{""}
	lines = append(lines, renderStatusLine("Interrupted", statusWarn, "stopped by user", colorize))
	lines = append(lines, renderStatusLine("Completed", statusInfo, fmt.Sprintf("%d of %d", summary.Processed(), summary.Total), colorize))
	lines = append(lines, renderStatusLine("Resume", statusInfo, "run the same command again; finished files are skipped", colorize))
	return lines
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return strconv.Itoa(n) + " files"
}

const maxErrorWidth = 100

func errorText(err error) string {
	if err == nil {
		return ""
	}
	runes := []rune(strings.Join(strings.Fields(err.Error()), " "))
	if len(runes) > maxErrorWidth {
		return string(runes[:maxErrorWidth-3]) + "..."
	}
	return string(runes)
}
