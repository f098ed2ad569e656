package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"subforge/internal/discovery"
	"subforge/internal/language"
	"subforge/internal/preflight"
	"subforge/internal/srt"
)

var errChecksFailed = errors.New("one or more checks failed")

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify dependencies and show what a run would process",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			workDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolve directory %q: %w", dir, err)
			}

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found, defaults in use)"
			}
			lines = append(lines,
				renderStatusLine("Config", statusInfo, configDetail, colorize),
				renderStatusLine("Engine", statusInfo, cfg.Transcription.Engine, colorize),
				renderStatusLine("Model", statusInfo, cfg.Transcription.Model, colorize),
				renderStatusLine("Language", statusInfo, language.DisplayName(cfg.Transcription.Language), colorize),
				renderStatusLine("Atomic write", statusInfo, yesNo(cfg.Output.Atomic), colorize),
				"",
			)

			results := preflight.RunAll(runCtx, cfg, workDir)
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			for _, r := range results {
				kind := statusOK
				detail := r.Detail
				if !r.Passed {
					kind = statusError
					if r.Hint != "" {
						detail += "; install: " + r.Hint
					}
				}
				lines = append(lines, renderStatusLine(r.Name, kind, detail, colorize))
			}

			failed := preflight.Failed(results)
			if preflight.CheckDirectoryAccess("", workDir).Passed {
				files, err := discovery.Discover(workDir, discovery.Options{
					Patterns:        cfg.Discovery.Patterns,
					CaseInsensitive: cfg.Discovery.CaseInsensitive,
				})
				if err != nil {
					return err
				}
				lines = append(lines, "")
				lines = append(lines, renderSectionHeader("Work list", colorize)...)
				lines = append(lines, renderWorkList(files, cfg.Output.Extension, colorize)...)
			}

			writeLines(out, lines)
			if len(failed) > 0 {
				return errChecksFailed
			}
			return nil
		},
	}
}

// renderWorkList shows each media file with its subtitle state. A subtitle
// that exists but does not parse is reported as corrupt: a run would skip it,
// so it has to be deleted before the file is transcribed again.
func renderWorkList(files []string, ext string, colorize bool) []string {
	if len(files) == 0 {
		return []string{renderStatusLine("Media files", statusWarn, "none found", colorize)}
	}
	rows := make([][]string, 0, len(files))
	pending, corrupt := 0, 0
	for i, path := range files {
		state := subtitleState(discovery.OutputPath(path, ext))
		switch state {
		case "pending":
			pending++
		case "corrupt":
			corrupt++
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), filepath.Base(path), state})
	}
	lines := []string{
		renderTable([]string{"#", "File", "Subtitle"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft}),
		renderStatusLine("Pending", statusInfo, fmt.Sprintf("%d of %d", pending, len(files)), colorize),
	}
	if corrupt > 0 {
		lines = append(lines, renderStatusLine("Corrupt", statusWarn, pluralFiles(corrupt)+" (delete to transcribe again)", colorize))
	}
	return lines
}

func subtitleState(path string) string {
	if exists, _ := fileExists(path); !exists {
		return "pending"
	}
	if _, err := srt.ParseFile(path); err != nil {
		return "corrupt"
	}
	return "done"
}
