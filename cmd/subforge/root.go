package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(deps appDeps) *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag, deps)

	rootCmd := &cobra.Command{
		Use:   "subforge [dir]",
		Short: "Transcribe audio and video files into SRT subtitles",
		Long: `subforge transcribes every audio/video file in a directory (default: the
current directory) and writes a .srt subtitle next to each one.

Files that already have a subtitle are skipped, so an interrupted run can be
resumed by running the same command again.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(cmd, ctx, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
