// Package main hosts the subforge CLI entrypoint and command graph.
//
// The root command transcribes every media file in a directory into .srt
// subtitles. Subcommands report dependency status and scaffold configuration.
// Configuration resolution, logger construction, and recognizer selection
// live in the command context so individual commands stay small.
package main
