// Package srt reads and writes SubRip subtitle files.
//
// Blocks are written as a 1-based index line, a "START --> END" line, the
// cue text, and a blank line, with timestamps in HH:MM:SS,mmm form. Hours are
// not capped and milliseconds are truncated, never rounded up.
package srt
