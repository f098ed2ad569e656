// Package transcript holds the recognizer-neutral representation of a
// transcription: an ordered list of timed text segments.
package transcript
