// Package recognizer wraps external speech-to-text engines behind the
// Recognizer interface.
//
// Two engines are provided. Whisper drives the openai-whisper CLI directly;
// WhisperX runs whisperx through uvx. Both write a JSON transcript into a
// scratch directory which is parsed into a transcript.Result and removed.
// Each engine accepts a CommandRunner so tests can replace the external
// process with canned output.
package recognizer
