// Package pipeline drives a batch of media files through recognition and
// subtitle serialization.
//
// Files are processed one at a time in discovery order. A file whose
// subtitle already exists is skipped, which makes reruns resume where the
// previous run stopped. Any failure while handling one file is logged and
// counted, and the batch moves on. Cancelling the context is the only way
// to stop early: the file in flight is counted neither way and Run returns
// the partial Summary together with the context error.
package pipeline
