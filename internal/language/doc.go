// Package language normalizes the transcription language setting.
//
// Users may write an ISO 639-1 code ("pt"), an ISO 639-2 code ("por"), a
// BCP 47 tag with a region ("pt-BR"), or an English word ("portuguese").
// Recognizer engines only accept the two-letter form, so everything is
// reduced to that before it reaches the command line.
package language
