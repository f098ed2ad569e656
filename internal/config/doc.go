// Package config loads, normalizes, and validates subforge configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads optional .env files, and honours
// environment overrides such as SUBFORGE_LANGUAGE and HF_TOKEN. The Config type
// centralizes every knob the CLI and pipeline need: recognizer engine and
// model, the transcription language, discovery patterns, output extension,
// and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical language codes, and clear validation errors.
package config
