// Package config loads, normalizes, and validates comicconv configuration.
//
// It supplies repository defaults, expands tilde paths, and reads an
// optional TOML file. Conversion knobs are clamped into range rather than
// rejected so a sloppy config never blocks a run; only genuinely
// unresolvable values (an unknown format name, an unparseable file) fail
// validation. CLI flags override whatever the file provides.
package config
