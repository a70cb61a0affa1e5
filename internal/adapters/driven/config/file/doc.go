// Package file provides a TOML-file implementation of the config
// store port. Configuration lives in a single config.toml under the
// docmind config directory.
package file
