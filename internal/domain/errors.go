package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrUnknownPreset indicates an unknown preset name was requested
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrUnknownCompression indicates an unknown compression method name
	ErrUnknownCompression = errors.New("unknown compression method")

	// ErrSourceNotFound indicates the source directory does not exist
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrSourceNotDir indicates the source path is not a directory
	ErrSourceNotDir = errors.New("source path is not a directory")
)

// ConfigError represents a configuration failure: an unknown preset,
// an unreadable custom config file, or ignore content that cannot be
// parsed as patterns. Configuration failures abort before traversal.
type ConfigError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("config error in %s:%d: %s", e.File, e.Line, e.Message)
	case e.File != "":
		return fmt.Sprintf("config error in %s: %s", e.File, e.Message)
	default:
		return fmt.Sprintf("config error: %s", e.Message)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(file string, line int, message string, err error) *ConfigError {
	return &ConfigError{
		File:    file,
		Line:    line,
		Message: message,
		Err:     err,
	}
}

// ArchiveError represents a fatal failure to create or write the
// destination archive. Unlike per-file read failures, archive failures
// abort the run immediately.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive error for %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// NewArchiveError creates a new ArchiveError
func NewArchiveError(path string, err error) *ArchiveError {
	return &ArchiveError{Path: path, Err: err}
}

// IsFatal reports whether an error should abort a packaging run.
// Only configuration and destination-archive failures are fatal;
// per-file read failures are recoverable and counted as warnings.
func IsFatal(err error) bool {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return true
	}

	var arcErr *ArchiveError
	return errors.As(err, &arcErr)
}
