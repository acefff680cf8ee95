package main

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedPlatform is returned when no enumeration backend exists for the running OS.
	ErrUnsupportedPlatform = errors.New("drive enumeration is not supported on this platform")
	// ErrDeviceNotFound is returned when a lookup matches none of the enumerated devices.
	ErrDeviceNotFound = errors.New("device not found")
)

// ProcessError reports an external tool that could not be run, exited non-zero
// or wrote to stderr.
type ProcessError struct {
	Tool   string
	Code   int
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	switch {
	case e.Code != 0:
		return fmt.Sprintf("%s ExitCode: %d", e.Tool, e.Code)
	case e.Stderr != "":
		return fmt.Sprintf("%s stderr: %s", e.Tool, strings.TrimSpace(e.Stderr))
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	default:
		return e.Tool + ": unknown failure"
	}
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ParseError reports malformed structured output from a tool.
type ParseError struct {
	Tool string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s output: %v", e.Tool, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FilesystemError reports a failed directory listing or link read.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// PathEncodingError reports a path that is not valid UTF-8 text.
type PathEncodingError struct {
	Path string
}

func (e *PathEncodingError) Error() string {
	return fmt.Sprintf("path is not valid UTF-8: %q", e.Path)
}
