package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every typed error below matches exactly one of them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrFormat        = errors.New("format error")
	ErrNotFound      = errors.New("not found")
)

// ConfigError reports a missing or invalid run argument.
type ConfigError struct {
	Flag   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Flag == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Flag, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// MissingFlag returns the ConfigError for an unset required flag.
func MissingFlag(flag string) *ConfigError {
	return &ConfigError{Reason: "please specify --" + flag}
}

// FormatError reports a value that does not have the expected shape.
type FormatError struct {
	Source string // file name, empty when unknown
	Line   int    // 1-based, 0 when not line oriented
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: %q", e.Reason, e.Value)
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, msg)
	case e.Source != "":
		return fmt.Sprintf("%s: %s", e.Source, msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// NotFoundError reports a marker that never appeared in a statement.
type NotFoundError struct {
	Source string
	What   string
}

func (e *NotFoundError) Error() string {
	if e.Source == "" {
		return e.What + " not found"
	}
	return fmt.Sprintf("%s: %s not found", e.Source, e.What)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// WithSource fills in the source of a FormatError or NotFoundError that has
// none, including one wrapped further down the chain. Other errors are
// returned unchanged.
func WithSource(err error, source string) error {
	var target interface {
		error
		setSource(string)
	}
	var fe *FormatError
	var nf *NotFoundError
	switch {
	case errors.As(err, &fe) && fe.Source == "":
		target = fe
	case errors.As(err, &nf) && nf.Source == "":
		target = nf
	default:
		return err
	}

	before := target.Error()
	target.setSource(source)
	if _, direct := err.(interface{ setSource(string) }); direct {
		return err
	}
	// Wrapping messages were rendered before the source was known.
	return &sourcedError{
		msg: strings.Replace(err.Error(), before, target.Error(), 1),
		err: err,
	}
}

func (e *FormatError) setSource(source string)   { e.Source = source }
func (e *NotFoundError) setSource(source string) { e.Source = source }

type sourcedError struct {
	msg string
	err error
}

func (e *sourcedError) Error() string { return e.msg }
func (e *sourcedError) Unwrap() error { return e.err }
