package errors

import (
	// Go Internal Packages
	"errors"
	"strings"
)

// Kind classifies an error so callers can decide how to surface it.
type Kind uint8

const (
	Other    Kind = iota // Unclassified error.
	Invalid              // Malformed input or configuration.
	NotExist             // Item does not exist.
	Internal             // Internal failure in a dependency.
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotExist:
		return "not exist"
	case Internal:
		return "internal error"
	}
	return "other error"
}

// Error is the error type used across the module.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// E builds an *Error. A nil err is allowed.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether err, or any error it wraps, is an *Error of the given kind.
func Is(kind Kind, err error) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// New mirrors the standard library so callers need a single errors import.
func New(text string) error {
	return errors.New(text)
}
