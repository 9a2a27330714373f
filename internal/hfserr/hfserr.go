// Package hfserr models the error kinds of spec.md §7 as a typed Kind
// plus a wrapping *Error, composed with fmt.Errorf("...: %w", err) at call
// sites the way the rest of this module wraps errors.
package hfserr

import "fmt"

// Kind is one of spec.md §7's error categories, plus OutOfRange: §7's
// taxonomy lists ten kinds but never names one for a request that reads
// past a fork's own logical size, even though S5/§4.1 describe exactly
// that failure as OutOfRange rather than ShortFork (ShortFork is reserved
// for a fork whose extents don't actually cover its declared size).
type Kind uint8

const (
	DeviceIo Kind = iota
	UnknownVolume
	UnsupportedVersion
	CorruptNode
	InvalidNodeIndex
	ShortFork
	BrokenChain
	OutputTooSmall
	NotFound
	PathSyntax
	OutOfRange
)

func (k Kind) String() string {
	switch k {
	case DeviceIo:
		return "DeviceIo"
	case UnknownVolume:
		return "UnknownVolume"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case CorruptNode:
		return "CorruptNode"
	case InvalidNodeIndex:
		return "InvalidNodeIndex"
	case ShortFork:
		return "ShortFork"
	case BrokenChain:
		return "BrokenChain"
	case OutputTooSmall:
		return "OutputTooSmall"
	case NotFound:
		return "NotFound"
	case PathSyntax:
		return "PathSyntax"
	case OutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying cause with a Kind, so orchestration can decide
// degrade-to-warning vs. abort per spec.md §7's propagation policy without
// string-matching messages.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// New creates a Kind-tagged error with a message, no wrapped cause.
func New(k Kind, msg string) error {
	return &Error{Kind: k, msg: msg}
}

// Wrap creates a Kind-tagged error wrapping an existing cause.
func Wrap(k Kind, msg string, err error) error {
	return &Error{Kind: k, msg: msg, err: err}
}

// Is reports whether err (or anything it wraps) carries the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	for err != nil {
		if he, ok := err.(*Error); ok {
			e = he
			if e.Kind == k {
				return true
			}
			err = e.err
			continue
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
