package lang

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Predefined errors (sentinel values).
var (
	ErrReadInput     = NewError("failed to read input")
	ErrUnknownFormat = NewError("unknown output format")
	ErrEncode        = NewError("failed to encode syntax tree")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface as "<msg>: <cause>", omitting
// whichever part is empty.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && t.msg != "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{msg: e.msg, err: e.err, attrs: newAttrs}
}

// Code is the stable identifier of a [ParserError] kind.
type Code string

const (
	CodeUnknownCommand      Code = "E001"
	CodeMissingParameter    Code = "E002"
	CodeInvalidSyntax       Code = "E003"
	CodeUnresolvedReference Code = "E004"
)

// ParserError is a positioned diagnostic raised against PlexCode source.
type ParserError struct {
	Code       Code
	Message    string
	Pos        Position
	Suggestion string
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	return string(e.Code) + " at " + e.Pos.String() + ": " + e.Message
}

// LogValue implements slog.LogValuer.
func (e *ParserError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
		slog.Any("position", e.Pos),
	}

	if e.Suggestion != "" {
		attrs = append(attrs, slog.String("suggestion", e.Suggestion))
	}

	return slog.GroupValue(attrs...)
}

// commonCommands are the candidates offered for a mistyped command.
var commonCommands = []string{
	"call~", "build~", "check~", "store~", "show~",
	"Sniff~", "detect~!!", "Fetch~!!", "ASK~!!", "ACCESS~!!",
}

// maxSuggestDistance bounds the edit distance of a suggested command.
const maxSuggestDistance = 3

// NewUnknownCommandError reports a command that matches no intent. The
// suggestion names the closest common command, if any is close enough.
func NewUnknownCommandError(command string, pos Position) *ParserError {
	e := &ParserError{
		Code:    CodeUnknownCommand,
		Message: "Unknown command '" + command + "'",
		Pos:     pos,
	}

	if similar, ok := SuggestCommand(command, commonCommands...); ok {
		e.Suggestion = "Did you mean '" + similar + "'?"
	}

	return e
}

// NewMissingParameterError reports a command given none of the parameters it
// requires.
func NewMissingParameterError(command string, pos Position) *ParserError {
	return &ParserError{
		Code:       CodeMissingParameter,
		Message:    "Command '" + command + "' requires at least one parameter",
		Pos:        pos,
		Suggestion: "Add parameters after the command",
	}
}

// NewInvalidSyntaxError reports one lexical form found where another was
// expected.
func NewInvalidSyntaxError(expected, found string, pos Position) *ParserError {
	return &ParserError{
		Code:    CodeInvalidSyntax,
		Message: "Expected '" + expected + "' but found '" + found + "'",
		Pos:     pos,
	}
}

// NewUnresolvedReferenceError reports a reference path that does not resolve.
func NewUnresolvedReferenceError(ref string, pos Position) *ParserError {
	return &ParserError{
		Code:       CodeUnresolvedReference,
		Message:    "Reference '" + ref + "' does not exist",
		Pos:        pos,
		Suggestion: "Check that the reference path is correct",
	}
}

// SuggestCommand returns the candidate closest to input by case-insensitive
// edit distance, provided the distance is at most 3. Ties go to the earlier
// candidate.
func SuggestCommand(input string, candidates ...string) (string, bool) {
	in := strings.ToLower(input)
	best, bestDist := "", maxSuggestDistance+1

	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(in, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, best != ""
}
