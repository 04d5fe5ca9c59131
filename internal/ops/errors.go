package ops

import (
	"fmt"
	"strings"
)

// UnknownOperationTypeError reports a lookup for a path no module
// registered.
type UnknownOperationTypeError struct {
	Path OpPath
}

func (e *UnknownOperationTypeError) Error() string {
	return fmt.Sprintf("unknown operation type: %s", e.Path)
}

// DuplicateOperationTypeError reports two registrations under one path.
type DuplicateOperationTypeError struct {
	Path OpPath
}

func (e *DuplicateOperationTypeError) Error() string {
	return fmt.Sprintf("duplicate operation type: %s", e.Path)
}

// LocatedError is one diagnostic tied to a position in embedded source.
type LocatedError struct {
	Message string
	Line    int
	Column  int
}

func (e LocatedError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ScriptError collects the diagnostics an embedded language produced, so a
// client can mark them in its editor.
type ScriptError struct {
	Diags []LocatedError
}

// NewScriptError wraps a single positionless message.
func NewScriptError(msg string) *ScriptError {
	return &ScriptError{Diags: []LocatedError{{Message: msg, Line: 1, Column: 1}}}
}

func (e *ScriptError) Error() string {
	msgs := make([]string, len(e.Diags))
	for i, d := range e.Diags {
		msgs[i] = d.Error()
	}
	return strings.Join(msgs, "\n")
}
