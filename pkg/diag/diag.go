// Package diag implements positioned diagnostics shared by every parsing stage.
//
// Design: errors and warnings are values, collected per file. Nothing here aborts a run.
package diag

import (
	"fmt"
	"strings"
)

// Severity separates hard errors from informational warnings
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a message tied to a file position. Line and Col are 1-based;
// zero means the position is unknown.
type Diagnostic struct {
	File    string
	Line    int
	Col     int
	Message string
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		b.WriteByte(':')
	}
	if d.Line > 0 {
		fmt.Fprintf(&b, "%d:%d:", d.Line, d.Col)
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(d.Message)
	return b.String()
}

// At builds a diagnostic with a formatted message
func At(file string, line, col int, format string, args ...any) Diagnostic {
	return Diagnostic{File: file, Line: line, Col: col, Message: fmt.Sprintf(format, args...)}
}

// List collects errors and warnings for one file
type List struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Errorf records an error
func (l *List) Errorf(file string, line, col int, format string, args ...any) {
	l.Errors = append(l.Errors, At(file, line, col, format, args...))
}

// Warnf records a warning
func (l *List) Warnf(file string, line, col int, format string, args ...any) {
	l.Warnings = append(l.Warnings, At(file, line, col, format, args...))
}

// Merge appends another list's diagnostics in order
func (l *List) Merge(other List) {
	l.Errors = append(l.Errors, other.Errors...)
	l.Warnings = append(l.Warnings, other.Warnings...)
}

// Each calls fn for every error, then every warning
func (l *List) Each(fn func(Severity, Diagnostic)) {
	for _, d := range l.Errors {
		fn(SeverityError, d)
	}
	for _, d := range l.Warnings {
		fn(SeverityWarning, d)
	}
}

// HasErrors reports whether any error was recorded
func (l *List) HasErrors() bool {
	return len(l.Errors) > 0
}

// Err joins all errors into one error value, or nil
func (l *List) Err() error {
	if len(l.Errors) == 0 {
		return nil
	}
	if len(l.Errors) == 1 {
		return l.Errors[0]
	}
	msgs := make([]string, len(l.Errors))
	for i, d := range l.Errors {
		msgs[i] = d.Error()
	}
	return fmt.Errorf("%d errors:\n  %s", len(l.Errors), strings.Join(msgs, "\n  "))
}
